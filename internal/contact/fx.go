package contact

import (
	"github.com/onebase/onebase/internal/contact/repository"
	"github.com/onebase/onebase/internal/contact/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contact.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
