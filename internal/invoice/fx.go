package invoice

import (
	"github.com/onebase/onebase/internal/invoice/repository"
	"github.com/onebase/onebase/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
