package account

import (
	"github.com/onebase/onebase/internal/account/repository"
	"github.com/onebase/onebase/internal/account/service"
	"go.uber.org/fx"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
