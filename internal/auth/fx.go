package auth

import (
	"github.com/onebase/onebase/internal/auth/repository"
	"github.com/onebase/onebase/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
