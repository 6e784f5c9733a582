package activity

import (
	"github.com/onebase/onebase/internal/activity/repository"
	"github.com/onebase/onebase/internal/activity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
