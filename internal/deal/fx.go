package deal

import (
	"github.com/onebase/onebase/internal/deal/repository"
	"github.com/onebase/onebase/internal/deal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("deal.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
