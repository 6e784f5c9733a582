package invoicecustomer

import (
	"github.com/onebase/onebase/internal/invoicecustomer/repository"
	"github.com/onebase/onebase/internal/invoicecustomer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoicecustomer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
