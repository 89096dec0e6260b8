package customer

import (
	"github.com/smallbiznis/bodega/internal/customer/repository"
	"github.com/smallbiznis/bodega/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
