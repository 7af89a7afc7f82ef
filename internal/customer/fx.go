package customer

import (
	"github.com/motorbill/motorbill/internal/customer/repository"
	"github.com/motorbill/motorbill/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
