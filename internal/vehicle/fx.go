package vehicle

import (
	"github.com/motorbill/motorbill/internal/vehicle/repository"
	"github.com/motorbill/motorbill/internal/vehicle/service"
	"go.uber.org/fx"
)

var Module = fx.Module("vehicle.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
