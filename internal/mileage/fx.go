package mileage

import (
	"github.com/motorbill/motorbill/internal/mileage/repository"
	"github.com/motorbill/motorbill/internal/mileage/service"
	"go.uber.org/fx"
)

var Module = fx.Module("mileage.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
