package company

import (
	"github.com/motorbill/motorbill/internal/company/repository"
	"github.com/motorbill/motorbill/internal/company/service"
	"go.uber.org/fx"
)

var Module = fx.Module("company.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
