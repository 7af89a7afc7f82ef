package invoice

import (
	"github.com/motorbill/motorbill/internal/invoice/repository"
	"github.com/motorbill/motorbill/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
