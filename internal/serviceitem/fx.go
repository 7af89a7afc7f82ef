package serviceitem

import (
	"github.com/motorbill/motorbill/internal/serviceitem/repository"
	"github.com/motorbill/motorbill/internal/serviceitem/service"
	"go.uber.org/fx"
)

var Module = fx.Module("serviceitem.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
