package providers

import (
	"github.com/motorbill/motorbill/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	pdf.Module,
)
