package sidecar

import "go.uber.org/fx"

// Module provides the sidecar guard.
var Module = fx.Module("sidecar",
	fx.Provide(New),
)
