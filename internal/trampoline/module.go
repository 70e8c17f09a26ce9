package trampoline

import "go.uber.org/fx"

// Module provides the callback trampoline dependencies
var Module = fx.Module("trampoline",
	fx.Provide(
		NewHandler,
	),
)
