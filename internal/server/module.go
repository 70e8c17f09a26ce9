package server

import "go.uber.org/fx"

// Module provides the trampoline server dependencies
var Module = fx.Module("server",
	fx.Provide(
		NewServer,
	),
)
