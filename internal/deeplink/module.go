package deeplink

import "go.uber.org/fx"

// Module provides the deep-link routing dependencies
var Module = fx.Module("deeplink",
	fx.Provide(
		NewRouter,
	),
)
