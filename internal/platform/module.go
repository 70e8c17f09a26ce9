package platform

import (
	"github.com/authtemplate/authshell/internal/bridge"
	"go.uber.org/fx"
)

// Module provides the platform detection dependencies
var Module = fx.Module("platform",
	fx.Provide(
		bridge.New,
		NewDetector,
	),
)
