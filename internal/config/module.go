package config

import "go.uber.org/fx"

// Module provides the config dependencies
var Module = fx.Module("config",
	fx.Provide(
		Load,
		func(cfg *Config) *ServerConfig { return &cfg.Server },
		func(cfg *Config) *LoggingConfig { return &cfg.Logging },
		func(cfg *Config) *BackendConfig { return &cfg.Backend },
		func(cfg *Config) *DeepLinkConfig { return &cfg.DeepLink },
		func(cfg *Config) *BridgeConfig { return &cfg.Bridge },
		func(cfg *Config) *OAuthConfig { return &cfg.OAuth },
	),
)
