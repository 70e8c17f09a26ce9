package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildTarget selects the build flavor at link time:
//
//	go build -ldflags "-X github.com/authtemplate/authshell/internal/config.buildTarget=mobile"
//
// It is fixed for the process lifetime; a change requires a restart.
var buildTarget = "web"

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("authshell version %s, commit %s, built at %s", version, commit, date)
}

// IsMobileBuild reports whether this binary was linked as a native
// mobile shell build.
func IsMobileBuild() bool {
	return buildTarget == "mobile"
}

// BuildTarget returns the raw build target string ("web" or "mobile").
func BuildTarget() string {
	return buildTarget
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Backend  BackendConfig  `mapstructure:"backend"`
	DeepLink DeepLinkConfig `mapstructure:"deeplink"`
	Bridge   BridgeConfig   `mapstructure:"bridge"`
	OAuth    OAuthConfig    `mapstructure:"oauth"`
}

type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"` // public base URL registered as the OAuth redirect origin
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	Color             bool   `mapstructure:"color"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

// BackendConfig describes the backend that performs the actual
// code-for-token exchange. The backend owns the provider credentials;
// this process never sees a client secret.
type BackendConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Provider        string        `mapstructure:"provider"` // authentik, google
	ExchangeTimeout time.Duration `mapstructure:"exchange_timeout"`
	RoleTimeout     time.Duration `mapstructure:"role_timeout"`
}

type DeepLinkConfig struct {
	Scheme string `mapstructure:"scheme"`
}

// BridgeConfig configures the IPC endpoint used to talk to the native
// shell wrapper.
type BridgeConfig struct {
	Socket       string `mapstructure:"socket"`
	LaunchURLEnv string `mapstructure:"launch_url_env"`
}

// OAuthConfig carries the public-client settings used to start a login
// from this process (authorize endpoint, client id, scopes). The token
// exchange itself is always delegated to the backend.
type OAuthConfig struct {
	AuthorizeURL string   `mapstructure:"authorize_url"`
	ClientID     string   `mapstructure:"client_id"`
	Scopes       []string `mapstructure:"scopes"`
	RedirectURI  string   `mapstructure:"redirect_uri"`
}

const (
	DefaultScheme          = "authtemplate://auth"
	DefaultProvider        = "authentik"
	DefaultLaunchURLEnv    = "AUTHSHELL_LAUNCH_URL"
	DefaultExchangeTimeout = 15 * time.Second
	DefaultRoleTimeout     = 10 * time.Second
)

// InitFlags initializes command line flags (without parsing)
func InitFlags() {
	pflag.String("backend.base_url", "", "Base URL of the token-exchange backend")
	pflag.String("bridge.socket", "", "Path to the native bridge socket")
	// Note: no pflag.Parse() here as it's called in main.go
}

func Load() (*Config, error) {
	viper.Reset() // Ensure clean state

	viper.SetEnvPrefix("AUTHSHELL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8787)
	viper.SetDefault("server.base_url", "")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("logging.color", true)
	// Keys without a meaningful default still need registering so
	// environment-only values survive Unmarshal.
	viper.SetDefault("backend.base_url", "")
	viper.SetDefault("bridge.socket", "")
	viper.SetDefault("oauth.authorize_url", "")
	viper.SetDefault("oauth.client_id", "")
	viper.SetDefault("oauth.redirect_uri", "")
	viper.SetDefault("backend.provider", DefaultProvider)
	viper.SetDefault("backend.exchange_timeout", DefaultExchangeTimeout)
	viper.SetDefault("backend.role_timeout", DefaultRoleTimeout)
	viper.SetDefault("deeplink.scheme", DefaultScheme)
	viper.SetDefault("bridge.launch_url_env", DefaultLaunchURLEnv)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/authshell")

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; env and flags can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend.base_url is required, please adjust the config or pass --backend.base_url or AUTHSHELL_BACKEND_BASE_URL environment variable")
	}
	config.Backend.BaseURL = strings.TrimRight(config.Backend.BaseURL, "/")

	return &config, nil
}
