package config

import "time"

// Config holds runtime settings for the WerkMate CLI.
type Config struct {
	// APIBaseURL is the base URL of the WerkMate API, including the version
	// prefix, e.g. "http://localhost:4000/v1".
	APIBaseURL string

	// IssuerURL is the OIDC issuer of the identity provider realm.
	IssuerURL string

	// ClientID is the OIDC client id registered for this CLI.
	ClientID string

	// CallbackAddr is the local listen address for the browser sign-in
	// callback, e.g. "127.0.0.1:8745".
	CallbackAddr string

	// StateDBPath is the path of the local sqlite state database.
	StateDBPath string

	// RequestTimeout bounds every API call.
	RequestTimeout time.Duration

	// DefaultWorkspaceName is used when bootstrap has to provision an
	// account for an identity without memberships.
	DefaultWorkspaceName string

	// LogLevel selects the slog level: debug, info, warn or error.
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:4000/v1"
	c.IssuerURL = "http://localhost:8080/realms/werkmate"
	c.ClientID = "werkmate-cli"
	c.CallbackAddr = "127.0.0.1:8745"
	c.StateDBPath = "werkmate.db"
	c.RequestTimeout = 15 * time.Second
	c.DefaultWorkspaceName = "My Workspace"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the optional .env file, the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadEnv(cfg)
	parseFlags(cfg)
	return cfg
}
