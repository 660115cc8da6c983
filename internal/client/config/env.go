package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/werkmate/werkmate-cli/internal/flagx"
)

// loadEnv overlays Config fields from the environment. When a .env file path
// was given via -e/-env it is loaded first; godotenv never overrides
// variables already present in the process environment.
func loadEnv(cfg *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		_ = godotenv.Load(path)
	}

	if v := os.Getenv("WERKMATE_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("WERKMATE_ISSUER_URL"); v != "" {
		cfg.IssuerURL = v
	}
	if v := os.Getenv("WERKMATE_CLIENT_ID"); v != "" {
		cfg.ClientID = v
	}
	if v := os.Getenv("WERKMATE_CALLBACK_ADDR"); v != "" {
		cfg.CallbackAddr = v
	}
	if v := os.Getenv("WERKMATE_STATE_DB"); v != "" {
		cfg.StateDBPath = v
	}
	if v := os.Getenv("WERKMATE_REQUEST_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("WERKMATE_DEFAULT_WORKSPACE"); v != "" {
		cfg.DefaultWorkspaceName = v
	}
	if v := os.Getenv("WERKMATE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
