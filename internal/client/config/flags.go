package config

import (
	"flag"
	"os"
	"time"

	"github.com/werkmate/werkmate-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only known flags are fed to the flag set so that the -e/-env pre-pass
// (see loadEnv) does not trip the parser.
func parseFlags(cfg *Config) {
	allowed := []string{"-a", "-issuer", "-client", "-callback", "-d", "-t", "-log"}
	args := flagx.FilterArgs(os.Args[1:], allowed)

	fs := flag.NewFlagSet("werkmate", flag.PanicOnError)

	apiURL := fs.String("a", cfg.APIBaseURL, "base URL of the WerkMate API")
	issuer := fs.String("issuer", cfg.IssuerURL, "OIDC issuer URL")
	clientID := fs.String("client", cfg.ClientID, "OIDC client id")
	callback := fs.String("callback", cfg.CallbackAddr, "local sign-in callback address")
	dbPath := fs.String("d", cfg.StateDBPath, "path to the local state database")
	timeout := fs.Int("t", int(cfg.RequestTimeout/time.Second), "request timeout in seconds")
	logLevel := fs.String("log", cfg.LogLevel, "log level (debug|info|warn|error)")

	_ = fs.Parse(args)

	cfg.APIBaseURL = *apiURL
	cfg.IssuerURL = *issuer
	cfg.ClientID = *clientID
	cfg.CallbackAddr = *callback
	cfg.StateDBPath = *dbPath
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.LogLevel = *logLevel
}
