// Package config loads runtime configuration for the WerkMate CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional .env file (see loadEnv) selected via flags: -e or -env.
//  3. Environment variables (WERKMATE_*).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string        base URL of the WerkMate API (e.g. http://localhost:4000/v1)
//	-issuer string   OIDC issuer URL of the identity provider realm
//	-client string   OIDC client id
//	-callback string listen address for the local sign-in callback
//	-d string        path to the local state database
//	-t int           request timeout (seconds)
//	-log string      log level (debug|info|warn|error)
//	-e string        path to a .env file loaded before the environment is read
package config
