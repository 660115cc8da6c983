// Package flagx contains helpers for two-pass command-line parsing: some
// configuration sources (the .env file path) must be known before the full
// flag set is parsed.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args containing only the allowed flags
// and their values.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -e client.env
//  2. Flag and value combined with '=':      --env=client.env
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// EnvFileFlag extracts the .env file path given via -e or -env, ignoring
// every other argument. Returns an empty string when neither flag is present.
func EnvFileFlag() string {
	var envFile string

	args := FilterArgs(os.Args[1:], []string{"-e", "-env"})

	fs := flag.NewFlagSet("env", flag.ContinueOnError)
	fs.StringVar(&envFile, "env", "", "Path to .env file")
	fs.StringVar(&envFile, "e", "", "Path to .env file (short)")
	_ = fs.Parse(args)

	return envFile
}
