package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/tliron/commonlog"
)

// Environment variables overriding the settings.
const (
	EnvMaxProblems  = "PORDOSOL_MAX_PROBLEMS"
	EnvShowWarnings = "PORDOSOL_SHOW_WARNINGS"
	EnvStrict       = "PORDOSOL_STRICT"
)

// FromEnv overlays values from envFile (if present) and then the process
// environment onto base. Malformed values are ignored.
func FromEnv(base Settings, envFile string) Settings {
	logger := commonlog.GetLogger("pordosol.config")

	vars := map[string]string{}
	if envFile != "" {
		if fileVars, err := godotenv.Read(envFile); err == nil {
			vars = fileVars
		} else if !os.IsNotExist(err) {
			logger.Warningf("could not read %s: %v", envFile, err)
		}
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return vars[key]
	}

	out := base
	if v := lookup(EnvMaxProblems); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			out.MaxNumberOfProblems = n
		} else {
			logger.Warningf("ignoring %s=%q", EnvMaxProblems, v)
		}
	}
	if v := lookup(EnvShowWarnings); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			out.ShowWarnings = b
		} else {
			logger.Warningf("ignoring %s=%q", EnvShowWarnings, v)
		}
	}
	if v := lookup(EnvStrict); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			out.EnableStrictMode = b
		} else {
			logger.Warningf("ignoring %s=%q", EnvStrict, v)
		}
	}
	return out
}
