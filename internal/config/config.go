package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/tliron/commonlog"
)

// RCFileName is the per-workspace settings file.
const RCFileName = ".pordosolrc"

// Config holds the workspace-wide configuration of the server.
type Config struct {
	WorkspaceRoot string
	// RCPath overrides the location of the settings file; empty means
	// RCFileName inside WorkspaceRoot.
	RCPath string
	// EnvFile is read with godotenv before the environment is consulted.
	EnvFile string
	// Global applies to documents whose client cannot be asked for
	// per-document settings.
	Global Settings
}

func NewConfig() *Config {
	return &Config{
		WorkspaceRoot: ".",
		EnvFile:       ".env",
		Global:        Defaults(),
	}
}

// Load layers defaults, the settings file and the environment into Global.
// Missing or malformed sources are logged and skipped.
func (c *Config) Load() {
	logger := commonlog.GetLogger("pordosol.config")

	settings := Defaults()
	rcPath := c.rcPath()
	if fromFile, err := LoadFile(rcPath, settings); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warningf("could not load %s: %v", rcPath, err)
		}
	} else {
		settings = fromFile
		logger.Infof("loaded settings from %s", rcPath)
	}

	envFile := c.EnvFile
	if envFile != "" && !filepath.IsAbs(envFile) {
		envFile = filepath.Join(c.WorkspaceRoot, envFile)
	}
	c.Global = FromEnv(settings, envFile)
	logger.Infof("settings: maxNumberOfProblems=%d showWarnings=%t enableStrictMode=%t",
		c.Global.MaxNumberOfProblems, c.Global.ShowWarnings, c.Global.EnableStrictMode)
}

func (c *Config) rcPath() string {
	if c.RCPath != "" {
		if filepath.IsAbs(c.RCPath) {
			return c.RCPath
		}
		return filepath.Join(c.WorkspaceRoot, c.RCPath)
	}
	return filepath.Join(c.WorkspaceRoot, RCFileName)
}
