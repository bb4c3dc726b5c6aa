package config

import (
	"math"

	"github.com/pordosol/pordosol-ls/internal/pordosol"
	"github.com/tliron/commonlog"
)

// Section is the configuration section clients store the settings under.
const Section = "pordosolLanguageServer"

// Settings control which diagnostics are reported for a document.
type Settings struct {
	MaxNumberOfProblems int  `yaml:"maxNumberOfProblems"`
	ShowWarnings        bool `yaml:"showWarnings"`
	EnableStrictMode    bool `yaml:"enableStrictMode"`
}

// Defaults returns the documented default settings.
func Defaults() Settings {
	return Settings{
		MaxNumberOfProblems: 1000,
		ShowWarnings:        true,
		EnableStrictMode:    true,
	}
}

// SelectOptions converts the settings for pordosol.Select.
func (s Settings) SelectOptions() pordosol.SelectOptions {
	return pordosol.SelectOptions{
		MaxNumberOfProblems: s.MaxNumberOfProblems,
		ShowWarnings:        s.ShowWarnings,
		StrictMode:          s.EnableStrictMode,
	}
}

// FromAny validates a settings payload as it arrives from the client. Both
// {"pordosolLanguageServer": {...}} and the bare section are accepted. Fields
// that are missing or of the wrong shape keep their value from base.
func FromAny(v any, base Settings) Settings {
	logger := commonlog.GetLogger("pordosol.config")

	m, ok := v.(map[string]any)
	if !ok {
		if v != nil {
			logger.Warningf("ignoring settings of type %T", v)
		}
		return base
	}
	if section, ok := m[Section]; ok {
		if sm, ok := section.(map[string]any); ok {
			m = sm
		} else {
			logger.Warningf("ignoring %s of type %T", Section, section)
			return base
		}
	}

	out := base
	if raw, ok := m["maxNumberOfProblems"]; ok {
		if n, ok := toCount(raw); ok {
			out.MaxNumberOfProblems = n
		} else {
			logger.Warningf("invalid maxNumberOfProblems %v, keeping %d", raw, base.MaxNumberOfProblems)
		}
	}
	if raw, ok := m["showWarnings"]; ok {
		if b, ok := raw.(bool); ok {
			out.ShowWarnings = b
		} else {
			logger.Warningf("invalid showWarnings %v, keeping %t", raw, base.ShowWarnings)
		}
	}
	if raw, ok := m["enableStrictMode"]; ok {
		if b, ok := raw.(bool); ok {
			out.EnableStrictMode = b
		} else {
			logger.Warningf("invalid enableStrictMode %v, keeping %t", raw, base.EnableStrictMode)
		}
	}
	return out
}

// toCount accepts non-negative whole numbers; JSON numbers decode as float64.
func toCount(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, n >= 0
	case int64:
		return int(n), n >= 0 && n <= math.MaxInt32
	case float64:
		if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
