package schedule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings describes the board's calendar policy. Zero values fall back to
// the package defaults, so a partial settings file is fine.
type Settings struct {
	Horizon    string `yaml:"horizon"`     // last accepted date, YYYY-MM-DD
	CutoffHour int    `yaml:"cutoff_hour"` // local hour on the preceding Friday
	Timezone   string `yaml:"timezone"`    // IANA name, empty = process local zone
}

// DefaultSettings returns the built-in calendar policy.
func DefaultSettings() Settings {
	return Settings{
		Horizon:    DefaultHorizon,
		CutoffHour: DefaultCutoffHour,
	}
}

// LoadSettings reads a YAML settings file and fills in defaults for any
// field left unset. An empty path returns the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read schedule settings: %w", err)
	}

	var file Settings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return s, fmt.Errorf("failed to parse schedule settings: %w", err)
	}

	if file.Horizon != "" {
		s.Horizon = file.Horizon
	}
	if file.CutoffHour != 0 {
		s.CutoffHour = file.CutoffHour
	}
	if file.Timezone != "" {
		s.Timezone = file.Timezone
	}
	return s, nil
}
