package schedule

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings(\"\") error: %v", err)
	}
	if s.Horizon != DefaultHorizon {
		t.Errorf("Horizon = %s, want %s", s.Horizon, DefaultHorizon)
	}
	if s.CutoffHour != DefaultCutoffHour {
		t.Errorf("CutoffHour = %d, want %d", s.CutoffHour, DefaultCutoffHour)
	}
}

func TestLoadSettingsPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	if err := os.WriteFile(path, []byte("cutoff_hour: 15\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.CutoffHour != 15 {
		t.Errorf("CutoffHour = %d, want 15", s.CutoffHour)
	}
	if s.Horizon != DefaultHorizon {
		t.Errorf("Horizon = %s, want default %s (unset field)", s.Horizon, DefaultHorizon)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadSettings() with a missing file should error")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("LoadSettings() with malformed yaml should error")
	}
}
