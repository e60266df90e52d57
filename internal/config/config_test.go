package config

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/beamenv/internal/beam"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Current != DefaultCurrent {
		t.Errorf("expected current %g, got %g", DefaultCurrent, cfg.Current)
	}
	if cfg.Beta <= 0 || cfg.Beta >= 1 {
		t.Error("beta should be in (0,1)")
	}
	if cfg.Gamma <= 1 {
		t.Error("gamma should exceed 1")
	}
	if cfg.Steps <= 0 {
		t.Error("steps should be positive")
	}
	if cfg.Stepper != DefaultStepper {
		t.Errorf("expected stepper %q, got %q", DefaultStepper, cfg.Stepper)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beam.yaml")

	cfg := DefaultConfig()
	cfg.Current = 0.025
	cfg.Steps = 500
	cfg.Stepper = "rk4"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Current != 0.025 {
		t.Errorf("expected current 0.025, got %g", loaded.Current)
	}
	if loaded.Steps != 500 {
		t.Errorf("expected steps 500, got %d", loaded.Steps)
	}
	if loaded.Stepper != "rk4" {
		t.Errorf("expected stepper rk4, got %q", loaded.Stepper)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("kv-14ma")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Current != 0.014 {
		t.Errorf("expected current 0.014, got %g", cfg.Current)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Error("expected presets")
	}
}

func TestParamsConversion(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.Params()

	if p.Current != cfg.Current || p.Beta != cfg.Beta || p.Gamma != cfg.Gamma {
		t.Error("kinematic fields not carried over")
	}
	if p.Emittance != beam.DefaultEmittance {
		t.Errorf("expected emittance %g, got %g", beam.DefaultEmittance, p.Emittance)
	}
	if p.Steps != cfg.Steps || p.FinalZ != cfg.FinalZ {
		t.Error("integration fields not carried over")
	}
}
