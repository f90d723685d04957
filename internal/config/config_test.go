package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Particles != 1000 {
		t.Errorf("expected 1000 particles, got %d", cfg.Particles)
	}
	if cfg.Title != "Random Moving Particles" {
		t.Errorf("unexpected title %q", cfg.Title)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"no particles", func(c *Config) { c.Particles = 0 }},
		{"negative speed", func(c *Config) { c.MaxSpeed = -1 }},
		{"negative frame cap", func(c *Config) { c.MaxFrameDt = -1 }},
		{"zero dt", func(c *Config) { c.Sim.Dt = 0 }},
		{"zero duration", func(c *Config) { c.Sim.Duration = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte("particles: 42\nsim:\n  duration: 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Particles != 42 {
		t.Errorf("expected 42 particles, got %d", cfg.Particles)
	}
	if cfg.Sim.Duration != 3 {
		t.Errorf("expected duration 3, got %f", cfg.Sim.Duration)
	}
	if cfg.Width != DefaultWidth {
		t.Errorf("expected default width, got %d", cfg.Width)
	}
	if cfg.Sim.Dt != DefaultDt {
		t.Errorf("expected default dt, got %f", cfg.Sim.Dt)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.VertexShader = "shaders/p.vert"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Seed != 99 || got.VertexShader != "shaders/p.vert" {
		t.Errorf("round trip lost fields: %+v", got)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("particles: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSteps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sim.Dt = 0.1
	cfg.Sim.Duration = 1.0
	if cfg.Steps() != 10 {
		t.Errorf("expected 10 steps, got %d", cfg.Steps())
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("sparse")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Particles != 100 {
		t.Errorf("expected 100 particles, got %d", cfg.Particles)
	}
	if cfg.Width != DefaultWidth {
		t.Errorf("preset should keep default width, got %d", cfg.Width)
	}

	still := GetPreset("still")
	if still.MaxSpeed != 0 {
		t.Errorf("expected still preset to have zero speed, got %f", still.MaxSpeed)
	}
	if still.PointSize != DefaultPointSize {
		t.Errorf("expected default point size, got %f", still.PointSize)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	if presets[0] != "default" {
		t.Errorf("expected sorted list starting with default, got %v", presets)
	}
}
