package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTitle     = "Random Moving Particles"
	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultParticles = 1000
	DefaultMaxSpeed  = 100.0
	DefaultPointSize = 2.0
	DefaultDt        = 1.0 / 60.0
	DefaultDuration  = 10.0
	DefaultSample    = 6
	DefaultBackend   = "serial"
)

type Config struct {
	Title          string     `yaml:"title"`
	Width          int        `yaml:"width"`
	Height         int        `yaml:"height"`
	Particles      int        `yaml:"particles"`
	MaxSpeed       float64    `yaml:"max_speed"`
	Seed           int64      `yaml:"seed"`
	PointSize      float64    `yaml:"point_size"`
	VSync          bool       `yaml:"vsync"`
	Background     [4]float32 `yaml:"background"`
	VertexShader   string     `yaml:"vertex_shader"`
	FragmentShader string     `yaml:"fragment_shader"`
	Backend        string     `yaml:"backend"`
	// MaxFrameDt caps the wall-clock step of interactive windows; 0 leaves
	// it uncapped so a stalled frame produces one large step.
	MaxFrameDt float64   `yaml:"max_frame_dt"`
	Sim        SimConfig `yaml:"sim"`
}

// SimConfig drives headless runs. Interactive windows take dt from the
// wall clock instead.
type SimConfig struct {
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	SampleEvery int     `yaml:"sample_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Title:      DefaultTitle,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Particles:  DefaultParticles,
		MaxSpeed:   DefaultMaxSpeed,
		PointSize:  DefaultPointSize,
		VSync:      true,
		Background: [4]float32{0, 0, 0, 1},
		Backend:    DefaultBackend,
		Sim: SimConfig{
			Dt:          DefaultDt,
			Duration:    DefaultDuration,
			SampleEvery: DefaultSample,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Particles <= 0 {
		return fmt.Errorf("particle count must be positive, got %d", c.Particles)
	}
	if c.MaxSpeed < 0 {
		return fmt.Errorf("max speed must not be negative, got %f", c.MaxSpeed)
	}
	if c.MaxFrameDt < 0 {
		return fmt.Errorf("max frame dt must not be negative, got %f", c.MaxFrameDt)
	}
	if c.Sim.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Sim.Dt)
	}
	if c.Sim.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Sim.Duration)
	}
	return nil
}

// Steps is the number of fixed steps a headless run takes.
func (c *Config) Steps() int {
	return int(c.Sim.Duration / c.Sim.Dt)
}
