package config

import "sort"

var Presets = map[string]*Config{
	"default": {
		Particles: 1000, MaxSpeed: 100,
		Sim: SimConfig{Dt: DefaultDt, Duration: 10},
	},
	"dense": {
		Particles: 50000, MaxSpeed: 60, PointSize: 1,
		Sim: SimConfig{Dt: DefaultDt, Duration: 10},
	},
	"sparse": {
		Particles: 100, MaxSpeed: 100, PointSize: 6,
		Sim: SimConfig{Dt: DefaultDt, Duration: 20},
	},
	"fast": {
		Particles: 2000, MaxSpeed: 1200,
		Sim: SimConfig{Dt: DefaultDt, Duration: 10},
	},
	"still": {
		Particles: 1000, MaxSpeed: 0,
		Sim: SimConfig{Dt: DefaultDt, Duration: 5},
	},
}

// GetPreset returns a full config with the preset applied on top of the
// defaults, or nil if the preset does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Particles = p.Particles
	cfg.MaxSpeed = p.MaxSpeed
	if p.PointSize > 0 {
		cfg.PointSize = p.PointSize
	}
	cfg.Sim.Dt = p.Sim.Dt
	cfg.Sim.Duration = p.Sim.Duration
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
