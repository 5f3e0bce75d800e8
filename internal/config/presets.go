package config

import "sort"

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]*Config{
	// A block of fluid released above the floor, the canonical stability
	// check.
	"block-drop": preset(func(c *Config) {
		c.Layout.Origin = [3]float64{-0.075, 0.2, -0.075}
	}),
	// A tall column against the x wall that collapses sideways.
	"dam-break": preset(func(c *Config) {
		c.Layout.Nx, c.Layout.Ny, c.Layout.Nz = 4, 10, 6
		c.Layout.Origin = [3]float64{-0.19, -1.99, -0.075}
		c.Solver = "midpoint"
	}),
	// A small droplet falling onto an immovable particle bed.
	"droplet": preset(func(c *Config) {
		c.Layout.Nx, c.Layout.Ny, c.Layout.Nz = 3, 3, 3
		c.Layout.Origin = [3]float64{-0.03, 0.5, -0.03}
		c.Layout.Bed = true
		c.Solver = "rk4"
	}),
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
