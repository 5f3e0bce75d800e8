package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt              = 0.001
	DefaultSteps           = 500
	DefaultSmoothingRadius = 0.05
	DefaultStiffness       = 0.1
	DefaultParticleMass    = 0.02
	DefaultViscosity       = 100.0
	DefaultSurfaceTension  = 72.75
	DefaultTensionEps      = 0.01
	DefaultGravity         = 9.81
)

type Config struct {
	Solver   string       `yaml:"solver"`
	Dt       float64      `yaml:"dt"`
	Steps    int          `yaml:"steps"`
	Adaptive bool         `yaml:"adaptive"`
	Fluid    FluidConfig  `yaml:"fluid"`
	Bounds   BoundsConfig `yaml:"bounds"`
	Layout   LayoutConfig `yaml:"layout"`
}

type FluidConfig struct {
	SmoothingRadius  float64 `yaml:"smoothing_radius"`
	Stiffness        float64 `yaml:"stiffness"`
	ParticleMass     float64 `yaml:"particle_mass"`
	Viscosity        float64 `yaml:"viscosity"`
	SurfaceTension   float64 `yaml:"surface_tension"`
	TensionThreshold float64 `yaml:"tension_threshold"`
	Gravity          float64 `yaml:"gravity"`
}

type BoundsConfig struct {
	XMin  float64 `yaml:"x_min"`
	XMax  float64 `yaml:"x_max"`
	ZMin  float64 `yaml:"z_min"`
	ZMax  float64 `yaml:"z_max"`
	Floor float64 `yaml:"floor"`
}

// LayoutConfig places the initial particle block: Nx*Ny*Nz particles on a
// regular lattice starting at Origin. Bed adds a layer of immovable
// particles directly under the block.
type LayoutConfig struct {
	Nx      int        `yaml:"nx"`
	Ny      int        `yaml:"ny"`
	Nz      int        `yaml:"nz"`
	Origin  [3]float64 `yaml:"origin"`
	Spacing float64    `yaml:"spacing"`
	Bed     bool       `yaml:"bed"`
}

func DefaultConfig() *Config {
	return &Config{
		Solver:   "euler",
		Dt:       DefaultDt,
		Steps:    DefaultSteps,
		Adaptive: true,
		Fluid: FluidConfig{
			SmoothingRadius:  DefaultSmoothingRadius,
			Stiffness:        DefaultStiffness,
			ParticleMass:     DefaultParticleMass,
			Viscosity:        DefaultViscosity,
			SurfaceTension:   DefaultSurfaceTension,
			TensionThreshold: DefaultTensionEps,
			Gravity:          DefaultGravity,
		},
		Bounds: BoundsConfig{
			XMin: -0.2, XMax: 0.2,
			ZMin: -0.2, ZMax: 0.2,
			Floor: -2.0,
		},
		Layout: LayoutConfig{
			Nx: 6, Ny: 6, Nz: 6,
			Origin:  [3]float64{-0.075, 0.0, -0.075},
			Spacing: 0.03,
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
		return nil, err
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
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}
	if c.Fluid.SmoothingRadius <= 0 {
		return fmt.Errorf("smoothing radius must be positive, got %f", c.Fluid.SmoothingRadius)
	}
	if c.Fluid.ParticleMass <= 0 {
		return fmt.Errorf("particle mass must be positive, got %f", c.Fluid.ParticleMass)
	}
	if c.Layout.Nx <= 0 || c.Layout.Ny <= 0 || c.Layout.Nz <= 0 {
		return fmt.Errorf("layout counts must be positive, got %dx%dx%d", c.Layout.Nx, c.Layout.Ny, c.Layout.Nz)
	}
	if c.Layout.Spacing <= 0 {
		return fmt.Errorf("layout spacing must be positive, got %f", c.Layout.Spacing)
	}
	if c.Bounds.XMin >= c.Bounds.XMax || c.Bounds.ZMin >= c.Bounds.ZMax {
		return fmt.Errorf("bounds are inverted")
	}
	return nil
}
