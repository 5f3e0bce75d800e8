package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative dt", func(c *Config) { c.Dt = -0.001 }},
		{"zero steps", func(c *Config) { c.Steps = 0 }},
		{"zero smoothing radius", func(c *Config) { c.Fluid.SmoothingRadius = 0 }},
		{"zero particle mass", func(c *Config) { c.Fluid.ParticleMass = 0 }},
		{"zero layout count", func(c *Config) { c.Layout.Ny = 0 }},
		{"zero spacing", func(c *Config) { c.Layout.Spacing = 0 }},
		{"inverted x bounds", func(c *Config) { c.Bounds.XMin, c.Bounds.XMax = 0.2, -0.2 }},
		{"inverted z bounds", func(c *Config) { c.Bounds.ZMin, c.Bounds.ZMax = 0.2, -0.2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted an invalid config")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Solver = "rk4"
	cfg.Steps = 42
	cfg.Fluid.Viscosity = 55.5
	cfg.Layout.Bed = true
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFillsDefaults(t *testing.T) {
	// A partial file keeps defaults for everything it does not mention.
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver: midpoint\nsteps: 10\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "midpoint", cfg.Solver)
	assert.Equal(t, 10, cfg.Steps)
	assert.Equal(t, DefaultDt, cfg.Dt)
	assert.Equal(t, DefaultViscosity, cfg.Fluid.Viscosity)
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load succeeded on a missing file")
	}
}

func TestPresetsValidate(t *testing.T) {
	for name, cfg := range Presets {
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}
}

func TestGetPreset(t *testing.T) {
	if GetPreset("dam-break") == nil {
		t.Error("known preset not found")
	}
	if GetPreset("tsunami") != nil {
		t.Error("unknown preset returned a config")
	}
}

func TestListPresetsSorted(t *testing.T) {
	names := ListPresets()
	require.Len(t, names, len(Presets))
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("preset names not sorted: %v", names)
		}
	}
}
