package utils

import (
	"errors"
	"testing"

	"github.com/orbitforge/astrosim/internal/types"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := validateConfig(DefaultConfig()); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestValidateConfigRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown integration method", func(c *Config) { c.Physics.IntegrationMethod = "leapfrog" }},
		{"non-positive step", func(c *Config) { c.Physics.StepSeconds = 0 }},
		{"unknown time preset", func(c *Config) { c.Time.ScalePreset = "decade" }},
		{"bad fov", func(c *Config) { c.Culling.FOVDegrees = 200 }},
		{"zero near plane", func(c *Config) { c.Culling.NearDistance = 0 }},
		{"far inside near", func(c *Config) { c.Culling.FarDistance = 0.01 }},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := validateConfig(cfg); !errors.Is(err, types.ErrConfiguration) {
			t.Errorf("%s: expected configuration error, got %v", tc.name, err)
		}
	}
}
