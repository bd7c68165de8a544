package utils

import (
	"os"
	"path/filepath"

	"cosmossdk.io/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/timekeeping"
)

// Config represents the simulator configuration
type Config struct {
	Time    TimeConfig    `yaml:"time" mapstructure:"time"`
	Physics PhysicsConfig `yaml:"physics" mapstructure:"physics"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Culling CullingConfig `yaml:"culling" mapstructure:"culling"`
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
}

// TimeConfig contains simulation clock settings
type TimeConfig struct {
	StartJulianDate float64 `yaml:"start_julian_date" mapstructure:"start_julian_date"`
	ScalePreset     string  `yaml:"scale_preset" mapstructure:"scale_preset"`
	StartPaused     bool    `yaml:"start_paused" mapstructure:"start_paused"`
}

// PhysicsConfig contains N-body integration settings
type PhysicsConfig struct {
	IntegrationMethod string  `yaml:"integration_method" mapstructure:"integration_method"`
	StepSeconds       float64 `yaml:"step_seconds" mapstructure:"step_seconds"`
}

// CacheConfig contains orbital state cache settings
type CacheConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// CullingConfig contains frustum culling settings
type CullingConfig struct {
	Enabled      bool    `yaml:"enabled" mapstructure:"enabled"`
	FOVDegrees   float64 `yaml:"fov_degrees" mapstructure:"fov_degrees"`
	AspectRatio  float64 `yaml:"aspect_ratio" mapstructure:"aspect_ratio"`
	NearDistance float64 `yaml:"near_distance" mapstructure:"near_distance"`
	FarDistance  float64 `yaml:"far_distance" mapstructure:"far_distance"`
}

// DataConfig contains body catalog and snapshot output settings
type DataConfig struct {
	BodiesFile   string `yaml:"bodies_file" mapstructure:"bodies_file"`
	SnapshotFile string `yaml:"snapshot_file" mapstructure:"snapshot_file"`
	DataDir      string `yaml:"data_dir" mapstructure:"data_dir"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	baseDir := filepath.Join(homeDir, ".astrosim")

	return &Config{
		Time: TimeConfig{
			StartJulianDate: 2451545.0,
			ScalePreset:     "day",
			StartPaused:     false,
		},
		Physics: PhysicsConfig{
			IntegrationMethod: "rk4",
			StepSeconds:       3600,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Culling: CullingConfig{
			Enabled:      true,
			FOVDegrees:   60,
			AspectRatio:  16.0 / 9.0,
			NearDistance: 0.1,
			FarDistance:  100,
		},
		Data: DataConfig{
			BodiesFile:   "",
			SnapshotFile: filepath.Join(baseDir, "snapshots.jsonl"),
			DataDir:      baseDir,
		},
	}
}

// LoadConfig loads configuration from the default search paths or creates
// a default config file.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom("")
}

// LoadConfigFrom loads configuration from an explicit file, or from the
// default search paths when path is empty.
func LoadConfigFrom(path string) (*Config, error) {
	viper.SetConfigType("yaml")
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		homeDir, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(homeDir, ".astrosim"))
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.SetEnvPrefix("ASTROSIM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createDefaultConfig()
		}
		return nil, errors.Wrapf(types.ErrConfiguration, "reading config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(types.ErrConfiguration, "unmarshaling config: %v", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig saves configuration to ~/.astrosim/config.yaml
func SaveConfig(config *Config) error {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".astrosim")
	configFile := filepath.Join(configDir, "config.yaml")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.Wrapf(types.ErrConfiguration, "creating config directory: %v", err)
	}

	if config.Data.DataDir != "" {
		if err := os.MkdirAll(config.Data.DataDir, 0755); err != nil {
			return errors.Wrapf(types.ErrConfiguration, "creating data directory: %v", err)
		}
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrapf(types.ErrConfiguration, "marshaling config: %v", err)
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return errors.Wrapf(types.ErrConfiguration, "writing config file: %v", err)
	}

	return nil
}

// createDefaultConfig creates and saves a default configuration
func createDefaultConfig() (*Config, error) {
	config := DefaultConfig()

	if err := SaveConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	switch config.Physics.IntegrationMethod {
	case "rk4", "euler", "verlet":
	default:
		return errors.Wrapf(types.ErrConfiguration,
			"invalid integration method %q", config.Physics.IntegrationMethod)
	}

	if config.Physics.StepSeconds <= 0 {
		return errors.Wrapf(types.ErrConfiguration,
			"physics step must be > 0 seconds, got %g", config.Physics.StepSeconds)
	}

	if config.Time.ScalePreset != "" {
		valid := false
		for _, name := range timekeeping.TimeScalePresets() {
			if name == config.Time.ScalePreset {
				valid = true
				break
			}
		}
		if !valid {
			return errors.Wrapf(types.ErrConfiguration,
				"unknown time scale preset %q", config.Time.ScalePreset)
		}
	}

	if config.Culling.Enabled {
		if config.Culling.FOVDegrees <= 0 || config.Culling.FOVDegrees >= 180 {
			return errors.Wrapf(types.ErrConfiguration,
				"culling field of view must be in (0, 180), got %g", config.Culling.FOVDegrees)
		}
		if config.Culling.NearDistance <= 0 {
			return errors.Wrapf(types.ErrConfiguration,
				"culling near distance must be > 0, got %g", config.Culling.NearDistance)
		}
		if config.Culling.FarDistance <= config.Culling.NearDistance {
			return errors.Wrapf(types.ErrConfiguration,
				"culling far distance %g must exceed near distance %g",
				config.Culling.FarDistance, config.Culling.NearDistance)
		}
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".astrosim", "config.yaml"), nil
}
