// Package config loads the Crucible project configuration: crucible.yml plus
// CRUCIBLE_* environment overrides, parsed into typed values with defaults
// and validation.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the Crucible project configuration
type Config struct {
	ProjectName string          `mapstructure:"project_name"`
	Generator   GeneratorConfig `mapstructure:"generator"`
	Log         LogConfig       `mapstructure:"log"`
}

// GeneratorConfig configures a substitution generation pass
type GeneratorConfig struct {
	// Manifest is the path of the substitution manifest.
	Manifest string `mapstructure:"manifest"`
	// OutputDir is where generated artifacts land in the build tree.
	OutputDir string `mapstructure:"output_dir"`
	// Package is the package name artifacts are generated into.
	Package string `mapstructure:"package"`
	// Flavor selects the generator flavor: guest or native.
	Flavor string `mapstructure:"flavor"`
	// TargetImport is the import path hosting the target implementations.
	TargetImport string `mapstructure:"target_import"`
	// Collector names the aggregate registry artifact.
	Collector string `mapstructure:"collector"`
	// AllowCollisions keeps the legacy last-write-wins overload behavior.
	AllowCollisions bool `mapstructure:"allow_collisions"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Flavors lists the accepted generator flavors.
var Flavors = []string{"guest", "native"}

// Load loads the configuration from crucible.yml or crucible.yaml
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("generator.manifest", "substitutions/manifest.json")
	v.SetDefault("generator.output_dir", "build/substitutions")
	v.SetDefault("generator.package", "substitutions")
	v.SetDefault("generator.flavor", "guest")
	v.SetDefault("generator.collector", "SubstitutorCollector")
	v.SetDefault("log.level", "info")

	v.SetConfigName("crucible")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CRUCIBLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InProject checks if the current directory is a Crucible project
func InProject() bool {
	if _, err := os.Stat("crucible.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("crucible.yaml"); err == nil {
		return true
	}
	return false
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	valid := false
	for _, f := range Flavors {
		if cfg.Generator.Flavor == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("generator.flavor must be one of %s, got: %s",
			strings.Join(Flavors, ", "), cfg.Generator.Flavor)
	}
	if cfg.Generator.Manifest == "" {
		return fmt.Errorf("generator.manifest must not be empty")
	}
	if cfg.Generator.OutputDir == "" {
		return fmt.Errorf("generator.output_dir must not be empty")
	}
	if cfg.Generator.TargetImport == "" {
		return fmt.Errorf("generator.target_import must be set to the import path of the target method implementations")
	}
	return nil
}
