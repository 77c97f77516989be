package main

import (
	"fmt"
	"go/token"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hengadev/obfx/internal/codegen"
	"github.com/hengadev/obfx/internal/schedule"
)

// DefaultConfigPath is where init writes and generate looks by default.
const DefaultConfigPath = "obfx.yaml"

// Time sources for the build-time part of every seed.
const (
	TimeSourceClock           = "clock"
	TimeSourceFixed           = "fixed"
	TimeSourceSourceDateEpoch = "source_date_epoch"
)

// Entropy modes.
const (
	EntropySite   = "site"
	EntropyKernel = "kernel"
)

// TimeLayout is the format of the build time text mixed into seeds.
const TimeLayout = "15:04:05"

// Config represents the configuration for the code generator
type Config struct {
	Version    string                   `yaml:"version"`
	Generation GenerationConfig         `yaml:"generation"`
	Packages   map[string]PackageConfig `yaml:"packages"`
}

// GenerationConfig holds general generation settings
type GenerationConfig struct {
	OutputSuffix   string `yaml:"output_suffix"`
	PackageName    string `yaml:"package_name"`
	DefaultLevel   string `yaml:"default_level"`
	DefaultProfile string `yaml:"default_profile"`
	TimeSource     string `yaml:"time_source"`
	FixedTime      string `yaml:"fixed_time,omitempty"`
	Entropy        string `yaml:"entropy"`
	AllowUnguarded bool   `yaml:"allow_unguarded"`
	EnvFile        string `yaml:"env_file,omitempty"`
}

// PackageConfig holds per-package overrides
type PackageConfig struct {
	Skip    bool   `yaml:"skip"`
	Level   string `yaml:"level,omitempty"`
	Profile string `yaml:"profile,omitempty"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with empty config, not defaults
	config := &Config{
		Packages: make(map[string]PackageConfig),
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Generation: GenerationConfig{
			OutputSuffix:   codegen.DefaultOutputSuffix,
			PackageName:    "auto",
			DefaultLevel:   "medium",
			DefaultProfile: "standard",
			TimeSource:     TimeSourceClock,
			Entropy:        EntropySite,
			EnvFile:        ".env",
		},
		Packages: make(map[string]PackageConfig),
	}
}

// Validate checks if the configuration is valid. Empty optional fields are
// filled with their defaults.
func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = "1"
	}

	gen := &c.Generation
	if gen.OutputSuffix == "" {
		return fmt.Errorf("output_suffix cannot be empty")
	}
	if !isValidOutputSuffix(gen.OutputSuffix) {
		return fmt.Errorf("output_suffix must start with underscore or letter")
	}

	if gen.PackageName == "" {
		gen.PackageName = "auto"
	}
	if gen.PackageName != "auto" && !isValidGoIdentifier(gen.PackageName) {
		return fmt.Errorf("package_name must be a valid Go identifier")
	}

	if gen.DefaultLevel == "" {
		gen.DefaultLevel = "medium"
	}
	if _, err := schedule.ParseLevel(gen.DefaultLevel); err != nil {
		return fmt.Errorf("default_level: %w", err)
	}
	if _, err := schedule.ParseProfile(gen.DefaultProfile); err != nil {
		return fmt.Errorf("default_profile: %w", err)
	}

	switch gen.TimeSource {
	case "":
		gen.TimeSource = TimeSourceClock
	case TimeSourceClock, TimeSourceSourceDateEpoch:
	case TimeSourceFixed:
		if _, err := time.Parse(TimeLayout, gen.FixedTime); err != nil {
			return fmt.Errorf("fixed_time must be HH:MM:SS, got %q", gen.FixedTime)
		}
	default:
		return fmt.Errorf("time_source must be one of: clock, fixed, source_date_epoch")
	}

	switch gen.Entropy {
	case "":
		gen.Entropy = EntropySite
	case EntropySite, EntropyKernel:
	default:
		return fmt.Errorf("entropy must be one of: site, kernel")
	}

	for pkg, pkgConfig := range c.Packages {
		if pkgConfig.Level != "" {
			if _, err := schedule.ParseLevel(pkgConfig.Level); err != nil {
				return fmt.Errorf("invalid level for package %s: %w", pkg, err)
			}
		}
		if _, err := schedule.ParseProfile(pkgConfig.Profile); err != nil {
			return fmt.Errorf("invalid profile for package %s: %w", pkg, err)
		}
	}

	return nil
}

// BuildDefaults resolves the level and profile a package seals with when a
// literal does not name its own.
func (c *Config) BuildDefaults(pkg string) (schedule.Level, schedule.Profile, error) {
	levelText := c.Generation.DefaultLevel
	profileText := c.Generation.DefaultProfile
	if pkgConfig, ok := c.Packages[pkg]; ok {
		if pkgConfig.Level != "" {
			levelText = pkgConfig.Level
		}
		if pkgConfig.Profile != "" {
			profileText = pkgConfig.Profile
		}
	}

	level, err := schedule.ParseLevel(levelText)
	if err != nil {
		return 0, 0, err
	}
	profile, err := schedule.ParseProfile(profileText)
	if err != nil {
		return 0, 0, err
	}
	return level, profile, nil
}

// ToDiscoveryConfig converts the YAML config to the codegen DiscoveryConfig
func (c *Config) ToDiscoveryConfig() *codegen.DiscoveryConfig {
	var skip []string
	for pkg, pkgConfig := range c.Packages {
		if pkgConfig.Skip {
			skip = append(skip, pkg)
		}
	}
	return &codegen.DiscoveryConfig{
		SkipPackages: skip,
		OutputSuffix: c.Generation.OutputSuffix,
		PackageName:  c.Generation.PackageName,
	}
}

// isValidGoIdentifier checks if a string is a valid, non-keyword Go
// identifier
func isValidGoIdentifier(s string) bool {
	return token.IsIdentifier(s)
}

// isValidOutputSuffix checks if output suffix is valid
func isValidOutputSuffix(s string) bool {
	if s == "" {
		return false
	}

	first := rune(s[0])
	return (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') || first == '_'
}
