package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// RequirementOverride raises or lowers the required headcount for a shift
// on every date matched by the recurrence rule, e.g. thin Thursday crews
// during exam periods
type RequirementOverride struct {
	RRule string `yaml:"rrule" validate:"required"`
	Shift string `yaml:"shift" validate:"required,oneof=morning opening middle closing"`
	Staff int    `yaml:"staff" validate:"min=0"`
}

// Config represents the application configuration
type Config struct {
	Year                 int                   `yaml:"year" validate:"required,min=2020"`
	Month                int                   `yaml:"month" validate:"required,min=1,max=12"`
	MembersFile          string                `yaml:"membersFile" validate:"required"`
	SurveyFile           string                `yaml:"surveyFile" validate:"required"`
	OutputDir            string                `yaml:"outputDir,omitempty"`
	RequirementOverrides []RequirementOverride `yaml:"requirementOverrides,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from barvakt_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each override
	for i, override := range cfg.RequirementOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in requirementOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for barvakt_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "barvakt_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
