// loader.go implements the configuration loading lifecycle.
//
// The loading sequence is:
//  1. Load a .env file via godotenv (non-fatal if absent).
//  2. Use envconfig to process struct tags and populate the Config struct.
//  3. Resolve the station timezone.
//  4. Install the built-in thresholds, then overlay the optional YAML
//     profile file on top of them.
//  5. Populate BuildInfo from linker-injected variables.
//  6. Validate the whole struct, thresholds included, so a profile that
//     reorders zone bounds is rejected before any work happens.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ConfigError is a diagnostic error type returned by LoadConfig to aid
// debugging. It wraps a ConfigErrorType and an underlying error.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// loaderDeps holds the injectable dependencies of the loader, enabling
// tests that neither touch the working directory nor a real profile file.
type loaderDeps struct {
	loadDotenv   func() error
	readFile     func(name string) ([]byte, error)
	loadLocation func(name string) (*time.Location, error)
}

// defaultDeps returns the standard OS-backed dependencies.
func defaultDeps() loaderDeps {
	return loaderDeps{
		loadDotenv:   func() error { return godotenv.Load() },
		readFile:     os.ReadFile,
		loadLocation: time.LoadLocation,
	}
}

// LoadConfig loads and validates the watchdog configuration from the
// environment, the optional .env file, and the optional threshold profile.
func LoadConfig() (*Config, error) {
	return loadConfigWithDeps(defaultDeps())
}

// loadConfigWithDeps is the internal implementation of LoadConfig that
// accepts injectable dependencies for testing.
func loadConfigWithDeps(deps loaderDeps) (*Config, error) {
	// Step 1: .env file. godotenv does not override variables that are
	// already set, so the OS environment keeps priority.
	_ = deps.loadDotenv()

	// Step 2: process envconfig tags. The empty prefix means tags name the
	// variables exactly (envconfig:"STATE_FILE" reads STATE_FILE).
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}

	// Step 3: station timezone.
	loc, err := deps.loadLocation(cfg.Station.Timezone)
	if err != nil {
		return nil, &ConfigError{
			Type:    ErrTimezone,
			Message: fmt.Sprintf("unknown station timezone %q", cfg.Station.Timezone),
			Err:     err,
		}
	}
	cfg.Station.Loc = loc

	// Step 4: thresholds. The profile overlays the defaults key by key, so
	// a station only declares what differs.
	cfg.Thresholds = DefaultThresholds()
	if cfg.Station.ThresholdProfile != "" {
		raw, err := deps.readFile(cfg.Station.ThresholdProfile)
		if err != nil {
			return nil, &ConfigError{
				Type:    ErrProfile,
				Message: fmt.Sprintf("cannot read threshold profile %q", cfg.Station.ThresholdProfile),
				Err:     err,
			}
		}
		if err := yaml.Unmarshal(raw, &cfg.Thresholds); err != nil {
			return nil, &ConfigError{
				Type:    ErrProfile,
				Message: fmt.Sprintf("cannot parse threshold profile %q", cfg.Station.ThresholdProfile),
				Err:     err,
			}
		}
	}

	// Step 5: build metadata.
	cfg.Build = NewBuildInfo()

	// Step 6: validate everything, profile overlays included.
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrValidation,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	return &cfg, nil
}
