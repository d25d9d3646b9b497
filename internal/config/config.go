// Package config defines the configuration for the Sentinela watchdog.
// Configuration is loaded once at process start and is immutable thereafter;
// every component receives the subset it needs, never the environment.
//
// Values are resolved via a priority chain:
//
//	OS Environment (highest) -> Dotenv file -> Built-in defaults
//
// plus an optional YAML threshold profile that overrides the built-in zone
// and alert thresholds for stations with different climates. Any missing
// required value or invalid format aborts the run before the lock is taken.
package config

import (
	"time"

	"github.com/SistemasVox/clima-udi/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret type
// used for credentials so they cannot leak through logs or dumps.
type SecretString = types.SecretString

// Config is the top-level configuration for one watchdog run.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	Station  StationConfig
	Database DatabaseConfig
	WhatsApp WhatsAppConfig
	State    StateConfig
	Lock     LockConfig
	Cycle    CycleConfig

	// Thresholds is populated by the loader from built-in defaults plus the
	// optional profile file; it never comes from individual env vars.
	Thresholds Thresholds `ignored:"true"`

	// Build metadata (injected via ldflags, not env).
	Build BuildInfo `ignored:"true"`
}

// StationConfig identifies the station this process watches and how its
// local time is derived. All message timestamps and the once-per-day report
// gate use the station timezone, not the host clock's zone.
type StationConfig struct {
	City     string `envconfig:"STATION_CITY" default:"Uberlândia"`
	Timezone string `envconfig:"STATION_TZ" default:"America/Sao_Paulo"`

	// ThresholdProfile optionally points at a YAML file overriding the
	// built-in thresholds (per-station tuning). Empty means defaults only.
	ThresholdProfile string `envconfig:"THRESHOLD_PROFILE"`

	// Loc is resolved from Timezone by the loader.
	Loc *time.Location `ignored:"true"`
}

// DatabaseConfig holds the readings-store connection parameters. The pool is
// deliberately tiny: one cycle issues a handful of sequential queries.
type DatabaseConfig struct {
	URL types.SecretString `envconfig:"DATABASE_URL" validate:"required"`

	MaxConns       int           `envconfig:"DB_MAX_CONNS" default:"2" validate:"min=1"`
	AcquireTimeout time.Duration `envconfig:"DB_ACQUIRE_TIMEOUT" default:"2s"`
}

// WhatsAppConfig holds the gateway endpoint and delivery tuning. Retries and
// backoff belong to the gateway client; the engine itself never retries a
// message.
type WhatsAppConfig struct {
	APIURL   string             `envconfig:"WHATSAPP_API_URL" validate:"required,url"`
	Password types.SecretString `envconfig:"WHATSAPP_API_PASSWORD" validate:"required"`

	// Numbers is the comma-separated recipient list. A message counts as
	// dispatched only when every recipient accepted it.
	Numbers []string `envconfig:"WHATSAPP_NUMBERS" validate:"required,min=1"`

	Timeout    time.Duration `envconfig:"WHATSAPP_TIMEOUT" default:"10s"`
	MaxRetries int           `envconfig:"WHATSAPP_MAX_RETRIES" default:"2" validate:"min=0"`
}

// StateConfig locates the persisted state document and its compressed
// archive. An empty ArchiveDir disables archiving.
type StateConfig struct {
	File        string `envconfig:"STATE_FILE" default:"states.json"`
	ArchiveDir  string `envconfig:"STATE_ARCHIVE_DIR"`
	ArchiveKeep int    `envconfig:"STATE_ARCHIVE_KEEP" default:"30" validate:"min=1"`
}

// LockConfig guards against overlapping cron runs. A leftover lock older
// than MaxAge is presumed to belong to a crashed run and is reclaimed.
type LockConfig struct {
	File   string        `envconfig:"LOCK_FILE" default:".sentinela.lock"`
	MaxAge time.Duration `envconfig:"LOCK_MAX_AGE" default:"5m"`
}

// CycleConfig bounds one whole run, wall clock, from lock acquisition to
// persist. Exceeding the budget fails the cycle without persisting.
type CycleConfig struct {
	Budget time.Duration `envconfig:"CYCLE_BUDGET" default:"2m"`
}

// BuildInfo carries version metadata injected at compile time.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrParsing indicates envconfig could not parse the environment.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
	// ErrValidation indicates the populated struct failed validation.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrProfile indicates the threshold profile file could not be applied.
	ErrProfile ConfigErrorType = "PROFILE_FAILED"
	// ErrTimezone indicates the station timezone could not be resolved.
	ErrTimezone ConfigErrorType = "TIMEZONE_FAILED"
)
