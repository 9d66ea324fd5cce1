package fnstat

import (
	"time"

	"github.com/kbukum/fnkit/config"
	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/validation"
	"github.com/kbukum/fnkit/version"
)

const (
	// ServiceName names the config search paths and the logger.
	ServiceName = "fnstat"
	// EnvPrefix is the prefix of environment overrides, e.g. FNSTAT_STATS_PREDICATE.
	EnvPrefix = "FNSTAT"
)

// Predicate names accepted by stats.predicate.
const (
	PredicateAll      = "all"
	PredicateEven     = "even"
	PredicateOdd      = "odd"
	PredicatePositive = "positive"
	PredicateNegative = "negative"
)

// Config is the full fnstat configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Stats     StatsConfig     `yaml:"stats" mapstructure:"stats"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// StatsConfig selects and transforms the values that are summarized.
type StatsConfig struct {
	Predicate string   `yaml:"predicate" mapstructure:"predicate" validate:"required,oneof=all even odd positive negative"`
	Min       *float64 `yaml:"min" mapstructure:"min"`
	Max       *float64 `yaml:"max" mapstructure:"max"`
	Scale     float64  `yaml:"scale" mapstructure:"scale"`
	Offset    float64  `yaml:"offset" mapstructure:"offset"`
	// Limit stops after this many kept values; 0 means no limit.
	Limit int `yaml:"limit" mapstructure:"limit" validate:"gte=0"`
}

// TelemetryConfig controls OTLP export of run spans and metrics.
type TelemetryConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// Defaults returns the lowest-precedence config values.
func Defaults() map[string]any {
	return map[string]any{
		"name":                  ServiceName,
		"stats.predicate":       PredicateAll,
		"stats.scale":           1.0,
		"stats.offset":          0.0,
		"telemetry.endpoint":    "localhost:4318",
		"telemetry.insecure":    true,
		"telemetry.sample_rate": 1.0,
		"telemetry.interval":    "15s",
	}
}

// ApplyDefaults fills in values that depend on the build.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
}

// Validate checks the service section, the struct tags, and the
// cross-field rules.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return errors.InvalidConfig(err.Error()).WithCause(err)
	}
	if err := validation.Validate(c); err != nil {
		return invalidConfig(err)
	}

	v := validation.New().
		Finite("stats.scale", c.Stats.Scale).
		Finite("stats.offset", c.Stats.Offset)
	if c.Stats.Min != nil {
		v.Finite("stats.min", *c.Stats.Min)
	}
	if c.Stats.Max != nil {
		v.Finite("stats.max", *c.Stats.Max)
	}
	if c.Stats.Min != nil && c.Stats.Max != nil {
		v.Custom(*c.Stats.Min <= *c.Stats.Max, "stats.min", "must not exceed stats.max")
	}
	if err := v.Validate(); err != nil {
		return invalidConfig(err)
	}
	return nil
}

// invalidConfig re-codes a validation failure as INVALID_CONFIG, keeping
// the field details.
func invalidConfig(err error) error {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return errors.InvalidConfig(err.Error()).WithCause(err)
	}
	return errors.InvalidConfig(appErr.Message).WithDetails(appErr.Details)
}

// LoadConfig loads, defaults and validates the fnstat config. Extra options
// are applied after the fnstat defaults and env prefix.
func LoadConfig(opts ...config.LoaderOption) (*Config, error) {
	all := append([]config.LoaderOption{
		config.WithEnvPrefix(EnvPrefix),
		config.WithDefaults(Defaults()),
	}, opts...)

	cfg := &Config{}
	if err := config.LoadConfig(ServiceName, cfg, all...); err != nil {
		return nil, errors.InvalidConfig("failed to load config").WithCause(err)
	}
	return cfg, nil
}
