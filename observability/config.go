package observability

import (
	"time"

	"github.com/kbukum/rddkit/validation"
)

// Config controls OpenTelemetry export for a process. Export is off unless
// Enabled is set; with export off the engine records into no-op providers.
type Config struct {
	Enabled    bool          `mapstructure:"enabled"`
	Endpoint   string        `mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool          `mapstructure:"insecure"`
	SampleRate float64       `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `mapstructure:"interval" validate:"gte=0"`
}

// ApplyDefaults fills unset fields with development defaults.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// TracerConfig derives the tracer settings for a service. Empty version
// and environment keep the development defaults.
func (c *Config) TracerConfig(serviceName, serviceVersion, environment string) TracerConfig {
	tc := DefaultTracerConfig(serviceName)
	if serviceVersion != "" {
		tc.ServiceVersion = serviceVersion
	}
	if environment != "" {
		tc.Environment = environment
	}
	tc.Endpoint = c.Endpoint
	tc.Insecure = c.Insecure
	tc.SampleRate = c.SampleRate
	return tc
}

// MeterConfig derives the meter settings for a service, like TracerConfig.
func (c *Config) MeterConfig(serviceName, serviceVersion, environment string) MeterConfig {
	mc := DefaultMeterConfig(serviceName)
	if serviceVersion != "" {
		mc.ServiceVersion = serviceVersion
	}
	if environment != "" {
		mc.Environment = environment
	}
	mc.Endpoint = c.Endpoint
	mc.Insecure = c.Insecure
	mc.Interval = c.Interval
	return mc
}
