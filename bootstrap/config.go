package bootstrap

import (
	"github.com/kbukum/rddkit/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ServiceConfig (value embedding) satisfies
// it via promoted methods; override ApplyDefaults and Validate to cover
// the extra sections.
//
// Example:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Engine rdd.Config `yaml:"engine" mapstructure:"engine"`
//	}
//
//	app, err := bootstrap.NewApp[*Config](&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
