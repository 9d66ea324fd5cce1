package bootstrap

import (
	"github.com/kbukum/fnkit/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ServiceConfig (value embedding) satisfies
// it through promoted methods.
//
// Example:
//
//	type StatsConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Predicate string `yaml:"predicate" mapstructure:"predicate"`
//	}
//
//	app, err := bootstrap.NewApp[*StatsConfig](&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
