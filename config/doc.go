// Package config loads service configuration with Viper.
//
// LoadConfig looks for a config.yml and an .env file in the standard
// locations for a service (./cmd/<name>/, ./config/, the working directory
// and its parents), loads the .env file into the process environment with
// godotenv, and lets environment variables override file values.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("fnstat", &cfg,
//	    config.WithEnvPrefix("FNSTAT"),
//	    config.WithDefaults(map[string]any{"logging.level": "info"}),
//	)
//
// With the FNSTAT prefix, FNSTAT_LOGGING_LEVEL=debug overrides logging.level.
package config
