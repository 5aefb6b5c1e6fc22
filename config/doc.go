// Package config loads program configuration from a YAML file, .env files,
// environment variables and command-line flags, in increasing priority.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("rddtutorial", &cfg,
//	    config.WithConfigFile(path),
//	    config.WithEnvPrefix("RDD"),
//	    config.WithFlags(flags, map[string]string{"partitions": "engine.default_parallelism"}),
//	)
//
// Without an explicit path the loader searches cmd/<service>/config.yml,
// config/config.yml and ./config.yml. Environment variables map onto nested
// keys by splitting on underscores (RDD_ENGINE_MASTER -> engine.master).
package config
