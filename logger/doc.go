// Package logger provides structured logging for rddkit using zerolog.
//
// It supports JSON and console output, level configuration from config
// files or the environment, and component-scoped loggers carrying
// structured fields. The collection engine logs one debug event per
// evaluated stage through a logger tagged with the "rdd" component.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.New(&cfg.Logging, "rddtutorial").WithComponent("rdd")
//	log.Debug("stage evaluated", logger.Fields(logger.FieldStage, "map", logger.FieldRecords, 7))
package logger
