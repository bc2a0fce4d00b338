// Package config provides configuration management for the BOM reconciler.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults are declared next to each setting with a
// `default` struct tag.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port and API key
//   - Database: MySQL (or SQLite) connection details
//   - Storage: S3/MinIO credentials and the bucket holding authoritative exports
//   - Log: Logging level and format
//   - Sync: batch size, per-batch timeout, retry backoff and circuit breaker threshold
//   - Reconcile: optional YAML rule table for the field classifier
//   - Events: NATS URL and subject prefix for domain events
//   - Telemetry: OTLP endpoint for traces
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.BatchSize)
package config
