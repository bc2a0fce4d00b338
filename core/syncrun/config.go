package syncrun

import "time"

// Config holds the orchestrator batch, retry and circuit breaker settings.
type Config struct {
	// BatchSize is the page size requested from the authoritative source.
	BatchSize int `mapstructure:"batch_size" default:"100"`
	// BatchTimeoutSeconds bounds every fetch attempt.
	BatchTimeoutSeconds int `mapstructure:"batch_timeout_seconds" default:"30"`
	// MaxRetries is the number of retries after the first failed fetch of a batch.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// BackoffBaseMs is the first retry delay; later delays double.
	BackoffBaseMs int `mapstructure:"backoff_base_ms" default:"200"`
	// FailureRateThreshold trips the circuit breaker once failed/scanned exceeds it.
	FailureRateThreshold float64 `mapstructure:"failure_rate_threshold" default:"0.5"`
	// MinSample is the number of scanned items required before the breaker can trip.
	MinSample int `mapstructure:"min_sample" default:"20"`
	// AuthoritativePrefix is the bucket prefix holding the authoritative part export pages.
	AuthoritativePrefix string `mapstructure:"authoritative_prefix" default:"authoritative/parts/"`
}

// BatchTimeout returns the per-attempt fetch timeout.
func (c Config) BatchTimeout() time.Duration {
	if c.BatchTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.BatchTimeoutSeconds) * time.Second
}

// BackoffBase returns the first retry delay.
func (c Config) BackoffBase() time.Duration {
	if c.BackoffBaseMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(c.BackoffBaseMs) * time.Millisecond
}

func (c Config) batchSize() int {
	if c.BatchSize <= 0 {
		return 100
	}
	return c.BatchSize
}

func (c Config) maxRetries() uint64 {
	if c.MaxRetries < 0 {
		return 0
	}
	return uint64(c.MaxRetries)
}
