package config

import (
	"strings"
	"time"

	"github.com/lattixfs/s3adaptor/internal/bytesize"
)

// ApplyDefaults fills in any zero-valued fields of cfg with sensible
// defaults: explicit values from file or environment are always
// preserved, only zero values are replaced.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)
	applyGeometryDefaults(&cfg.Geometry)
	applyObjectStoreDefaults(&cfg.ObjectStore)
	applyServiceDefaults(&cfg.MetaService)
	applyServiceDefaults(&cfg.AllocService)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Enabled && cfg.Port == 0 {
		cfg.Port = 9090
	}
}

// applyGeometryDefaults sets a conservative block/chunk granularity: 4KiB
// blocks, 64KiB chunks. Real deployments are expected to override both —
// these exist so a config file that omits geometry entirely still starts.
func applyGeometryDefaults(cfg *GeometryConfig) {
	if cfg.BlockSize == 0 {
		cfg.BlockSize = 4 * bytesize.KiB
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = 64 * bytesize.KiB
	}
}

func applyObjectStoreDefaults(cfg *ObjectStoreConfig) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = 100 * time.Millisecond
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = 2 * time.Second
	}
}

func applyServiceDefaults(cfg *ServiceConfig) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
}

// GetDefaultConfig returns a Config with all defaults applied, useful for
// generating a sample configuration file or as a fallback when no config
// file is found.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
