package config

import (
	"testing"
	"time"
)

func TestApplyDefaults_Logging(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("expected default log level INFO, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected default log format text, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("expected default log output stdout, got %q", cfg.Logging.Output)
	}
}

func TestApplyDefaults_LoggingLevelUppercased(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "debug"}}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("expected logging level to be uppercased, got %q", cfg.Logging.Level)
	}
}

func TestApplyDefaults_Telemetry(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Telemetry.Endpoint != "localhost:4317" {
		t.Errorf("expected default telemetry endpoint, got %q", cfg.Telemetry.Endpoint)
	}
	if cfg.Telemetry.SampleRate != 1.0 {
		t.Errorf("expected default sample rate 1.0, got %v", cfg.Telemetry.SampleRate)
	}
}

func TestApplyDefaults_MetricsPortOnlySetWhenEnabled(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Metrics.Port != 0 {
		t.Errorf("expected metrics port to stay 0 when disabled, got %d", cfg.Metrics.Port)
	}

	cfg = &Config{Metrics: MetricsConfig{Enabled: true}}
	ApplyDefaults(cfg)
	if cfg.Metrics.Port != 9090 {
		t.Errorf("expected default metrics port 9090, got %d", cfg.Metrics.Port)
	}
}

func TestApplyDefaults_Geometry(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Geometry.BlockSize.Uint64() != 4*1024 {
		t.Errorf("expected default block size 4KiB, got %d", cfg.Geometry.BlockSize.Uint64())
	}
	if cfg.Geometry.ChunkSize.Uint64() != 64*1024 {
		t.Errorf("expected default chunk size 64KiB, got %d", cfg.Geometry.ChunkSize.Uint64())
	}
}

func TestApplyDefaults_ObjectStore(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.ObjectStore.Region != "us-east-1" {
		t.Errorf("expected default region us-east-1, got %q", cfg.ObjectStore.Region)
	}
	if cfg.ObjectStore.MaxRetries != 3 {
		t.Errorf("expected default max retries 3, got %d", cfg.ObjectStore.MaxRetries)
	}
	if cfg.ObjectStore.InitialBackoff != 100*time.Millisecond {
		t.Errorf("expected default initial backoff 100ms, got %v", cfg.ObjectStore.InitialBackoff)
	}
	if cfg.ObjectStore.MaxBackoff != 2*time.Second {
		t.Errorf("expected default max backoff 2s, got %v", cfg.ObjectStore.MaxBackoff)
	}
}

func TestApplyDefaults_Services(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.MetaService.Timeout != 30*time.Second {
		t.Errorf("expected default meta service timeout 30s, got %v", cfg.MetaService.Timeout)
	}
	if cfg.AllocService.Timeout != 30*time.Second {
		t.Errorf("expected default alloc service timeout 30s, got %v", cfg.AllocService.Timeout)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "ERROR", Format: "json", Output: "/var/log/s3adaptor.log"}}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "ERROR" || cfg.Logging.Format != "json" || cfg.Logging.Output != "/var/log/s3adaptor.log" {
		t.Errorf("expected explicit logging values preserved, got %+v", cfg.Logging)
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()
	if cfg == nil {
		t.Fatal("expected non-nil default config")
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("expected default logging level INFO, got %q", cfg.Logging.Level)
	}
}
