// Package config loads the translator's static configuration: viper for
// layered sources (environment, file, defaults), mapstructure
// decode hooks for human-readable durations and byte sizes, and
// go-playground/validator for struct-tag validation.
//
// Configuration sources, highest precedence first:
//  1. Environment variables (S3ADAPTOR_*)
//  2. Configuration file (YAML)
//  3. Default values
//
// Environment variables override only keys that appear in the
// configuration file. When no configuration file is found, Load returns
// the defaults without consulting the environment. No command-line flags
// are bound.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/lattixfs/s3adaptor/internal/bytesize"
)

// Config is the translator's static configuration.
type Config struct {
	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Telemetry controls OpenTelemetry distributed tracing.
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// Metrics holds the metrics switch and port.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Geometry fixes the block/chunk partitioning at Init; it cannot change
	// for the lifetime of a filesystem's objects without invalidating
	// every existing object name.
	Geometry GeometryConfig `mapstructure:"geometry" yaml:"geometry"`

	// ObjectStore configures the S3-compatible bucket backing block I/O.
	ObjectStore ObjectStoreConfig `mapstructure:"object_store" yaml:"object_store"`

	// MetaService locates the metadata service's version-bump RPC.
	MetaService ServiceConfig `mapstructure:"meta_service" yaml:"meta_service"`

	// AllocService locates the space-allocation service's chunk-id RPC.
	AllocService ServiceConfig `mapstructure:"alloc_service" yaml:"alloc_service"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format: text or json.
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written: stdout, stderr, or a file path.
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// TelemetryConfig controls OpenTelemetry distributed tracing.
type TelemetryConfig struct {
	Enabled     bool    `mapstructure:"enabled" yaml:"enabled"`
	Endpoint    string  `mapstructure:"endpoint" yaml:"endpoint"`
	Insecure    bool    `mapstructure:"insecure" yaml:"insecure"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate"`
}

// MetricsConfig holds the metrics switch and port. This package only loads
// and validates them; it starts no metrics HTTP server and does not itself
// turn metrics collection on or off.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// GeometryConfig fixes the block and chunk sizes. ChunkSize must be a
// positive multiple of BlockSize; that cross-field rule is checked
// separately in Validate, since validator's struct tags can't express
// "divisible by another field" cleanly.
type GeometryConfig struct {
	BlockSize bytesize.Size `mapstructure:"block_size" validate:"required" yaml:"block_size"`
	ChunkSize bytesize.Size `mapstructure:"chunk_size" validate:"required" yaml:"chunk_size"`
}

// ObjectStoreConfig configures the S3-compatible bucket, mirroring
// pkg/objectstore/s3.Config's fields one-to-one so Load's output can be
// passed straight through.
type ObjectStoreConfig struct {
	Endpoint        string `mapstructure:"endpoint" yaml:"endpoint"`
	Region          string `mapstructure:"region" validate:"required" yaml:"region"`
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key"`
	Bucket          string `mapstructure:"bucket" validate:"required" yaml:"bucket"`
	KeyPrefix       string `mapstructure:"key_prefix" yaml:"key_prefix,omitempty"`
	ForcePathStyle  bool   `mapstructure:"force_path_style" yaml:"force_path_style"`

	MaxRetries     uint          `mapstructure:"max_retries" yaml:"max_retries"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff" yaml:"initial_backoff"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff" yaml:"max_backoff"`
}

// ServiceConfig locates an external RPC collaborator (the metadata or
// allocation service).
type ServiceConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required" yaml:"base_url"`
	Path    string        `mapstructure:"path" yaml:"path,omitempty"`
	Token   string        `mapstructure:"token" yaml:"token,omitempty"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Load reads configuration from file, environment, and defaults, applying
// defaults and validating the result before returning.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}
	if !found {
		cfg := GetDefaultConfig()
		return cfg, nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHooks())); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return &cfg, nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("S3ADAPTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("config: read config file: %w", err)
	}
	return true, nil
}

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
}

// byteSizeDecodeHook lets config files write block_size/chunk_size as
// human-readable strings ("4Ki") or plain integers.
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(bytesize.Size(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return bytesize.Parse(v)
		case int:
			return bytesize.Size(v), nil
		case int64:
			return bytesize.Size(v), nil
		case uint64:
			return bytesize.Size(v), nil
		case float64:
			return bytesize.Size(v), nil
		default:
			return data, nil
		}
	}
}

// Validate checks cfg against its struct tags, plus the one cross-field
// rule validator's tag syntax can't express directly: chunk size must be a
// positive multiple of block size.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}
	g := cfg.Geometry
	if g.BlockSize == 0 || g.ChunkSize == 0 {
		return fmt.Errorf("geometry: block_size and chunk_size must be positive")
	}
	if g.ChunkSize.Uint64()%g.BlockSize.Uint64() != 0 {
		return fmt.Errorf("geometry: chunk_size (%s) must be a multiple of block_size (%s)", g.ChunkSize, g.BlockSize)
	}
	return nil
}
