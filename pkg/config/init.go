package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// getConfigDir returns the directory a default config file lives in:
// $XDG_CONFIG_HOME/s3adaptor, falling back to ~/.config/s3adaptor, and
// finally "." if the home directory can't be resolved.
func getConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "s3adaptor")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "s3adaptor")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists reports whether a config file exists at the default
// location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// InitConfig writes a sample configuration file, built from
// GetDefaultConfig, to the default location. It refuses to overwrite an
// existing file unless force is true.
func InitConfig(force bool) (string, error) {
	return InitConfigToPath(GetDefaultConfigPath(), force)
}

// InitConfigToPath writes a sample configuration file to path: the values
// of GetDefaultConfig, plus placeholder values for the required fields that
// have no default (the bucket and the two service base URLs), so the file
// passes Validate as written.
func InitConfigToPath(path string, force bool) (string, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config: %s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("config: create config directory: %w", err)
	}

	cfg := GetDefaultConfig()
	cfg.ObjectStore.Bucket = "s3adaptor"
	cfg.MetaService.BaseURL = "http://localhost:8080"
	cfg.AllocService.BaseURL = "http://localhost:8081"
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("config: marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}

// MustLoad resolves configPath (falling back to the default location) and
// loads it, returning a descriptive error when no config file can be
// found at all.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf(
				"no configuration file found at default location: %s\n\n"+
					"initialize one first:\n"+
					"  s3adaptorctl config init\n\n"+
					"or point at an existing file:\n"+
					"  s3adaptorctl <command> --config /path/to/config.yaml",
				GetDefaultConfigPath())
		}
		configPath = GetDefaultConfigPath()
	} else if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf(
			"configuration file not found: %s\n\n"+
				"create it with:\n"+
				"  s3adaptorctl config init --config %s",
			configPath, configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}
