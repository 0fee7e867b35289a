// Package config loads resort configuration from .resort/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the resort configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the resort configuration directory
const ConfigDirName = ".resort"

// Config holds all resort configuration
type Config struct {
	Backup  BackupConfig  `yaml:"backup"`
	Banners BannersConfig `yaml:"banners"`
	Output  OutputConfig  `yaml:"output"`
}

// BackupConfig holds configuration for backups written before rewriting.
type BackupConfig struct {
	// Enabled controls whether fix writes a backup before replacing a file.
	Enabled bool `yaml:"enabled"`
	// Suffix is appended to the original file name for the backup.
	Suffix string `yaml:"suffix"`
}

// BannersConfig holds the section labels emitted in reordered output.
type BannersConfig struct {
	TypeLabel     string `yaml:"type_label"`
	FunctionLabel string `yaml:"function_label"`
}

// OutputConfig holds configuration for report formatting.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .resort/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		// No config dir found, return defaults
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .resort directory by walking up from startDir.
// Returns the path to the .resort directory if found.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root, config not found
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .resort directory if it doesn't exist.
// Returns the path to the .resort directory.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	if !IsValidFormat(cfg.Output.DefaultFormat) {
		return fmt.Errorf("%w: default_format must be one of %v, got %q",
			ErrInvalidConfig, ValidFormats, cfg.Output.DefaultFormat)
	}

	if cfg.Backup.Suffix == "" {
		return fmt.Errorf("%w: backup suffix must not be empty", ErrInvalidConfig)
	}
	if filepath.Base(cfg.Backup.Suffix) != cfg.Backup.Suffix {
		return fmt.Errorf("%w: backup suffix must not contain path separators, got %q",
			ErrInvalidConfig, cfg.Backup.Suffix)
	}

	if cfg.Banners.TypeLabel == "" || cfg.Banners.FunctionLabel == "" {
		return fmt.Errorf("%w: banner labels must not be empty", ErrInvalidConfig)
	}

	return nil
}

// SaveDefault writes the default configuration to .resort/config.yaml in
// workDir. Creates the .resort directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	header := "# resort configuration\n# See https://github.com/hargabyte/resort for documentation\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}
