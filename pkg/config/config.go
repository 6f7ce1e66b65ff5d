/*
Package config manages TOML configuration for flagtrie.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/flagtrie/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure.
type Config struct {
	Scan ScanConfig `toml:"scan"`
	Dump DumpConfig `toml:"dump"`
}

// ScanConfig has options for the scan command.
type ScanConfig struct {
	MaxCost           int     `toml:"max_cost"`
	MaxResults        int     `toml:"max_results"`
	NumThreads        int     `toml:"num_threads"`
	AnomalyThreshold  float64 `toml:"anomaly_threshold"`
	LogLevel          int     `toml:"log_level"`
	Language          int     `toml:"language"`
}

// DumpConfig has options for the dump command.
type DumpConfig struct {
	Language int    `toml:"language"`
	Level    string `toml:"level"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/flagtrie
// 2. ~/Library/Application Support/flagtrie (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "flagtrie")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "flagtrie")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. customConfigPath, when non-empty and loadable
// 2. Default path: GetDefaultConfigPath(), created with defaults if missing
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values, matching the flag
// defaults given for scan and dump.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			MaxCost:          2,
			MaxResults:       5,
			NumThreads:       1,
			AnomalyThreshold: 3.0,
			LogLevel:         0,
			Language:         1,
		},
		Dump: DumpConfig{
			Language: 1,
			Level:    "MAX",
		},
	}
}

// InitConfig loads config from file or creates the default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads a Config from a TOML file.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to recover whatever sections of a TOML file parse
// cleanly, falling back to defaults for the rest.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if scanSection, ok := utils.ExtractSection(tempConfig, "scan"); ok {
		extractScanConfig(scanSection, &config.Scan)
	}
	if dumpSection, ok := utils.ExtractSection(tempConfig, "dump"); ok {
		extractDumpConfig(dumpSection, &config.Dump)
	}
	return config, nil
}

func extractScanConfig(data map[string]any, scan *ScanConfig) {
	if val, ok := utils.ExtractInt64(data, "max_cost"); ok {
		scan.MaxCost = val
	}
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		scan.MaxResults = val
	}
	if val, ok := utils.ExtractInt64(data, "num_threads"); ok {
		scan.NumThreads = val
	}
	if val, ok := utils.ExtractInt64(data, "log_level"); ok {
		scan.LogLevel = val
	}
	if val, ok := utils.ExtractInt64(data, "language"); ok {
		scan.Language = val
	}
	if val, ok := data["anomaly_threshold"].(float64); ok {
		scan.AnomalyThreshold = val
	}
}

func extractDumpConfig(data map[string]any, dump *DumpConfig) {
	if val, ok := utils.ExtractInt64(data, "language"); ok {
		dump.Language = val
	}
	if val, ok := data["level"].(string); ok {
		dump.Level = val
	}
}

// SaveConfig saves a Config into a TOML file.
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// RebuildConfigFile force creates a new config.toml at the default path.
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of the loaded config file.
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}
