/*
Package config manages TOML config for geophrase builds.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/geophrase/internal/utils"
)

// Config holds the entire build-time config structure.
type Config struct {
	Build BuildConfig `toml:"build"`
	Cache CacheConfig `toml:"cache"`
}

// BuildConfig has index-build parameters.
type BuildConfig struct {
	MaxEditDistance int    `toml:"max_edit_distance"`
	OutputDir       string `toml:"output_dir"`
}

// CacheConfig controls the query-time variant resolution cache.
type CacheConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// homeConfigCandidates lists the home-relative directories geophrase will
// try, in priority order, before giving up on a home-based config dir:
// the conventional dotfile path, then macOS's Application Support path
// for tools that were installed expecting that convention instead.
func homeConfigCandidates(homeDir string) []string {
	return []string{
		filepath.Join(homeDir, ".config", "geophrase"),
		filepath.Join(homeDir, "Library", "Application Support", "geophrase"),
	}
}

// GetConfigDir returns the first writable config directory candidate,
// falling back to the executable's own directory if the user's home
// directory can't be determined or none of its candidates are writable.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return execDir()
	}
	for _, candidate := range homeConfigCandidates(homeDir) {
		if dirWritable(candidate) {
			return candidate, nil
		}
	}
	dir, err := execDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return dir, nil
}

// execDir returns the directory containing the running binary. It's a
// fallback for GetConfigDir when the home directory can't be determined;
// if it fails too, callers fall back to built-in defaults.
func execDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// dirWritable reports whether dirPath exists (creating it if missing) and
// can be written to.
func dirWritable(dirPath string) bool {
	if _, err := os.Stat(dirPath); err != nil {
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			log.Warnf("Cannot create directory %s: %v", dirPath, err)
			return false
		}
	}
	probe := filepath.Join(dirPath, ".write_test")
	f, err := os.Create(probe)
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority resolves build-time config from, in order: an
// explicit path (typically the -config flag), the platform config
// directory (creating a default config.toml there if none exists yet),
// then built-in defaults if neither location works out. It returns the
// resolved config alongside the path it actually came from, or "" if
// nothing on disk was used.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			cfg, _ := LoadConfig(customConfigPath)
			log.Debugf("Loaded config from custom path: %s", customConfigPath)
			return cfg, customConfigPath, nil
		}
		log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			MaxEditDistance: 1,
			OutputDir:       "index/",
		},
		Cache: CacheConfig{
			MaxEntries: 4096,
		},
	}
}

// InitConfig loads config from file or creates default if missing
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

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse re-reads configPath into a loosely-typed map and pulls
// out whatever fields still parse, instead of discarding the whole file
// on one bad key.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}
	raw := make(map[string]any)
	if _, err := toml.Decode(string(data), &raw); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if buildSection, ok := raw["build"].(map[string]any); ok {
		extractBuildConfig(buildSection, &config.Build)
	}
	if cacheSection, ok := raw["cache"].(map[string]any); ok {
		extractCacheConfig(cacheSection, &config.Cache)
	}
	return config, nil
}

// extractBuildConfig extracts build configuration from a map
func extractBuildConfig(data map[string]any, build *BuildConfig) {
	if val, ok := extractInt(data, "max_edit_distance"); ok {
		build.MaxEditDistance = val
	}
	if val, ok := data["output_dir"].(string); ok {
		build.OutputDir = val
	}
}

// extractCacheConfig extracts cache configuration from a map
func extractCacheConfig(data map[string]any, cache *CacheConfig) {
	if val, ok := extractInt(data, "max_entries"); ok {
		cache.MaxEntries = val
	}
}

// extractInt pulls an integer out of a decoded TOML map; toml.Decode
// produces int64 for bare integer values.
func extractInt(data map[string]any, key string) (int, bool) {
	val, ok := data[key].(int64)
	if !ok {
		return 0, false
	}
	return int(val), true
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.WriteTOML(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	if !filepath.IsAbs(configPath) {
		if abs, err := filepath.Abs(configPath); err == nil {
			return abs
		}
	}
	return configPath
}
