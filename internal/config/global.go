package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/refcite/config.yml.
type GlobalConfig struct {
	ReferencesDir string `yaml:"references_dir,omitempty"`
	MaxAuthors    int    `yaml:"max_authors,omitempty"`
	LogLevel      string `yaml:"log_level,omitempty"`
	LogFormat     string `yaml:"log_format,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "refcite"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/refcite/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}
	return LoadGlobalConfigFrom(path)
}

// LoadGlobalConfigFrom loads a config file at an explicit path.
func LoadGlobalConfigFrom(path string) (*GlobalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}
	if cfg.ReferencesDir != "" {
		cfg.ReferencesDir = ExpandPath(cfg.ReferencesDir)
	}
	return &cfg, nil
}

// Save writes the config to path, creating parent directories.
func (c *GlobalConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// setters maps config keys to validating setters.
var setters = map[string]func(*GlobalConfig, string) error{
	"references_dir": func(c *GlobalConfig, v string) error {
		c.ReferencesDir = v
		return nil
	},
	"max_authors": func(c *GlobalConfig, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("max_authors must be a positive integer, got %q", v)
		}
		c.MaxAuthors = n
		return nil
	},
	"log_level": func(c *GlobalConfig, v string) error {
		switch v {
		case "debug", "info", "warn", "error":
			c.LogLevel = v
			return nil
		}
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", v)
	},
	"log_format": func(c *GlobalConfig, v string) error {
		switch v {
		case "text", "json":
			c.LogFormat = v
			return nil
		}
		return fmt.Errorf("log_format must be text or json, got %q", v)
	},
}

// Keys returns the settable config keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set validates value and assigns it to key.
func (c *GlobalConfig) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key: %s (valid: %v)", key, Keys())
	}
	return set(c, value)
}

// Get returns the value of key as a string, "" when unset.
func (c *GlobalConfig) Get(key string) (string, error) {
	switch key {
	case "references_dir":
		return c.ReferencesDir, nil
	case "max_authors":
		if c.MaxAuthors == 0 {
			return "", nil
		}
		return strconv.Itoa(c.MaxAuthors), nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	}
	return "", fmt.Errorf("unknown config key: %s (valid: %v)", key, Keys())
}
