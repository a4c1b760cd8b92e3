package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Tag targets for the driver TAG command
const (
	TagTargetHead = "head"
	TagTargetTail = "tail"
)

// Search policies for the driver FIND command
const (
	LookupLegacy = "legacy"
	LookupStrict = "strict"
)

// Config struct holds application configuration
type Config struct {
	LogFile   string `json:"log_file" yaml:"log_file"`
	Debug     bool   `json:"debug" yaml:"debug"`
	TagTarget string `json:"tag_target" yaml:"tag_target"`
	Lookup    string `json:"lookup" yaml:"lookup"`
}

var (
	configInstance *Config   // Singleton configInstance
	configOnce     sync.Once // Ensures thread-safe initialization
)

// LoadConfig initializes the singleton configInstance
func LoadConfig(filename string) (*Config, error) {
	var err error
	configOnce.Do(func() {
		configInstance, err = ReadConfig(filename)
	})
	if err != nil {
		return nil, err
	}
	return GetConfig()
}

// ReadConfig reads and parses a config file without touching the singleton.
// A missing file yields the defaults.
func ReadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return getDefaultConfig(), nil
		}
		return nil, err
	}

	config := &Config{}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}
	}

	applyDefaults(config)
	return config, nil
}

// GetConfig returns the singleton config configInstance
func GetConfig() (*Config, error) {
	if configInstance == nil {
		return nil, errors.New("Config not initialized. Call LoadConfig() first")
	}
	return configInstance, nil
}

// getDefaultConfig returns default config values
func getDefaultConfig() *Config {
	return &Config{
		TagTarget: TagTargetHead,
		Lookup:    LookupLegacy,
	}
}

// applyDefaults ensures missing values get defaults
func applyDefaults(config *Config) {
	config.TagTarget = strings.ToLower(config.TagTarget)
	if config.TagTarget != TagTargetHead && config.TagTarget != TagTargetTail {
		config.TagTarget = TagTargetHead
	}
	config.Lookup = strings.ToLower(config.Lookup)
	if config.Lookup != LookupLegacy && config.Lookup != LookupStrict {
		config.Lookup = LookupLegacy
	}
}
