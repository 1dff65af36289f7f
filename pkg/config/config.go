// Package config loads the runtime configuration for the lora-phy CLI
// tools: default channel parameters, vector storage locations, and
// logging options.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config represents the lora-phy tool configuration.
type Config struct {
	Channel struct {
		SF         int    `yaml:"sf"`
		Bandwidth  int    `yaml:"bandwidth_hz"`
		CodingRate int    `yaml:"coding_rate"`
		OSR        int    `yaml:"oversample_ratio"`
		Window     string `yaml:"window"`
		SyncWord   int    `yaml:"sync_word"`
	} `yaml:"channel"`

	Vectors struct {
		Directory    string `yaml:"directory"`
		ProfilesFile string `yaml:"profiles_file"`
	} `yaml:"vectors"`

	Logging struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		Console    bool   `yaml:"console"`
		Structured bool   `yaml:"structured"`
		Compress   bool   `yaml:"compress"`
		MaxSize    int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age_days"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a YAML file, applying the defaults
// documented in profiles.yaml-free deployments (default channel SF7/125k,
// single vectors directory, info-level console logging).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Channel.SF == 0 {
		config.Channel.SF = 7
	}
	if config.Channel.Bandwidth == 0 {
		config.Channel.Bandwidth = 125000
	}
	if config.Channel.CodingRate == 0 {
		config.Channel.CodingRate = 5
	}
	if config.Channel.OSR == 0 {
		config.Channel.OSR = 4
	}
	if config.Channel.Window == "" {
		config.Channel.Window = "none"
	}
	if config.Channel.SyncWord == 0 {
		config.Channel.SyncWord = 0x12
	}
	if config.Vectors.Directory == "" {
		config.Vectors.Directory = "./vectors"
	}
	if config.Vectors.ProfilesFile == "" {
		config.Vectors.ProfilesFile = "./profiles.yaml"
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.MaxSize == 0 {
		config.Logging.MaxSize = 100
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = 5
	}
	if config.Logging.MaxAge == 0 {
		config.Logging.MaxAge = 30
	}

	return &config, nil
}

// Validate checks that the loaded channel configuration describes a
// supported LoRa PHY configuration.
func (c *Config) Validate() error {
	if c.Channel.SF < 7 || c.Channel.SF > 12 {
		return fmt.Errorf("spreading factor %d out of range [7,12]", c.Channel.SF)
	}
	switch c.Channel.Bandwidth {
	case 125000, 250000, 500000:
	default:
		return fmt.Errorf("unsupported bandwidth %d", c.Channel.Bandwidth)
	}
	if c.Channel.OSR < 1 {
		return fmt.Errorf("oversample ratio must be >= 1")
	}
	switch c.Channel.Window {
	case "none", "hann":
	default:
		return fmt.Errorf("unsupported window kind %q", c.Channel.Window)
	}
	if c.Channel.SyncWord < 0 || c.Channel.SyncWord > 0xFF {
		return fmt.Errorf("sync word %#x out of range for a byte", c.Channel.SyncWord)
	}
	return nil
}
