package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "lora-phy-config-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	t.Run("Valid Config", func(t *testing.T) {
		configContent := `
channel:
  sf: 9
  bandwidth_hz: 250000
  coding_rate: 6
  oversample_ratio: 8
  window: hann
  sync_word: 0xAB

vectors:
  directory: "/tmp/lora-vectors"
  profiles_file: "/tmp/profiles.yaml"

logging:
  level: "debug"
  file: "/var/log/lora-phy.log"
  console: true
`
		configPath := filepath.Join(tempDir, "valid.yaml")
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if cfg.Channel.SF != 9 {
			t.Errorf("Expected sf 9, got %d", cfg.Channel.SF)
		}
		if cfg.Channel.Bandwidth != 250000 {
			t.Errorf("Expected bandwidth 250000, got %d", cfg.Channel.Bandwidth)
		}
		if cfg.Channel.Window != "hann" {
			t.Errorf("Expected window hann, got %s", cfg.Channel.Window)
		}
		if cfg.Vectors.Directory != "/tmp/lora-vectors" {
			t.Errorf("Expected vectors directory override, got %s", cfg.Vectors.Directory)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("Expected log level debug, got %s", cfg.Logging.Level)
		}
	})

	t.Run("Config With Defaults", func(t *testing.T) {
		configPath := filepath.Join(tempDir, "minimal.yaml")
		if err := os.WriteFile(configPath, []byte("channel:\n  sf: 10\n"), 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if cfg.Channel.SF != 10 {
			t.Errorf("Expected sf 10, got %d", cfg.Channel.SF)
		}
		if cfg.Channel.Bandwidth != 125000 {
			t.Errorf("Expected default bandwidth 125000, got %d", cfg.Channel.Bandwidth)
		}
		if cfg.Channel.OSR != 4 {
			t.Errorf("Expected default osr 4, got %d", cfg.Channel.OSR)
		}
		if cfg.Channel.SyncWord != 0x12 {
			t.Errorf("Expected default sync word 0x12, got %#x", cfg.Channel.SyncWord)
		}
		if cfg.Vectors.Directory != "./vectors" {
			t.Errorf("Expected default vectors directory, got %s", cfg.Vectors.Directory)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Expected default log level info, got %s", cfg.Logging.Level)
		}
		if cfg.Logging.MaxSize != 100 {
			t.Errorf("Expected default log max size 100, got %d", cfg.Logging.MaxSize)
		}
	})

	t.Run("File Not Found", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if err == nil {
			t.Error("Expected error for nonexistent file, got nil")
		}
		if !strings.Contains(err.Error(), "failed to read config file") {
			t.Errorf("Expected 'failed to read config file' error, got: %v", err)
		}
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		configPath := filepath.Join(tempDir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("channel:\n  sf: [broken\n"), 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		_, err := LoadConfig(configPath)
		if err == nil {
			t.Error("Expected error for invalid YAML, got nil")
		}
		if !strings.Contains(err.Error(), "failed to parse config file") {
			t.Errorf("Expected 'failed to parse config file' error, got: %v", err)
		}
	})

	t.Run("Empty File", func(t *testing.T) {
		configPath := filepath.Join(tempDir, "empty.yaml")
		if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
			t.Fatalf("Failed to write empty config file: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("Expected no error for empty file, got: %v", err)
		}
		if cfg.Channel.SF != 7 {
			t.Errorf("Expected default sf for empty file, got %d", cfg.Channel.SF)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("Valid Config", func(t *testing.T) {
		cfg := &Config{}
		cfg.Channel.SF = 7
		cfg.Channel.Bandwidth = 125000
		cfg.Channel.OSR = 1
		cfg.Channel.Window = "none"
		cfg.Channel.SyncWord = 0x12

		if err := cfg.Validate(); err != nil {
			t.Errorf("Expected no error for valid config, got: %v", err)
		}
	})

	t.Run("SF Out Of Range", func(t *testing.T) {
		cfg := &Config{}
		cfg.Channel.SF = 13
		cfg.Channel.Bandwidth = 125000
		cfg.Channel.OSR = 1
		cfg.Channel.Window = "none"

		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for sf out of range, got nil")
		}
	})

	t.Run("Unsupported Bandwidth", func(t *testing.T) {
		cfg := &Config{}
		cfg.Channel.SF = 7
		cfg.Channel.Bandwidth = 333000
		cfg.Channel.OSR = 1
		cfg.Channel.Window = "none"

		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for unsupported bandwidth, got nil")
		}
	})

	t.Run("Invalid OSR", func(t *testing.T) {
		cfg := &Config{}
		cfg.Channel.SF = 7
		cfg.Channel.Bandwidth = 125000
		cfg.Channel.OSR = 0
		cfg.Channel.Window = "none"

		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for osr < 1, got nil")
		}
	})

	t.Run("Unsupported Window", func(t *testing.T) {
		cfg := &Config{}
		cfg.Channel.SF = 7
		cfg.Channel.Bandwidth = 125000
		cfg.Channel.OSR = 1
		cfg.Channel.Window = "blackman"

		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for unsupported window, got nil")
		}
	})
}

func TestConfigIntegration(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "lora-phy-config-integration")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configContent := `
channel:
  sf: 12
  bandwidth_hz: 500000
  oversample_ratio: 2

vectors:
  directory: "/tmp/lora-vectors"

logging:
  level: "info"
  console: true
`
	configPath := filepath.Join(tempDir, "integration.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Failed to validate config: %v", err)
	}

	if cfg.Channel.SF != 12 {
		t.Errorf("Expected sf 12, got %d", cfg.Channel.SF)
	}
	if cfg.Channel.Bandwidth != 500000 {
		t.Errorf("Expected bandwidth 500000, got %d", cfg.Channel.Bandwidth)
	}
	if cfg.Vectors.ProfilesFile != "./profiles.yaml" {
		t.Errorf("Expected default profiles file, got %s", cfg.Vectors.ProfilesFile)
	}
}
