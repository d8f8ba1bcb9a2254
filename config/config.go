// Package config loads ambient toolchain settings (listing format,
// simulator guards, the .include extension) from an optional TOML file,
// falling back to documented defaults when one isn't present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable the assembler and simulator read at startup.
type Config struct {
	// Listing.Width sets the label column of the .lst output the encoder
	// (C8) produces; Listing.ColorOutput sets whether diagnostics are
	// coloured.
	Listing struct {
		Width       int  `toml:"width"`
		ColorOutput bool `toml:"color_output"`
	} `toml:"listing"`

	// Simulator settings bound the toy VM's execution loop.
	Simulator struct {
		MaxCycles uint64 `toml:"max_cycles"`
	} `toml:"simulator"`

	// Include controls the optional .include preprocessor extension
	// (§4.7).
	Include struct {
		Enabled bool `toml:"enabled"`
	} `toml:"include"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Listing.Width = 30
	cfg.Listing.ColorOutput = true

	cfg.Simulator.MaxCycles = 1_000_000

	cfg.Include.Enabled = true

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "mnemonic")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "mnemonic.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "mnemonic")

	default:
		return "mnemonic.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "mnemonic.toml"
	}

	return filepath.Join(configDir, "mnemonic.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, returning defaults unchanged if
// the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
