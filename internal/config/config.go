package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/simulation"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nested keys: MOLVIEW_SERVER__PORT sets server.port.
const EnvPrefix = "MOLVIEW_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (MOLVIEW_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps MOLVIEW_BACKEND__WAKE_TIMEOUT to backend.wake_timeout.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Backend.Enabled && c.Backend.URL == "" {
		return fmt.Errorf("backend.url is required when the backend is enabled")
	}
	if c.Backend.WakeTimeout < 0 || c.Backend.SimulateTimeout < 0 {
		return fmt.Errorf("backend timeouts must be non-negative")
	}
	if c.Backend.Method != "" && !simulation.ValidMethod(c.Backend.Method) {
		return fmt.Errorf("invalid backend.method %q: must be one of vqe, hf, dft", c.Backend.Method)
	}
	if c.Backend.MaxPerMinute < 0 {
		return fmt.Errorf("backend.max_per_minute must be non-negative")
	}

	if c.Viewer.FPS < 1 || c.Viewer.FPS > 240 {
		return fmt.Errorf("viewer.fps must be between 1 and 240")
	}
	if c.Viewer.BondThreshold < 0 {
		return fmt.Errorf("viewer.bond_threshold must be non-negative")
	}
	if c.Viewer.Width < 1 || c.Viewer.Height < 1 {
		return fmt.Errorf("viewer.width and viewer.height must be positive")
	}
	if c.Viewer.DefaultMolecule != "" {
		if _, ok := molecule.Get(c.Viewer.DefaultMolecule); !ok {
			return fmt.Errorf("unknown viewer.default_molecule %q", c.Viewer.DefaultMolecule)
		}
	}

	return nil
}
