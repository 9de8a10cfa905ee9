package config

import (
	"github.com/ziadkadry99/molview/internal/bonds"
	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/simulation"
)

// DefaultPath is where init writes and commands look for configuration.
const DefaultPath = ".molview.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port: 8080,
		},
		Backend: BackendConfig{
			URL:             "http://localhost:8000",
			Enabled:         false,
			WakeTimeout:     simulation.DefaultWakeTimeout,
			SimulateTimeout: simulation.DefaultSimulateTimeout,
			Method:          simulation.DefaultMethod,
			MaxPerMinute:    10,
		},
		Viewer: ViewerConfig{
			FPS:             30,
			BondThreshold:   bonds.DefaultMaxDistance,
			Width:           800,
			Height:          600,
			DefaultMolecule: molecule.DefaultMolecule,
		},
	}
}

// ClientOptions converts the backend section into simulation client options.
func (c *Config) ClientOptions() simulation.Options {
	return simulation.Options{
		BaseURL:         c.Backend.URL,
		Enabled:         c.Backend.Enabled,
		WakeTimeout:     c.Backend.WakeTimeout,
		SimulateTimeout: c.Backend.SimulateTimeout,
		Method:          c.Backend.Method,
		MaxPerMinute:    c.Backend.MaxPerMinute,
	}
}
