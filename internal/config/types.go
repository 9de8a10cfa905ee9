package config

import "time"

// Config is the top-level molview configuration, corresponding to .molview.yml.
type Config struct {
	LogLevel string        `yaml:"log_level" koanf:"log_level"`
	Server   ServerConfig  `yaml:"server" koanf:"server"`
	Backend  BackendConfig `yaml:"backend" koanf:"backend"`
	Viewer   ViewerConfig  `yaml:"viewer" koanf:"viewer"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

// BackendConfig describes the remote simulation backend.
type BackendConfig struct {
	URL             string        `yaml:"url" koanf:"url"`
	Enabled         bool          `yaml:"enabled" koanf:"enabled"`
	WakeTimeout     time.Duration `yaml:"wake_timeout" koanf:"wake_timeout"`
	SimulateTimeout time.Duration `yaml:"simulate_timeout" koanf:"simulate_timeout"`
	Method          string        `yaml:"method" koanf:"method"`
	MaxPerMinute    int           `yaml:"max_per_minute" koanf:"max_per_minute"`
}

// ViewerConfig controls scene composition and frame output.
type ViewerConfig struct {
	FPS             int     `yaml:"fps" koanf:"fps"`
	BondThreshold   float64 `yaml:"bond_threshold" koanf:"bond_threshold"`
	Width           int     `yaml:"width" koanf:"width"`
	Height          int     `yaml:"height" koanf:"height"`
	DefaultMolecule string  `yaml:"default_molecule" koanf:"default_molecule"`
}
