package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ziadkadry99/molview/internal/config"
	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/molfile"
	"github.com/ziadkadry99/molview/internal/simulation"
	"github.com/ziadkadry99/molview/internal/viewer"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `molview init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger returns the viewer logger for cfg. --verbose forces debug.
func newLogger(cfg *config.Config) viewer.Logger {
	if verbose {
		return viewer.NewStdLogger("debug")
	}
	return viewer.NewStdLogger(cfg.LogLevel)
}

// newClient builds the simulation client from config.
func newClient(cfg *config.Config) *simulation.Client {
	return simulation.NewClient(cfg.ClientOptions())
}

// resolveMolecule accepts a catalog key or a path to a molecule-string file.
// The second return reports whether the molecule came from the catalog.
func resolveMolecule(arg string) (molecule.Molecule, bool, error) {
	if entry, ok := molecule.Get(arg); ok {
		return entry.Molecule(), true, nil
	}
	if _, err := os.Stat(arg); err == nil {
		f, err := molfile.Load(arg)
		if err != nil {
			return molecule.Molecule{}, false, err
		}
		if f.Skipped > 0 {
			fmt.Fprintf(os.Stderr, "Warning: skipped %d malformed record(s) in %s\n", f.Skipped, arg)
		}
		return f.Molecule, false, nil
	}
	return molecule.Molecule{}, false, fmt.Errorf("unknown molecule %q (catalog: %s)", arg, strings.Join(molecule.Keys(), ", "))
}
