package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/simulation"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to molview! Let's configure the viewer.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Backend.
	backendPrompt := promptui.Select{
		Label: "Use a remote simulation backend?",
		Items: []string{"no, demo data only", "yes"},
	}
	idx, _, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend selection: %w", err)
	}
	cfg.Backend.Enabled = idx == 1

	if cfg.Backend.Enabled {
		urlPrompt := promptui.Prompt{
			Label:   "Backend URL",
			Default: cfg.Backend.URL,
		}
		if cfg.Backend.URL, err = urlPrompt.Run(); err != nil {
			return nil, fmt.Errorf("backend url: %w", err)
		}

		methods := simulation.Methods()
		items := make([]string, len(methods))
		for i, m := range methods {
			items[i] = fmt.Sprintf("%-4s %s", m.ID, m.Name)
		}
		methodPrompt := promptui.Select{
			Label: "Default simulation method",
			Items: items,
		}
		mi, _, err := methodPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("method selection: %w", err)
		}
		cfg.Backend.Method = methods[mi].ID
	}

	// 2. Default molecule.
	moleculePrompt := promptui.Select{
		Label: "Molecule shown on startup",
		Items: molecule.Keys(),
	}
	if _, cfg.Viewer.DefaultMolecule, err = moleculePrompt.Run(); err != nil {
		return nil, fmt.Errorf("molecule selection: %w", err)
	}

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port out of range")
	}
	return nil
}
