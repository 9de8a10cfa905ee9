package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/molview/internal/dashboard"
	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/simulation"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <molecule>",
	Short: "Run a simulation and print the impact report",
	Long:  `Runs a simulation for a catalog molecule (falling back to demo data) and prints the dashboard report as Markdown, or HTML with --html.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		entry, ok := molecule.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown molecule %q", args[0])
		}
		method, _ := cmd.Flags().GetString("method")
		if method != "" && !simulation.ValidMethod(method) {
			return fmt.Errorf("unknown method %q", method)
		}
		asHTML, _ := cmd.Flags().GetBool("html")

		ctx := context.Background()
		client := newClient(cfg)
		if cfg.Backend.Enabled {
			if err := client.Wake(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v; using demo data\n", err)
			}
		}

		o := client.Simulate(ctx, simulation.Request{Molecule: entry.Key, Method: method})
		md, err := dashboard.Markdown(dashboard.Compute(entry, o), o)
		if err != nil {
			return err
		}
		if !asHTML {
			fmt.Print(md)
			return nil
		}
		html, err := dashboard.New(client, entry.Key).HTML(md)
		if err != nil {
			return err
		}
		fmt.Print(html)
		return nil
	},
}

func init() {
	simulateCmd.Flags().String("method", "", "simulation method (vqe, hf, dft)")
	simulateCmd.Flags().Bool("html", false, "render the report as HTML")
	rootCmd.AddCommand(simulateCmd)
}
