package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/molview/internal/bonds"
	"github.com/ziadkadry99/molview/internal/diagrams"
)

var bondsCmd = &cobra.Command{
	Use:   "bonds <molecule|file>",
	Short: "List the bonds inferred for a molecule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := resolveMolecule(args[0])
		if err != nil {
			return err
		}
		threshold, _ := cmd.Flags().GetFloat64("max-distance")
		asJSON, _ := cmd.Flags().GetBool("json")
		asMermaid, _ := cmd.Flags().GetBool("mermaid")

		list := bonds.Infer(m.Atoms, threshold)
		if asMermaid {
			fmt.Print(diagrams.BondGraph(m.Atoms, list))
			return nil
		}
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}

		fmt.Printf("%s: %d atoms, %d bonds\n", m.Name, m.Len(), len(list))
		for _, b := range list {
			fmt.Printf("  %2d %-2s - %2d %-2s  %.3f Å\n", b.A, m.Atoms[b.A].Symbol, b.B, m.Atoms[b.B].Symbol, b.Distance)
		}
		return nil
	},
}

func init() {
	bondsCmd.Flags().Float64("max-distance", bonds.DefaultMaxDistance, "bonding distance threshold in Ångström")
	bondsCmd.Flags().Bool("json", false, "print bonds as JSON")
	bondsCmd.Flags().Bool("mermaid", false, "print a Mermaid bond graph")
	rootCmd.AddCommand(bondsCmd)
}
