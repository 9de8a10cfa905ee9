package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/simulation"
)

var moleculesCmd = &cobra.Command{
	Use:     "molecules",
	Aliases: []string{"ls"},
	Short:   "List the demo molecule catalog and simulation methods",
	Run: func(cmd *cobra.Command, args []string) {
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tNAME\tFORMULA\tCATEGORY\tATOMS")
		for _, e := range molecule.All() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", e.Key, e.Name, e.Formula, e.Category, len(e.Atoms))
		}
		tw.Flush()

		if verbose {
			fmt.Println()
			for _, m := range simulation.Methods() {
				fmt.Printf("%s  %s: %s\n", m.ID, m.Name, m.Description)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(moleculesCmd)
}
