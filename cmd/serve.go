package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/molview/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing molecule parsing, bond inference, scene composition and simulation tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := newClient(cfg)
		if cfg.Backend.Enabled {
			go func() {
				if err := client.Wake(context.Background()); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: simulation backend not ready, using demo data: %v\n", err)
				}
			}()
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "molview MCP server started on stdio (backend=%s)\n", client.Status().Mode)

		srv := mcpserver.NewServer(client, cfg.Viewer.BondThreshold)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
