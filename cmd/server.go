package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/molview/internal/dashboard"
	"github.com/ziadkadry99/molview/internal/live"
	"github.com/ziadkadry99/molview/internal/server"
)

var (
	serverPort     int
	serverAllowAll bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the viewer server",
	Long:  `Starts the HTTP server with the REST API, the live WebSocket viewer, and the agricultural impact dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}
		if cmd.Flags().Changed("allow-all") {
			cfg.Server.AllowAll = serverAllowAll
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client := newClient(cfg)
		if cfg.Backend.Enabled {
			go func() {
				if err := client.Wake(ctx); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: simulation backend not ready, serving demo data: %v\n", err)
				}
			}()
		}

		viewerSvc := live.New(client, live.Options{
			Width:           cfg.Viewer.Width,
			Height:          cfg.Viewer.Height,
			FPS:             cfg.Viewer.FPS,
			BondThreshold:   cfg.Viewer.BondThreshold,
			DefaultMolecule: cfg.Viewer.DefaultMolecule,
			Logger:          newLogger(cfg),
		})
		dash := dashboard.New(client, cfg.Viewer.DefaultMolecule)

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAll,
		}, viewerSvc, dash)

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "molview server %s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Backend: %s (%s)\n", cfg.Backend.URL, client.Status().Mode)
		fmt.Fprintf(os.Stderr, "  Viewer: %dx%d @ %d fps\n", cfg.Viewer.Width, cfg.Viewer.Height, cfg.Viewer.FPS)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	serverCmd.Flags().BoolVar(&serverAllowAll, "allow-all", false, "allow all CORS origins")
	rootCmd.AddCommand(serverCmd)
}
