package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmalina/shape-rank/internal/config"
	"github.com/lmalina/shape-rank/internal/identity"
	"github.com/lmalina/shape-rank/internal/session"
	"github.com/lmalina/shape-rank/internal/shapeapi"
	"github.com/lmalina/shape-rank/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Shape Rank web server.
The web server provides a browser-based interface for uploading photos,
comparing detected silhouettes against reference sets, and ranking the
similarity methods by how well they match.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	// Flags win over environment configuration when set explicitly.
	if cmd.Flags().Changed("port") {
		cfg.Web.Port = mustGetInt(cmd, "port")
	}
	if cmd.Flags().Changed("host") {
		cfg.Web.Host = mustGetString(cmd, "host")
	}

	client, err := shapeapi.NewClient(cfg.API.URL)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	sessionID, err := identity.Load(cfg.Session.File)
	if err != nil {
		return fmt.Errorf("failed to load session identity: %w", err)
	}

	sess := session.New(client, sessionID, cfg.Catalog.MethodIDs())
	server := web.NewServer(cfg, client, sess)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Backend API: %s\n", cfg.API.URL)
	fmt.Printf("Session: %s\n", sessionID)
	fmt.Printf("Starting Shape Rank Web UI on http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
