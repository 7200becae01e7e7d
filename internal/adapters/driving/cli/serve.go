package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/passage/internal/adapters/driven/config/file"
	"github.com/custodia-labs/passage/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/passage/internal/watcher"
)

var (
	serveAddr  string
	serveWatch string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Starts the HTTP API and, when a watch directory is configured,
mirrors files dropped into it into the document store. Runs until
interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&serveWatch, "watch", "", "directory to watch for documents (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if ingestService == nil || queryService == nil || documentService == nil {
		return errors.New("services not configured")
	}

	addr := serveAddr
	watchDir := serveWatch
	if configStore != nil {
		if addr == "" {
			addr = configStore.GetString(file.KeyHTTPAddr)
		}
		if watchDir == "" {
			watchDir = configStore.GetString(file.KeyWatchDir)
		}
	}

	server := httpapi.NewServer(ingestService, queryService, documentService, httpapi.WithAddr(addr))
	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchDir != "" {
		w := watcher.New(watchDir, ingestService, documentService)
		if err := w.Start(ctx); err != nil {
			_ = server.Shutdown(context.Background())
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer w.Close()
	}

	cmd.Printf("Listening on %s. Press Ctrl+C to stop.\n", server.Addr())
	<-ctx.Done()

	return server.Shutdown(context.Background())
}
