package cli

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

	"github.com/lumistudio/pos/internal/api"
	"github.com/lumistudio/pos/internal/app/ledger"
	"github.com/lumistudio/pos/internal/app/settle"
	"github.com/lumistudio/pos/internal/app/writer"
	"github.com/lumistudio/pos/internal/daemon"
	"github.com/lumistudio/pos/internal/infra/docspool"
	"github.com/lumistudio/pos/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the POS HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(daemon.Home(), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := sqlite.Open(cfg.Store.Path, cfg.Store.BusyTimeout())
	if err != nil {
		return err
	}
	defer db.Close()

	spool, err := docspool.New(cfg.Documents.SpoolDir)
	if err != nil {
		return err
	}

	server := api.NewServer(db,
		writer.New(db),
		settle.New(db, spool),
		ledger.New(db),
	)
	if cfg.Metrics.Enabled {
		server.EnableMetrics()
	}

	httpServer := &http.Server{
		Addr:    cfg.API.Addr(),
		Handler: server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stdout, "pos listening on http://%s\n", cfg.API.Addr())
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	}
}
