// Command forecast-stub serves an in-memory forecasting service for demos
// and local development of the forecast client.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Veraticus/shawarma-forecast/internal/common"
	"github.com/Veraticus/shawarma-forecast/internal/config"
	"github.com/Veraticus/shawarma-forecast/internal/stubserver"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:          "forecast-stub",
		Short:        "Run an in-memory stand-in for the forecasting service",
		Args:         cobra.NoArgs,
		RunE:         run,
		SilenceUsage: true,
	}
	cmd.Flags().String("addr", "localhost:8000", "address to serve")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	levelName, _ := cmd.Flags().GetString("log-level")

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	level, err := common.ParseLevel(levelName)
	if err != nil {
		return err
	}
	if err := common.SetupLogger(level, "console"); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := stubserver.New()
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	slog.Info("Stub forecasting service listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
	}

	slog.Info("Shutting down stub service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return <-errCh
}
