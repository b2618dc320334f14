package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/shawarma-forecast/internal/common"
	"github.com/Veraticus/shawarma-forecast/internal/config"
	"github.com/Veraticus/shawarma-forecast/internal/tui"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive forecast dashboard",
		Long: `Open the dashboard: upload a sales CSV, then watch the summary and the
detailed forecast reload once the service has retrained.

Keys: f pick a file, u or Enter upload, r reload, ? help, q quit.`,
		RunE: runDashboard,
	}

	cmd.Flags().String("file", "", "CSV to preselect for upload")

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")
	ctx := cmd.Context()
	cfg := appConfig

	// The dashboard owns the terminal, so logs go to a file.
	level, err := common.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	closeLog, err := common.RedirectToFile(cfg.LogFile, level, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to redirect logs: %w", err)
	}
	defer func() { _ = closeLog() }()

	journal, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	if journal != nil {
		defer func() { _ = journal.Close() }()
	}

	client := newClient(cfg)
	slog.Info("Starting dashboard", "base_url", client.BaseURL(), "journal", cfg.JournalEnabled())

	opts := []tui.Option{
		tui.WithReader(client),
		tui.WithImporter(client),
		tui.WithTheme(currentTheme()),
		tui.WithRecorder(recorderOf(journal)),
	}
	if file != "" {
		opts = append(opts, tui.WithInitialFile(config.ExpandPath(file)))
	}

	return tui.Run(ctx, opts...)
}
