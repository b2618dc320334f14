package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Veraticus/shawarma-forecast/internal/cli"
	"github.com/Veraticus/shawarma-forecast/internal/common"
	"github.com/Veraticus/shawarma-forecast/internal/model"
	"github.com/Veraticus/shawarma-forecast/internal/service"
	"github.com/Veraticus/shawarma-forecast/internal/storage"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded upload attempts",
		Long: `List upload attempts recorded in the local journal, newest first.

The journal is off unless journal.path (FORECAST_JOURNAL_PATH) is set.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().Int("limit", storage.DefaultListLimit, "Maximum number of uploads to show")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	ctx := cmd.Context()

	journal, err := openJournal(ctx, appConfig)
	if err != nil {
		return err
	}
	if journal == nil {
		return common.NewUserError(
			"The upload journal is disabled. Set journal.path or FORECAST_JOURNAL_PATH to enable it.",
			common.ErrMissingConfig,
		)
	}
	defer func() { _ = journal.Close() }()

	return printHistory(ctx, cmd.OutOrStdout(), journal, limit)
}

func printHistory(ctx context.Context, w io.Writer, journal service.UploadJournal, limit int) error {
	records, err := journal.ListUploads(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list uploads: %w", err)
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No uploads recorded yet."))
		return err
	}

	_, err = fmt.Fprintln(w, renderHistory(records))
	return err
}

func renderHistory(records []model.UploadRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		result := cli.SuccessIcon + " ok"
		if !r.Succeeded {
			result = cli.ErrorIcon + " failed"
		}
		rows = append(rows, []string{
			r.FinishedAt.Local().Format("2006-01-02 15:04"),
			r.Filename,
			result,
			strconv.Itoa(r.Inserted),
			r.Duration().Round(time.Millisecond).String(),
			r.Message,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(cli.SubtleStyle).
		Headers("Finished", "File", "Result", "Rows", "Took", "Message").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			return style
		}).
		Render()
}
