package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/shawarma-forecast/internal/cli"
	"github.com/Veraticus/shawarma-forecast/internal/model"
	"github.com/Veraticus/shawarma-forecast/internal/service"
	"github.com/Veraticus/shawarma-forecast/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the model versions trained by the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printModels(cmd.Context(), cmd.OutOrStdout(), newClient(appConfig))
		},
	}
}

func printModels(ctx context.Context, w io.Writer, lister service.ModelLister) error {
	versions, err := lister.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	if len(versions) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No models trained yet. Upload a sales CSV first."))
		return err
	}

	_, err = fmt.Fprintln(w, renderModels(versions))
	return err
}

func renderModels(versions []model.ModelVersion) string {
	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		mae := v.MAE
		active := ""
		if v.IsActive {
			active = "active"
		}
		rows = append(rows, []string{v.Version, formatTrainedAt(v.TrainedAt), components.FormatMAE(&mae), active})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(cli.SubtleStyle).
		Headers("Version", "Trained", "MAE", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			if col == 2 {
				return style.Align(lipgloss.Right)
			}
			return style
		}).
		Render()
}

// formatTrainedAt trims an ISO timestamp to minutes for display.
func formatTrainedAt(ts string) string {
	ts = strings.Replace(ts, "T", " ", 1)
	if len(ts) > 16 {
		return ts[:16]
	}
	return ts
}
