package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/shawarma-forecast/internal/service"
	"github.com/Veraticus/shawarma-forecast/internal/tui/components"
	"github.com/Veraticus/shawarma-forecast/internal/tui/themes"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print tomorrow's total predicted quantity",
		Long: `Print tomorrow's total predicted quantity. Like the dashboard panel, a failed
request is logged and 0 is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printSummary(cmd.Context(), cmd.OutOrStdout(), newClient(appConfig), currentTheme())
		},
	}
}

// printSummary renders the summary panel once.
func printSummary(ctx context.Context, w io.Writer, reader service.ForecastReader, theme themes.Theme) error {
	m := components.NewSummaryModel(ctx, reader, theme)
	m, _ = m.Update(m.Init()())

	_, err := fmt.Fprintln(w, m.View())
	return err
}
