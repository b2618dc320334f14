package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/shawarma-forecast/internal/service"
	"github.com/Veraticus/shawarma-forecast/internal/tui/components"
	"github.com/Veraticus/shawarma-forecast/internal/tui/themes"
	"github.com/spf13/cobra"
)

const noForecastMessage = "No forecast available yet."

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print tomorrow's forecast breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printForecast(cmd.Context(), cmd.OutOrStdout(), newClient(appConfig), currentTheme())
		},
	}
}

// printForecast renders the detail panel once. Errors are part of the output,
// not of the returned error.
func printForecast(ctx context.Context, w io.Writer, reader service.ForecastReader, theme themes.Theme) error {
	resp, err := reader.GetTomorrow(ctx)
	if err != nil {
		slog.Error("Forecast error", "error", err)
	}

	forecast, errText := components.ResolveDetail(resp, err)
	if errText != "" {
		_, err := fmt.Fprintln(w, components.RenderDetailError(theme, errText))
		return err
	}

	if forecast == nil {
		_, err := fmt.Fprintln(w, theme.StatusPending.Render(noForecastMessage))
		return err
	}

	_, err = fmt.Fprintln(w, components.RenderForecast(theme, *forecast))
	return err
}
