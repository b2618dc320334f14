package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/shawarma-forecast/internal/cli"
	"github.com/Veraticus/shawarma-forecast/internal/common"
	"github.com/Veraticus/shawarma-forecast/internal/config"
	"github.com/Veraticus/shawarma-forecast/internal/model"
	"github.com/Veraticus/shawarma-forecast/internal/service"
	"github.com/Veraticus/shawarma-forecast/internal/tui/components"
	"github.com/spf13/cobra"
)

func uploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file.csv>",
		Short: "Upload a sales CSV and retrain the model",
		Long: `Upload a sales CSV to the forecasting service. The service imports the rows
and retrains before answering, so this can take a while. On success the new
forecast is printed.

The file needs the columns date, product_name, size, unit_price and quantity.`,
		Args: cobra.ExactArgs(1),
		RunE: runUpload,
	}

	cmd.Flags().Bool("no-progress", false, "Do not show the upload progress bar")
	cmd.Flags().Bool("quiet", false, "Only print the server message")

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	quiet, _ := cmd.Flags().GetBool("quiet")
	cfg := appConfig
	out := cmd.OutOrStdout()

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx, stop := handler.HandleInterrupts(cmd.Context(), "Upload")
	defer stop()

	journal, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	if journal != nil {
		defer func() { _ = journal.Close() }()
	}

	client := newClient(cfg)
	var progress io.Writer
	if !noProgress && !quiet {
		progress = cmd.ErrOrStderr()
	}

	result, err := uploadFile(ctx, client, recorderOf(journal), config.ExpandPath(args[0]), progress)
	if err != nil {
		return err
	}

	if quiet {
		_, err := fmt.Fprintln(out, result.Message)
		return err
	}

	if _, err := fmt.Fprintln(out, cli.FormatSuccess("Success: "+result.Message)); err != nil {
		return err
	}
	return printForecast(ctx, out, client, currentTheme())
}

// uploadFile sends the CSV at path and journals the attempt. When progress
// is non-nil a progress bar is drawn on it while the file streams.
func uploadFile(ctx context.Context, importer service.SalesImporter, recorder service.UploadRecorder, path string, progress io.Writer) (model.ImportResult, error) {
	f, err := os.Open(path) //nolint:gosec // the user named this file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.ImportResult{}, common.NewUserError(
				"No such file: "+path,
				fmt.Errorf("%w: %w", common.ErrNoFileSelected, err),
			)
		}
		return model.ImportResult{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var body io.Reader = f
	if progress != nil {
		if info, statErr := f.Stat(); statErr == nil {
			body = cli.ProgressReader(f, cli.NewUploadBar(progress, info.Size(), filepath.Base(path)))
		}
	}

	started := time.Now()
	result, err := importer.ImportCSV(ctx, filepath.Base(path), body)
	components.RecordUpload(ctx, recorder, path, started, result, err)

	if err != nil {
		common.LogError(err, "Upload failed", common.Fields{
			"file":       path,
			"request_id": result.RequestID,
		})
		return result, common.NewUserError("Error: "+components.UploadErrorDetail(err), err)
	}

	slog.Info("Upload finished",
		"file", path,
		"inserted", result.Inserted,
		"request_id", result.RequestID,
		"duration", time.Since(started))

	return result, nil
}
