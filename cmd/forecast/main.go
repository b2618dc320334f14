package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/shawarma-forecast/internal/common"
	"github.com/Veraticus/shawarma-forecast/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	version   = "dev"
	appConfig = config.Default()
	rootCmd   = &cobra.Command{
		Use:   "forecast",
		Short: "🥙 Shawarma sales forecasting client",
		Long: `forecast uploads daily sales CSVs to the shawarma forecasting service,
which retrains its model on every import, and shows tomorrow's predicted demand.

Run 'forecast dashboard' for the interactive view.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/forecast/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "forecasting service URL (default: http://localhost:8000)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(uploadCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(modelsCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		if msg, ok := common.UserMessage(err); ok {
			fmt.Fprintln(os.Stderr, msg)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/forecast", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	appConfig = cfg

	// Set up logging
	level, err := common.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := common.SetupLogger(level, cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "forecast %s\n", version)
		},
	}
}
