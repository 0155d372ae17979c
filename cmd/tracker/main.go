package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rprog-06/Expense-Tracker/internal/anomaly"
	"github.com/Rprog-06/Expense-Tracker/internal/common"
	"github.com/Rprog-06/Expense-Tracker/internal/config"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "tracker",
		Short: "Personal expense tracker with spending analysis",
		Long: `tracker records expenses, auto-categorizes them, and scans your
spending history for anomalies: unusually large expenses, weekly bill
pile-ups, and per-category outliers.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/tracker/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(importOFXCmd())
	rootCmd.AddCommand(trainCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("received interrupt signal, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		viper.AddConfigPath(fmt.Sprintf("%s/.config/tracker", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TRACKER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("database.path", config.DefaultDBPath())
	viper.SetDefault("classifier.model_path", config.DefaultModelPath())
	viper.SetDefault("classifier.remote_timeout", "10s")
	viper.SetDefault("alerts.large_expense_floor", anomaly.DefaultLargeExpenseFloor)
	viper.SetDefault("alerts.large_expense_multiplier", anomaly.DefaultLargeExpenseMultiplier)
	viper.SetDefault("alerts.bill_cluster_min", anomaly.DefaultBillClusterMin)
	viper.SetDefault("alerts.max", anomaly.DefaultMaxAlerts)
	viper.SetDefault("income.monthly", "0")
	viper.SetDefault("income.warning_threshold", "500")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine; defaults and env vars carry it
	}

	common.SetupLogger(
		common.ParseLogLevel(viper.GetString("logging.level")),
		viper.GetString("logging.format"))

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("tracker %s\n", version)
		},
	}
}
