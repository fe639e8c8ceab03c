package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type flags struct {
	testRunID  int64
	service    bool
	configPath string
	fuzziness  float64
	logLevel   string
	report     bool
}

func main() {
	// Load environment from .env files for local development.
	// Prefer the Rails app .env if present.
	_ = godotenv.Load("../benchmark_ui/.env")
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		logger.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "boxplot_worker [test-run-id]",
		Short: "Compute boxplot statistics and outlier bands for test runs",
		Long: `Computes Tukey boxplot statistics over the samples of a test run and
records them in test_results. Without a test run id the worker consumes the
Sidekiq queue.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
	}
	cmd.Flags().Int64Var(&f.testRunID, "test-run-id", 0, "ID of test_runs row to attach results to (omit to run service)")
	cmd.Flags().BoolVar(&f.service, "service", false, "Run as background service listening to Sidekiq queue")
	cmd.Flags().StringVar(&f.configPath, "config", "", "YAML configuration file overriding the environment")
	cmd.Flags().Float64Var(&f.fuzziness, "fuzziness", 0, "classification tolerance in percent of the value range")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&f.report, "report", false, "print the boxplot report after processing a test run")
	return cmd
}

func run(cmd *cobra.Command, f flags, args []string) error {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fuzziness") {
		if f.fuzziness < 0 || f.fuzziness > 100 {
			return fmt.Errorf("--fuzziness %v out of range [0,100]", f.fuzziness)
		}
		cfg.Fuzziness = f.fuzziness
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := setLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	testRunID, err := resolveTestRunID(f.testRunID, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if f.service || testRunID == 0 {
		return runService(ctx, db, cfg)
	}

	opts := runOptions{Fuzziness: cfg.Fuzziness}
	if f.report {
		opts.Report = cmd.OutOrStdout()
	}
	return processTestRun(ctx, db, testRunID, opts)
}

// resolveTestRunID prefers --test-run-id and falls back to the positional
// argument. Zero means no test run was requested.
func resolveTestRunID(flagValue int64, args []string) (int64, error) {
	if flagValue != 0 || len(args) == 0 {
		if flagValue < 0 {
			return 0, errors.New("--test-run-id must be positive")
		}
		return flagValue, nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid test run id %q", args[0])
	}
	return id, nil
}
