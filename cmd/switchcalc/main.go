package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/karimaz/switchcalc/internal/compare"
	"github.com/karimaz/switchcalc/internal/config"
	"github.com/karimaz/switchcalc/internal/fees"
	"github.com/karimaz/switchcalc/internal/server"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagLogLevel  string
	flagLogFormat string
)

// initializeLogger creates a zap logger from level/format settings.
func initializeLogger(level, format string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var cfg zap.Config
	switch format {
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	return cfg.Build()
}

var rootCmd = &cobra.Command{
	Use:   "switchcalc",
	Short: "UAE mortgage buyout comparison calculator",
	Long:  "Compares staying with the current lender against switching to a new offer: monthly cash flows, the switching-fee waterfall, and the break-even month.",
}

var compareCmd = &cobra.Command{
	Use:   "compare [request-file]",
	Short: "Run a stay-vs-switch comparison from a YAML or JSON request file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := initializeLogger(flagLogLevel, flagLogFormat)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		req, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		engine := compare.NewDefaultEngine(logger)
		result, err := engine.Compare(cmd.Context(), req)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "table":
			tf := &compare.TableFormatter{}
			fmt.Fprint(os.Stdout, tf.Format(result))
		case "json":
			jf := &compare.JSONFormatter{Pretty: true}
			out, err := jf.Format(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, out)
		case "csv":
			cf := &compare.CSVFormatter{}
			out, err := cf.Format(result)
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, out)
		default:
			return fmt.Errorf("unknown format %q (want table, json, or csv)", format)
		}
		return nil
	},
}

var feesCmd = &cobra.Command{
	Use:   "fees [request-file]",
	Short: "Print the resolved switching-fee waterfall without running schedules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		resolver := fees.NewDefaultResolver()
		waterfall, err := resolver.Resolve(fees.ResolveInput{
			NewPrincipal:    req.NewLoan.Principal,
			OldOutstanding:  req.CurrentLoan.Principal,
			EarlySettlement: req.CurrentLoan.EarlySettlement,
			Overrides:       req.Assumptions.FeeOverrides,
			AutoEstimate:    req.Assumptions.AutoEstimate(),
		})
		if err != nil {
			return err
		}

		for _, item := range waterfall.Items {
			fmt.Fprintf(os.Stdout, "%-28s %14s AED  %-8s %s\n",
				item.Kind, item.AmountAED.StringFixed(2), item.Timing, item.Source)
		}
		fmt.Fprintf(os.Stdout, "%-28s %14s AED\n", "total upfront", waterfall.TotalUpfront().StringFixed(2))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the comparison API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := server.LoadConfig(configPath)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if flagLogLevel != "" {
			level = flagLogLevel
		}
		logger, err := initializeLogger(level, cfg.Logging.Format)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		engine := compare.NewEngine(cfg.FeeSchedule(), logger)
		srv := &http.Server{
			Addr:              cfg.Address,
			Handler:           server.NewHandler(logger, engine, cfg.MaxBodyBytes),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", zap.String("address", cfg.Address))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
		}
		return nil
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "switchcalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func main() {
	compareCmd.Flags().String("format", "table", "Output format: table, json, or csv")
	serveCmd.Flags().String("config", "", "Path to server config file (YAML)")

	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "console", "Log format: console or json")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(feesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
