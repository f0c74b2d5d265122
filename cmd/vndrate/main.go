// vndrate converts US dollars to Vietnamese dong using a scraped,
// locally cached exchange rate.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/vndrate/internal/app"
	"github.com/seenimoa/vndrate/internal/config"
	"github.com/seenimoa/vndrate/internal/logging"
	"github.com/seenimoa/vndrate/internal/rate"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set in PersistentPreRunE.
var (
	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vndrate",
	Short: "Convert USD to VND at the current market rate",
	Long: `vndrate scrapes the USD→VND rate from Google Finance, caches it for
five hours and converts an amount read from standard input.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger = logging.New(cfg.Logging, os.Stderr)
		slog.SetDefault(logger)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			return a.Convert(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(statusCmd)
}

// withApp builds the store, fetcher and manager from cfg and runs fn.
func withApp(ctx context.Context, fn func(*app.App) error) error {
	st, closeStore, err := app.NewStore(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("closing cache store", "error", err)
		}
	}()

	fetcher, err := app.NewFetcher(cfg.Source)
	if err != nil {
		return err
	}

	manager := rate.NewManager(st, fetcher, rate.WithLogger(logger))
	return fn(app.New(manager, logger, cfg.Source.Timeout))
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "vndrate %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

// --- Refresh Command ---

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch a new rate now and overwrite the cache",
	Long: `Fetch a new rate regardless of the cached one's age and overwrite the
cache. Use this to recover from an unreadable cache file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			return a.Refresh(cmd.Context(), cmd.OutOrStdout())
		})
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cached rate and configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintln(out, "  vndrate status")
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintf(out, "  Version:       %s (%s)\n", version, commit)
		fmt.Fprintf(out, "  Source:        %s (%s)\n", cfg.Source.URL, cfg.Source.Mode)
		switch cfg.Cache.Backend {
		case "redis":
			fmt.Fprintf(out, "  Cache:         redis %s key %s\n", cfg.Cache.Redis.Addr, cfg.Cache.Redis.Key)
		default:
			fmt.Fprintf(out, "  Cache:         %s\n", cfg.Cache.Path)
		}
		for _, s := range config.CheckSecrets(cfg) {
			if s.IsSet {
				fmt.Fprintf(out, "  %-14s %s (%s)\n", s.Name+":", s.Masked, s.Source)
			}
		}
		fmt.Fprintln(out)

		err := withApp(cmd.Context(), func(a *app.App) error {
			return a.Status(cmd.Context(), out, time.Now())
		})
		fmt.Fprintln(out, "═══════════════════════════════════════")
		return err
	},
}
