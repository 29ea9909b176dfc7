package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/use-agent/groundtruth/app"
	"github.com/use-agent/groundtruth/config"
)

var (
	cfg      *config.Config
	pipeline *app.App

	flagSites    []string
	flagEnsemble bool
	flagTopK     int
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "groundtruth-cli",
	Short: "Search-grounded retrieval and reward scoring",
	Long: `Queries a search engine through a headless browser, extracts plain text
from the result pages and asks a language model how well a completion is
supported by that evidence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		applyFlags(cmd, cfg)
		initLogger(flagVerbose)

		pipeline = app.New(cfg)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringSliceVar(&flagSites, "sites", nil, "site filters applied to each query (overrides GROUNDTRUTH_SITES)")
	pf.BoolVar(&flagEnsemble, "ensemble", true, "combine site filters into one OR query")
	pf.IntVar(&flagTopK, "top-k", 0, "max URLs collected per sub-query (overrides GROUNDTRUTH_TOP_K)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging on stderr")
}

// applyFlags layers explicitly set flags over the env-derived config.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	pf := cmd.Flags()
	if pf.Changed("sites") {
		c.Search.Sites = flagSites
	}
	if pf.Changed("ensemble") {
		c.Search.Ensemble = flagEnsemble
	}
	if pf.Changed("top-k") && flagTopK > 0 {
		c.Search.TopK = flagTopK
	}
}

// initLogger sends logs to stderr so stdout carries only results.
func initLogger(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	closePipeline()
	if err != nil {
		stop()
		os.Exit(1)
	}
}

// closePipeline runs after every command, including failed ones, so Chrome
// never outlives the process.
func closePipeline() {
	if pipeline == nil {
		return
	}
	if err := pipeline.Close(); err != nil {
		slog.Warn("cli: close browser session", "error", err)
	}
}
