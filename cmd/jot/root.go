package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jotkit/jot"
	"github.com/jotkit/jot/pkg/adapters/kv"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	dataDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "A local-first personal notes store",
	Long: `jot keeps your notes on-device in a durable key-value snapshot.
Capture rich notes, tag them with #hashtags, pin, search, and browse
them as a grid or a daily timeline.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "Data directory (default $JOT_DIR or ~/.jot)")
}

// openStore wires a store for a CLI invocation and prints the one-time
// onboarding hint on first use.
func openStore(ctx context.Context, opts ...jot.Option) (*jot.Store, *kv.File, func()) {
	dir := resolveDataDir()
	if cfg := loadConfig(dir); cfg.Dir != "" {
		dir = cfg.Dir
	}

	storage, err := kv.NewFile(dir, slog.Default())
	if err != nil {
		fatal("Failed to open storage", err)
	}

	opts = append([]jot.Option{
		jot.WithStorage(storage),
		jot.WithLogger(slog.Default()),
	}, opts...)

	store, err := jot.Open(ctx, dir, opts...)
	if err != nil {
		fatal("Failed to open store", err)
	}

	if !jot.Onboarded(ctx, storage) {
		fmt.Fprintln(os.Stderr, "Welcome to jot! Notes live in", dir)
		if err := jot.SetOnboarded(ctx, storage); err != nil {
			slog.Default().Warn("failed to record onboarding", "error", err)
		}
	}

	cleanup := func() {
		if err := store.Close(context.Background()); err != nil {
			slog.Default().Warn("failed to close store", "error", err)
		}
	}
	return store, storage, cleanup
}
