package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"odootoor/internal/achievements"
	"odootoor/internal/config"
	"odootoor/internal/logging"
	"odootoor/internal/stats"
)

const appName = "odootoor"

type options struct {
	configPath string
	verbose    bool
	watch      bool
	noSave     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Punch through a message, one sprite loop per letter",
		Long: `Odootoor opens a window and animates sprite sheets.

Keys:
  1/2/3        punch, run, stats mode
  D/I          shrink/grow the message font
  ENTER        hold the current letter
  R            restart a finished message
  arrows       move the runner
  , and .      run faster or slower
  F1           debug boxes
  M            toggle music`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file (built-in defaults when empty)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the config file when it changes")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "keep play stats in memory only")
	return cmd
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(ctx context.Context, opts *options) error {
	logger, err := logging.New(opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	var reloads <-chan config.Config
	if opts.watch {
		if opts.configPath == "" {
			return errors.New("--watch needs --config")
		}
		w, err := config.NewWatcher(opts.configPath, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		w.Start(ctx)
		reloads = w.Changes()
	}

	var store *stats.Store
	if opts.noSave {
		store = stats.NewStore(nil, logger.Named("stats"))
	} else {
		store = stats.Open(appName, logger)
	}

	tracker := achievements.NewTracker(store.Manager(), logger)

	game, err := NewGame(cfg, store, tracker, reloads, logger)
	if err != nil {
		return err
	}
	game.done = ctx.Done()
	defer func() {
		if err := game.Close(); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	// 1. Window Setup
	ebiten.SetWindowSize(cfg.Window.Width*cfg.Window.Scale, cfg.Window.Height*cfg.Window.Scale)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.TPS)

	logger.Info("starting",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("tps", cfg.TPS))

	// 2. Run Loop
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
