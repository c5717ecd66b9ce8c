package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"redline/internal/config"
	"redline/internal/log"
	"redline/internal/tui"
)

// ErrNoTerminal is returned when play is run without a TTY.
var ErrNoTerminal = errors.New("redline requires an interactive terminal")

const heartbeatInterval = 30 * time.Second

func newPlayCommand(opts *options) *cobra.Command {
	var fresh bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Log in and play",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return ErrNoTerminal
			}
			return runPlay(cmd.Context(), opts, fresh)
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore any saved session at login")
	return cmd
}

func runPlay(ctx context.Context, opts *options, fresh bool) error {
	e, err := opts.open(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := log.SetFileOutput(filepath.Join(e.dataDir, config.LogName)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open the debug log: %v\n", err)
	}
	defer log.Close()
	log.Info("redline starting", "version", opts.build.Version, "data_dir", e.dataDir, "theme", e.cfg.Display.ColorTheme)

	ctrl := tui.NewController(tui.Deps{
		Accounts: e.users,
		Saves:    e.saves,
		Config:   e.cfg,
		Version:  opts.build.Version,
	})
	app := tui.NewApp(ctrl)
	app.SetFresh(fresh)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		return app.Run(gctx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				log.Debug("heartbeat")
			}
		}
	})
	runErr := g.Wait()

	// the UI may have been stopped by a signal with an agent still logged in
	if err := app.Shutdown(context.Background()); err != nil {
		log.Error("failed to save on exit", "error", err)
		return errors.Join(runErr, err)
	}
	log.Info("redline stopped")
	return runErr
}
