// Package cli is the redline command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"redline/internal/auth"
	"redline/internal/config"
	"redline/internal/database"
	"redline/internal/events"
	"redline/internal/log"
	"redline/internal/save"
	"redline/internal/session"
	"redline/internal/theme"
)

// BuildInfo is stamped in by the linker.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type options struct {
	dataDir    string
	configPath string
	verbose    bool
	build      BuildInfo
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the game.
func NewRootCommand(build BuildInfo) *cobra.Command {
	opts := &options{build: build}

	play := newPlayCommand(opts)
	root := &cobra.Command{
		Use:           "redline",
		Short:         "CRIMSON REDLINE, a terminal hacking simulation",
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          play.RunE,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// play moves logging to a file once the data directory is known
			if opts.verbose {
				log.SetOutput(cmd.ErrOrStderr())
			} else {
				log.SetOutput(io.Discard)
			}
		},
	}
	root.Flags().AddFlagSet(play.Flags())
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (default $"+config.DataDirEnv+" or ~/.crimson_redline)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <data-dir>/"+config.FileName+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		play,
		newSaveCommand(opts),
		newUserCommand(opts),
		newNetmapCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(opts),
	)
	return root
}

// env is everything a command needs once the data directory is known.
type env struct {
	dataDir string
	cfg     config.Config
	db      *database.SQLiteDatabase
	saves   *save.Store
	users   *auth.Service
	version string
}

func (o *options) resolve() (dataDir, cfgPath string, err error) {
	dataDir, err = config.DataDir(o.dataDir)
	if err != nil {
		return "", "", err
	}
	cfgPath = o.configPath
	if cfgPath == "" {
		cfgPath = config.Path(dataDir)
	}
	return dataDir, cfgPath, nil
}

func (o *options) loadConfig() (string, config.Config, error) {
	dataDir, cfgPath, err := o.resolve()
	if err != nil {
		return "", config.Config{}, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return "", config.Config{}, err
	}
	if err := theme.Set(cfg.Display.ColorTheme); err != nil {
		return "", config.Config{}, err
	}
	return dataDir, cfg, nil
}

// open loads the config and opens the database. Callers close it.
func (o *options) open(ctx context.Context) (*env, error) {
	dataDir, cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := database.Open(ctx, filepath.Join(dataDir, config.DatabaseName))
	if err != nil {
		return nil, err
	}
	return &env{
		dataDir: dataDir,
		cfg:     cfg,
		db:      db,
		saves:   save.NewStore(db),
		users:   auth.NewService(db, auth.PolicyFrom(cfg.Security), nil),
		version: o.build.Version,
	}, nil
}

func (e *env) Close() error {
	return e.db.CloseDatabase()
}

// resume loads username's save into a session that is only inspected,
// never written back.
func (e *env) resume(ctx context.Context, username string) (*session.Session, save.SaveGame, error) {
	sg, err := e.saves.Load(ctx, username)
	if err != nil {
		return nil, save.SaveGame{}, err
	}
	player := session.Player{Username: username, Reputation: sg.GameState.Reputation()}
	sess, err := session.Resume(player, sg, session.Deps{
		Sleeper: &events.InstantSleeper{},
		Game:    e.cfg.Game,
		Version: e.version,
	})
	return sess, sg, err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
