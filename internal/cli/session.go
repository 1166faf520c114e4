package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/triviarpg/internal/config"
	"github.com/roach88/triviarpg/internal/engine"
	"github.com/roach88/triviarpg/internal/random"
	"github.com/roach88/triviarpg/internal/snapshot"
	"github.com/roach88/triviarpg/internal/store"
	"github.com/roach88/triviarpg/internal/trivia"
)

// session is one command's view of the saved game: the engine loaded from
// the store, with every committed state queued for an autosave.
type session struct {
	cfg     config.Config
	store   *store.Store
	adapter *snapshot.Adapter
	saver   *snapshot.Autosaver
	engine  *engine.Engine
	logger  *slog.Logger
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig applies the global flags on top of config.Load.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	return cfg, nil
}

// openSession loads config, opens the database and loads the engine.
// The caller must close the session to flush the last save.
func openSession(ctx context.Context, opts *RootOptions, cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	lastSeq, err := st.LastSeq(ctx)
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	var src random.Source
	if cfg.Seed != 0 {
		// Offset by the journal so a seeded game does not replay the
		// same draws on every run.
		src = random.New(cfg.Seed + lastSeq)
	} else {
		seed, err := random.NewSeed()
		if err != nil {
			st.Close()
			return nil, WrapExitError(ExitCommandError, "failed to seed random source", err)
		}
		src = random.New(seed)
	}

	bank, err := loadBank(cfg.QuestionBank, src)
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to load question bank", err)
	}

	adapter := snapshot.NewAdapter(st, cfg.SaveKey)
	saver := snapshot.NewAutosaver(adapter, cfg.AutosaveDelay, logger)
	eng := engine.Load(ctx, adapter,
		engine.WithBalance(cfg.Balance),
		engine.WithSource(src),
		engine.WithQuestions(bank),
		engine.WithJournal(st),
		engine.WithSeq(engine.NewClockAt(lastSeq)),
		engine.WithOnCommit(saver.Notify),
		engine.WithLogger(logger),
	)
	logger.Debug("session opened", "db", cfg.Database, "seq", lastSeq, "questions", bank.Len())

	return &session{
		cfg:     cfg,
		store:   st,
		adapter: adapter,
		saver:   saver,
		engine:  eng,
		logger:  logger,
	}, nil
}

func loadBank(path string, src random.Source) (*trivia.Bank, error) {
	if path == "" {
		return trivia.DefaultBank(src)
	}
	return trivia.LoadBank(path, src)
}

// Close writes any pending save and closes the database. Save failures are
// already logged by the autosaver and do not fail the command.
func (s *session) Close(ctx context.Context) error {
	_ = s.saver.Flush(ctx)
	return s.store.Close()
}
