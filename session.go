package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/sadopc/modus/internal/config"
	"github.com/sadopc/modus/internal/state"
	"github.com/sadopc/modus/internal/store"
)

// session bundles everything a command needs: config, logger and an opened
// state store.
type session struct {
	cfg    config.Config
	logger *log.Logger
	store  *state.Store

	closers []io.Closer
}

func openSession(opts *options) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.Storage.Path = opts.dbPath
	}

	logger, logFile, err := cfg.Log.OpenLogger()
	if err != nil {
		return nil, err
	}
	sess := &session{cfg: cfg, logger: logger, closers: []io.Closer{logFile}}

	var gw state.Gateway
	if opts.memory {
		gw = store.NewMemoryGateway()
		logger.Info("using in-memory storage")
	} else {
		path := cfg.Storage.Path
		if path == "" {
			if path, err = store.DefaultDBPath(); err != nil {
				sess.Close()
				return nil, err
			}
		}
		db, err := store.New(path)
		if err != nil {
			sess.Close()
			return nil, fmt.Errorf("open database: %w", err)
		}
		// Close the database before the log file.
		sess.closers = append([]io.Closer{db}, sess.closers...)
		gw = db
		logger.Info("opened database", "path", path)
	}

	sess.store = state.Open(gw, cfg.StateConfig(logger))
	logger.Debug("state loaded", "tasks", len(sess.store.Tasks()), "modes", len(sess.store.Modes()))
	return sess, nil
}

func (s *session) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
