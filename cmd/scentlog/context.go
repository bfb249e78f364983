package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"scentlog/internal/config"
	"scentlog/internal/logging"
	"scentlog/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger(component string) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	if c.loggerErr != nil {
		return nil, c.loggerErr
	}
	return logging.WithComponent(c.logger, component), nil
}

// withStore opens the database for the duration of fn.
func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// withImportLock guards fn with the import-session file lock so two imports
// cannot interleave edits and saves on the same database.
func (c *commandContext) withImportLock(fn func() error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another import session is already running (lock: %s)", cfg.LockPath())
	}
	defer func() { _ = lock.Unlock() }()
	return fn()
}
