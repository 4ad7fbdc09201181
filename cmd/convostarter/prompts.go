package main

import (
	"fmt"
	"path/filepath"

	"github.com/lojasmm/convostarter/internal/catalog"
	"github.com/lojasmm/convostarter/internal/config"
	"github.com/lojasmm/convostarter/internal/logger"
	"github.com/lojasmm/convostarter/internal/practice"
	"github.com/lojasmm/convostarter/internal/store"
)

// openPrompts returns the configured prompt source and a function to release it.
func openPrompts(cfg *config.Config, log *logger.Logger) (practice.PromptSource, func() error, error) {
	if cfg.PromptStore != config.PromptStoreBolt {
		return catalog.DefaultPrompts(), func() error { return nil }, nil
	}

	db, path, err := openBolt(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	// Drift is reported, not fatal: missing pairs resolve to NotFound.
	table, err := db.Table()
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("store: %w", err)
	}
	if err := catalog.CheckComplete(table); err != nil {
		log.Warn("prompt store is incomplete", "path", path, "error", err)
	}
	return db, db.Close, nil
}

// openBolt opens the prompt database under DATA_DIR, seeding it from the
// built-in table on first use.
func openBolt(cfg *config.Config, log *logger.Logger) (*store.BoltStore, string, error) {
	path := filepath.Join(cfg.DataDir, "prompts.db")
	db, err := store.NewBoltStore(path)
	if err != nil {
		return nil, "", fmt.Errorf("store: %w", err)
	}
	seeded, err := db.Seed(catalog.DefaultPrompts())
	if err != nil {
		db.Close()
		return nil, "", fmt.Errorf("store: %w", err)
	}
	if seeded {
		log.Info("seeded prompt store", "path", path)
	}
	return db, path, nil
}

func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, nil, fmt.Errorf("catalog: %w", err)
	}
	return cfg, log, nil
}
