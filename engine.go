// Package nutrispend tracks meals, drinks, a cash wallet and shared
// expenses for a fixed pair of people, Tejas and Nikita. The Engine
// bundles one ledger per concern over a shared document store; callers
// pick the backend through config and use the ledgers directly.
package nutrispend

import (
	"fmt"
	"io"

	"nutrispend/config"
	"nutrispend/drinks"
	"nutrispend/log"
	"nutrispend/meals"
	"nutrispend/prefs"
	"nutrispend/settlement"
	"nutrispend/store"
	"nutrispend/store/memory"
	"nutrispend/store/sqlite"
	"nutrispend/wallet"
)

// Engine is the assembled application: every ledger shares one store, so
// a sqlite-backed Engine persists everything in a single database file.
type Engine struct {
	Meals       *meals.Log
	Wallet      *wallet.Ledger
	Settlements *settlement.Ledger
	Drinks      *drinks.Log
	Prefs       *prefs.Prefs

	store  store.Store
	logger *log.Logger
}

// Open builds an Engine for the configured backend. The caller owns the
// returned Engine and must Close it.
func Open(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentEngine,
	})
	log.SetDefault(logger)

	var s store.Store
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		s = db
	case config.BackendMemory:
		s = memory.New()
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	logger.Info("engine ready", log.FieldOperation, log.OpOpen, "backend", cfg.Backend)

	return &Engine{
		Meals:       meals.New(s),
		Wallet:      wallet.New(s),
		Settlements: settlement.New(s),
		Drinks:      drinks.New(s),
		Prefs:       prefs.New(s),
		store:       s,
		logger:      logger,
	}, nil
}

// Close releases the underlying store. Safe to call on a memory-backed
// Engine, where it is a no-op.
func (e *Engine) Close() error {
	e.logger.Info("engine closing", log.FieldOperation, log.OpClose)
	if closer, ok := e.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
