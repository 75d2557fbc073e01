// Package engine implements the matching engine, the capacity
// allocator, and the sweep scheduler. Every multi-step sequence runs
// under one engine-wide mutex: single-entity scans, full sweeps, pool
// joins, and owner-driven entity edits serialize against each other,
// so capacity can never be double-allocated, a (batch, pool) pair can
// never gain two active matches through interleaving, and a field
// edit can never slip between another sequence's check and commit.
package engine

import (
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Urushihara24/exportum/internal/notify"
	"github.com/Urushihara24/exportum/internal/store"
)

// Engine orchestrates the compatibility predicate, the match ledger,
// and the capacity allocator over the entity stores.
type Engine struct {
	mu       sync.Mutex
	batches  *store.BatchStore
	market   *store.MarketStore
	notifier notify.Notifier
	rate     decimal.Decimal
	logger   *slog.Logger
}

// NewEngine creates an Engine. rate is the shared local-per-reference
// currency conversion rate used by the compatibility predicate.
func NewEngine(
	batches *store.BatchStore,
	market *store.MarketStore,
	notifier notify.Notifier,
	rate decimal.Decimal,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		batches:  batches,
		market:   market,
		notifier: notifier,
		rate:     rate,
		logger:   logger,
	}
}

// Rate returns the shared conversion rate, for display math that must
// agree with the predicate.
func (e *Engine) Rate() decimal.Decimal {
	return e.rate
}
