package engine

import (
	"fmt"
	"log/slog"

	"github.com/Urushihara24/exportum/internal/domain"
	"github.com/Urushihara24/exportum/internal/metrics"
)

// MatchPoolsForBatch scans every pool and returns all pools compatible
// with the batch. For each compatible pool not already linked to the
// batch by an active match, it records a match and notifies both
// parties. Idempotent on an unchanged store: a second call creates no
// new matches. No ordering is guaranteed among returned pools.
func (e *Engine) MatchPoolsForBatch(b *domain.Batch) []*domain.Pool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if b.Status != domain.BatchStatusActive {
		return nil
	}

	compatible := make([]*domain.Pool, 0)
	for _, p := range e.market.ListPools() {
		if !IsCompatible(b, p, e.rate) {
			continue
		}
		compatible = append(compatible, p)
		e.recordMatch(b, p)
	}
	return compatible
}

// MatchBatchesForPool is the symmetric scan: every active batch across
// all producers is tested against the pool, with the same match and
// notification side effects.
func (e *Engine) MatchBatchesForPool(p *domain.Pool) []*domain.Batch {
	e.mu.Lock()
	defer e.mu.Unlock()

	compatible, _ := e.matchBatchesForPoolLocked(p)
	return compatible
}

// FullSweep re-scans every open pool against all active batches and
// returns the number of matches created. Safe to re-run at any time:
// it only ever adds matches, and a sweep over an unchanged store adds
// none. Tolerates an empty store.
func (e *Engine) FullSweep() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	metrics.SweepsTotal.Inc()

	created := 0
	for _, p := range e.market.ListPools() {
		if p.Status != domain.PoolStatusOpen {
			continue
		}
		_, n := e.matchBatchesForPoolLocked(p)
		created += n
	}
	e.logger.Debug("full sweep finished", slog.Int("matches_created", created))
	return created
}

// matchBatchesForPoolLocked runs the pool-side scan. Callers hold e.mu.
// Returns the compatible batches and how many matches were created.
func (e *Engine) matchBatchesForPoolLocked(p *domain.Pool) ([]*domain.Batch, int) {
	compatible := make([]*domain.Batch, 0)
	created := 0
	for _, b := range e.batches.ListActive() {
		if !IsCompatible(b, p, e.rate) {
			continue
		}
		compatible = append(compatible, b)
		if e.recordMatch(b, p) {
			created++
		}
	}
	return compatible, created
}

// recordMatch asks the ledger for the pair's match and, when one was
// created, notifies both parties. The match record is the durable fact;
// notification is fire-and-forget and can never fail the caller.
func (e *Engine) recordMatch(b *domain.Batch, p *domain.Pool) bool {
	m, created := e.market.GetOrCreateMatch(b.ID, p.ID)
	if !created {
		return false
	}

	metrics.MatchesCreated.Inc()
	e.logger.Info("match created",
		slog.Int64("match_id", m.ID),
		slog.Int64("batch_id", b.ID),
		slog.Int64("pool_id", p.ID))

	e.notifier.Notify(b.ProducerID, fmt.Sprintf(
		"Your batch #%d (%s, %s t) is compatible with pool #%d shipping via %s. "+
			"Pool price: %s/t reference (%s/t local).",
		b.ID, b.Commodity, b.Volume, p.ID, p.Port,
		p.Price, domain.ToLocal(p.Price, e.rate)))
	e.notifier.Notify(p.AggregatorID, fmt.Sprintf(
		"Pool #%d has a new compatible batch: #%d (%s, %s t at %s/t local, grade %d).",
		p.ID, b.ID, b.Commodity, b.Volume, b.Price, b.Grade))
	return true
}
