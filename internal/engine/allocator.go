package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Urushihara24/exportum/internal/domain"
	"github.com/Urushihara24/exportum/internal/metrics"
)

// JoinPool commits a batch's full volume into a pool. Partial commits
// are not supported. Preconditions: the pool is open, commodities
// match, the batch is active and owned by producerID, and the batch
// volume fits in the pool's remaining room (strict check, no
// overshoot).
//
// On success the participant is appended, the pool volume incremented,
// and the batch reserved, all under the engine mutex so the two field
// mutations can never be observed half-applied. The batch's other
// active matches are superseded, both aggregates are persisted, and
// the pool owner is notified out-of-band.
func (e *Engine) JoinPool(poolID, batchID, producerID int64) (*domain.Participant, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.market.GetPool(poolID)
	if err != nil {
		metrics.JoinsRejected.WithLabelValues("pool_not_found").Inc()
		return nil, err
	}
	b, err := e.batches.Get(batchID)
	if err != nil {
		metrics.JoinsRejected.WithLabelValues("batch_not_found").Inc()
		return nil, err
	}
	if b.ProducerID != producerID {
		metrics.JoinsRejected.WithLabelValues("not_owner").Inc()
		return nil, domain.ErrBatchNotOwned
	}
	if p.Status != domain.PoolStatusOpen {
		metrics.JoinsRejected.WithLabelValues("pool_not_open").Inc()
		return nil, domain.ErrPoolNotOpen
	}
	if b.Commodity != p.Commodity {
		metrics.JoinsRejected.WithLabelValues("commodity_mismatch").Inc()
		return nil, domain.ErrCommodityMismatch
	}
	if b.Status != domain.BatchStatusActive {
		metrics.JoinsRejected.WithLabelValues("batch_not_active").Inc()
		return nil, domain.ErrBatchNotActive
	}

	remaining := p.RemainingVolume()
	if b.Volume.GreaterThan(remaining) {
		metrics.JoinsRejected.WithLabelValues("capacity").Inc()
		return nil, &domain.CapacityError{Requested: b.Volume, Available: remaining}
	}

	part := &domain.Participant{
		ProducerID: producerID,
		BatchID:    b.ID,
		Volume:     b.Volume,
		JoinedAt:   time.Now(),
	}
	e.market.AddParticipant(p.ID, part)
	p.CurrentVolume = p.CurrentVolume.Add(b.Volume)
	b.Status = domain.BatchStatusReserved

	// The batch left the active state: its compatibility notices are
	// stale now.
	e.market.SupersedeByBatch(b.ID)

	e.market.Persist()
	e.batches.Persist()

	metrics.JoinsCommitted.Inc()
	e.logger.Info("batch committed to pool",
		slog.Int64("pool_id", p.ID),
		slog.Int64("batch_id", b.ID),
		slog.Int64("producer_id", producerID),
		slog.String("volume", b.Volume.String()),
		slog.String("pool_filled", p.CurrentVolume.String()))

	e.notifier.Notify(p.AggregatorID, fmt.Sprintf(
		"Producer #%d committed batch #%d (%s, %s t) to pool #%d. Filled: %s of %s t.",
		producerID, b.ID, b.Commodity, b.Volume, p.ID, p.CurrentVolume, p.TargetVolume))

	return part, nil
}
