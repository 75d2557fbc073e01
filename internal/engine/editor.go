package engine

import (
	"github.com/Urushihara24/exportum/internal/domain"
)

// Owner-driven entity edits run under the same engine mutex as the
// matching scans and the allocator. A field edit can therefore never
// interleave with a capacity check or compatibility read of the same
// entity, and a status edit can never race a join's read-check-write.

// EditBatch looks up the batch and applies fn to it under the engine
// mutex. When fn returns nil the batch collection is persisted; an
// error from fn aborts without persisting.
func (e *Engine) EditBatch(batchID int64, fn func(*domain.Batch) error) (*domain.Batch, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.batches.Get(batchID)
	if err != nil {
		return nil, err
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	e.batches.Persist()
	return b, nil
}

// EditPool is the pool-side counterpart. fn may touch the market store
// as part of the edit (superseding matches, for example); the market
// aggregate is persisted once after fn succeeds.
func (e *Engine) EditPool(poolID int64, fn func(*domain.Pool) error) (*domain.Pool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.market.GetPool(poolID)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	e.market.Persist()
	return p, nil
}

// DeleteBatch removes the batch once fn approves it, all under the
// engine mutex, so a removal cannot interleave with a join or a scan
// that already holds a reference to the batch.
func (e *Engine) DeleteBatch(batchID int64, fn func(*domain.Batch) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.batches.Get(batchID)
	if err != nil {
		return err
	}
	if err := fn(b); err != nil {
		return err
	}
	return e.batches.Delete(batchID)
}
