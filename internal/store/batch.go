package store

import (
	"log/slog"
	"sync"

	"github.com/Urushihara24/exportum/internal/domain"
)

const batchSnapshot = "batches"

// BatchStore is a thread-safe in-memory store for batches, with a
// primary index by batch ID and a secondary index by producer ID. The
// persisted aggregate is the producer-keyed collection; the primary
// index is rebuilt from it at load time. The ID counter is reseeded
// from the maximum persisted ID.
type BatchStore struct {
	mu         sync.RWMutex
	batches    map[int64]*domain.Batch
	byProducer map[int64][]*domain.Batch
	nextID     int64
	p          Persister
	logger     *slog.Logger
}

// NewBatchStore loads the batch snapshot (if any) and seeds the ID counter.
func NewBatchStore(p Persister, logger *slog.Logger) *BatchStore {
	s := &BatchStore{
		batches:    make(map[int64]*domain.Batch),
		byProducer: make(map[int64][]*domain.Batch),
		p:          p,
		logger:     logger,
	}

	var loaded map[int64][]*domain.Batch
	if found, _ := p.Load(batchSnapshot, &loaded); found {
		s.byProducer = loaded
		for _, list := range loaded {
			for _, b := range list {
				s.batches[b.ID] = b
			}
		}
	}
	for id := range s.batches {
		if id > s.nextID {
			s.nextID = id
		}
	}
	return s
}

// Create assigns the next batch ID, adds the batch to both indexes,
// and persists the collection.
func (s *BatchStore) Create(b *domain.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	b.ID = s.nextID
	s.batches[b.ID] = b
	s.byProducer[b.ProducerID] = append(s.byProducer[b.ProducerID], b)
	s.persist()
}

// Get retrieves a batch by ID. It returns domain.ErrBatchNotFound if
// the batch does not exist.
func (s *BatchStore) Get(id int64) (*domain.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.batches[id]
	if !ok {
		return nil, domain.ErrBatchNotFound
	}
	return b, nil
}

// ListByProducer returns the producer's batches in insertion order.
func (s *BatchStore) ListByProducer(producerID int64) []*domain.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.byProducer[producerID]
	result := make([]*domain.Batch, len(list))
	copy(result, list)
	return result
}

// ListActive returns every batch with status active, across all
// producers. No particular order is guaranteed.
func (s *BatchStore) ListActive() []*domain.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Batch, 0)
	for _, b := range s.batches {
		if b.Status == domain.BatchStatusActive {
			result = append(result, b)
		}
	}
	return result
}

// Delete removes a batch from the owner's collection and the primary
// index, then persists. Historical matches and participant records
// referencing the batch are untouched: they hold the ID only.
func (s *BatchStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.batches[id]
	if !ok {
		return domain.ErrBatchNotFound
	}
	delete(s.batches, id)

	list := s.byProducer[b.ProducerID]
	for i, cur := range list {
		if cur.ID == id {
			s.byProducer[b.ProducerID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(s.byProducer[b.ProducerID]) == 0 {
		delete(s.byProducer, b.ProducerID)
	}

	s.persist()
	return nil
}

// Persist writes the full producer-keyed collection. Called after
// in-place mutation of a batch obtained from Get.
func (s *BatchStore) Persist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist()
}

// persist writes the snapshot. Callers hold the write lock. Write
// failures are logged by the persister and never undo the in-memory
// mutation.
func (s *BatchStore) persist() {
	_ = s.p.Save(batchSnapshot, s.byProducer)
}
