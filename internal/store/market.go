package store

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/btree"

	"github.com/Urushihara24/exportum/internal/domain"
)

const marketSnapshot = "market"

// pairKey identifies a (batch, pool) pair in the active-match index.
type pairKey struct {
	batchID int64
	poolID  int64
}

// marketAggregate is the persisted form of the market collections.
// Pools, participants, and matches are written together as one
// full-replace snapshot.
type marketAggregate struct {
	Pools        []*domain.Pool                  `json:"pools"`
	Participants map[int64][]*domain.Participant `json:"participants"`
	Matches      []*domain.Match                 `json:"matches"`
}

// MarketStore is a thread-safe in-memory store for pools, participants,
// and matches. Pools live in a B-tree ordered by ID with a map
// secondary index, so listings and snapshots are deterministic.
// Active matches carry an additional (batch, pool) pair index backing
// the match ledger. Both ID counters are reseeded from the maximum
// persisted IDs.
type MarketStore struct {
	mu           sync.RWMutex
	pools        *btree.BTreeG[*domain.Pool]
	poolIdx      map[int64]*domain.Pool
	participants map[int64][]*domain.Participant
	matches      []*domain.Match
	activePairs  map[pairKey]*domain.Match
	nextPoolID   int64
	nextMatchID  int64
	p            Persister
	logger       *slog.Logger
}

func poolLess(a, b *domain.Pool) bool { return a.ID < b.ID }

// NewMarketStore loads the market snapshot (if any), rebuilds the
// indexes, and seeds both ID counters.
func NewMarketStore(p Persister, logger *slog.Logger) *MarketStore {
	const degree = 32
	s := &MarketStore{
		pools:        btree.NewG[*domain.Pool](degree, poolLess),
		poolIdx:      make(map[int64]*domain.Pool),
		participants: make(map[int64][]*domain.Participant),
		activePairs:  make(map[pairKey]*domain.Match),
		p:            p,
		logger:       logger,
	}

	var loaded marketAggregate
	if found, _ := p.Load(marketSnapshot, &loaded); found {
		for _, pool := range loaded.Pools {
			s.pools.ReplaceOrInsert(pool)
			s.poolIdx[pool.ID] = pool
			if pool.ID > s.nextPoolID {
				s.nextPoolID = pool.ID
			}
		}
		if loaded.Participants != nil {
			s.participants = loaded.Participants
		}
		s.matches = loaded.Matches
		for _, m := range s.matches {
			if m.ID > s.nextMatchID {
				s.nextMatchID = m.ID
			}
			if m.Status == domain.MatchStatusActive {
				s.activePairs[pairKey{m.BatchID, m.PoolID}] = m
			}
		}
	}
	return s
}

// CreatePool assigns the next pool ID, adds the pool to both indexes,
// and persists the aggregate.
func (s *MarketStore) CreatePool(pool *domain.Pool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPoolID++
	pool.ID = s.nextPoolID
	s.pools.ReplaceOrInsert(pool)
	s.poolIdx[pool.ID] = pool
	s.persist()
}

// GetPool retrieves a pool by ID. It returns domain.ErrPoolNotFound if
// the pool does not exist.
func (s *MarketStore) GetPool(id int64) (*domain.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, ok := s.poolIdx[id]
	if !ok {
		return nil, domain.ErrPoolNotFound
	}
	return pool, nil
}

// ListPools returns all pools ordered by ID.
func (s *MarketStore) ListPools() []*domain.Pool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Pool, 0, s.pools.Len())
	s.pools.Ascend(func(p *domain.Pool) bool {
		result = append(result, p)
		return true
	})
	return result
}

// AddParticipant appends a commitment record to the pool's ordered
// participant list. The caller is responsible for the capacity checks
// and for persisting via Persist once all related mutations are done.
func (s *MarketStore) AddParticipant(poolID int64, part *domain.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.participants[poolID] = append(s.participants[poolID], part)
}

// Participants returns the pool's commitment records in join order.
func (s *MarketStore) Participants(poolID int64) []*domain.Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.participants[poolID]
	result := make([]*domain.Participant, len(list))
	copy(result, list)
	return result
}

// GetOrCreateMatch is the match ledger: it returns the active match for
// the (batch, pool) pair, creating one when none exists. The
// check-then-insert runs as a single step under the store lock, so at
// most one active match per pair can ever exist. Creation persists the
// aggregate; lookup does not mutate.
func (s *MarketStore) GetOrCreateMatch(batchID, poolID int64) (*domain.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{batchID, poolID}
	if existing, ok := s.activePairs[key]; ok {
		return existing, false
	}

	s.nextMatchID++
	m := &domain.Match{
		ID:        s.nextMatchID,
		BatchID:   batchID,
		PoolID:    poolID,
		Status:    domain.MatchStatusActive,
		CreatedAt: time.Now(),
	}
	s.matches = append(s.matches, m)
	s.activePairs[key] = m
	s.persist()
	return m, true
}

// ActiveMatch returns the active match for the pair, or nil.
func (s *MarketStore) ActiveMatch(batchID, poolID int64) *domain.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activePairs[pairKey{batchID, poolID}]
}

// ListMatches returns all matches ordered by ID.
func (s *MarketStore) ListMatches() []*domain.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Match, len(s.matches))
	copy(result, s.matches)
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// SupersedeByBatch marks every active match referencing the batch as
// superseded and returns how many were affected. Called when a batch
// leaves the active state. The caller persists.
func (s *MarketStore) SupersedeByBatch(batchID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, m := range s.activePairs {
		if key.batchID == batchID {
			m.Status = domain.MatchStatusSuperseded
			delete(s.activePairs, key)
			n++
		}
	}
	return n
}

// SupersedeByPool marks every active match referencing the pool as
// superseded and returns how many were affected. Called when a pool
// closes. The caller persists.
func (s *MarketStore) SupersedeByPool(poolID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, m := range s.activePairs {
		if key.poolID == poolID {
			m.Status = domain.MatchStatusSuperseded
			delete(s.activePairs, key)
			n++
		}
	}
	return n
}

// Persist writes the full market aggregate. Called after in-place
// mutation of a pool obtained from GetPool, or after participant and
// supersede mutations.
func (s *MarketStore) Persist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist()
}

// persist writes the snapshot. Callers hold the write lock. Write
// failures are logged by the persister and never undo the in-memory
// mutation.
func (s *MarketStore) persist() {
	agg := marketAggregate{
		Pools:        make([]*domain.Pool, 0, s.pools.Len()),
		Participants: s.participants,
		Matches:      s.matches,
	}
	s.pools.Ascend(func(p *domain.Pool) bool {
		agg.Pools = append(agg.Pools, p)
		return true
	})
	_ = s.p.Save(marketSnapshot, agg)
}
