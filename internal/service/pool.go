package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Urushihara24/exportum/internal/domain"
	"github.com/Urushihara24/exportum/internal/engine"
	"github.com/Urushihara24/exportum/internal/store"
)

// CreatePoolRequest represents the input for pool creation.
type CreatePoolRequest struct {
	AggregatorID int64
	Commodity    string
	TargetVolume decimal.Decimal
	Price        decimal.Decimal
	Port         string
	MaxMoisture  float64
	MinNature    float64
	MaxImpurity  float64
	MaxWeed      float64
	Documents    []string
}

// PoolService handles pool lifecycle operations, delegates joins to
// the capacity allocator, and triggers the batch-side matching scan on
// creation.
type PoolService struct {
	market *store.MarketStore
	users  *store.UserStore
	engine *engine.Engine
}

// NewPoolService creates a new PoolService.
func NewPoolService(market *store.MarketStore, users *store.UserStore, eng *engine.Engine) *PoolService {
	return &PoolService{market: market, users: users, engine: eng}
}

// Create validates the request, stores the pool, and runs the
// batch-side matching scan. Returns the pool and its compatible batches.
func (s *PoolService) Create(req CreatePoolRequest) (*domain.Pool, []*domain.Batch, error) {
	owner, err := s.users.Get(req.AggregatorID)
	if err != nil {
		return nil, nil, err
	}
	if owner.Role != domain.RoleAggregator {
		return nil, nil, &domain.ValidationError{Message: "only aggregators can create pools"}
	}

	commodity := domain.Commodity(req.Commodity)
	if !commodity.Valid() {
		return nil, nil, &domain.ValidationError{Message: fmt.Sprintf("unknown commodity: %q", req.Commodity)}
	}
	if !req.TargetVolume.IsPositive() {
		return nil, nil, &domain.ValidationError{Message: "target_volume must be > 0"}
	}
	if !req.Price.IsPositive() {
		return nil, nil, &domain.ValidationError{Message: "price must be > 0"}
	}
	if req.Port == "" {
		return nil, nil, &domain.ValidationError{Message: "port is required"}
	}
	if err := validateMetric("max_moisture", req.MaxMoisture); err != nil {
		return nil, nil, err
	}
	if err := validateMetric("max_impurity", req.MaxImpurity); err != nil {
		return nil, nil, err
	}
	if err := validateMetric("max_weed", req.MaxWeed); err != nil {
		return nil, nil, err
	}
	if req.MinNature < 0 {
		return nil, nil, &domain.ValidationError{Message: "min_nature must be >= 0"}
	}

	docs := req.Documents
	if docs == nil {
		docs = []string{}
	}

	p := &domain.Pool{
		AggregatorID:  req.AggregatorID,
		Commodity:     commodity,
		TargetVolume:  req.TargetVolume,
		CurrentVolume: decimal.Zero,
		Price:         req.Price,
		Port:          req.Port,
		MaxMoisture:   req.MaxMoisture,
		MinNature:     req.MinNature,
		MaxImpurity:   req.MaxImpurity,
		MaxWeed:       req.MaxWeed,
		Documents:     docs,
		Status:        domain.PoolStatusOpen,
		CreatedAt:     time.Now(),
	}
	s.market.CreatePool(p)

	batches := s.engine.MatchBatchesForPool(p)
	return p, batches, nil
}

// Get retrieves a pool by ID.
func (s *PoolService) Get(id int64) (*domain.Pool, error) {
	return s.market.GetPool(id)
}

// List returns all pools ordered by ID.
func (s *PoolService) List() []*domain.Pool {
	return s.market.ListPools()
}

// Participants returns the pool's commitment records in join order.
func (s *PoolService) Participants(poolID int64) ([]*domain.Participant, error) {
	if _, err := s.market.GetPool(poolID); err != nil {
		return nil, err
	}
	return s.market.Participants(poolID), nil
}

// SetStatus applies an owner-driven pool status transition. Closing or
// completing a pool supersedes its remaining active matches. The
// transition runs inside the engine's mutual-exclusion scope so it
// cannot interleave with a join or sweep reading the pool's status.
func (s *PoolService) SetStatus(poolID, ownerID int64, status string) (*domain.Pool, error) {
	next := domain.PoolStatus(status)
	if !next.Valid() {
		return nil, &domain.ValidationError{
			Message: "status must be one of: open, in_progress, closed, completed",
		}
	}

	return s.engine.EditPool(poolID, func(p *domain.Pool) error {
		if p.AggregatorID != ownerID {
			return domain.ErrPoolNotOwned
		}
		if !p.Status.CanTransitionTo(next) {
			return domain.ErrInvalidTransition
		}

		p.Status = next
		if next == domain.PoolStatusClosed || next == domain.PoolStatusCompleted {
			s.market.SupersedeByPool(p.ID)
		}
		return nil
	})
}

// Join commits the producer's batch into the pool via the capacity
// allocator.
func (s *PoolService) Join(poolID, batchID, producerID int64) (*domain.Participant, error) {
	return s.engine.JoinPool(poolID, batchID, producerID)
}
