package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PoolStatus represents the lifecycle state of a pool.
type PoolStatus string

const (
	PoolStatusOpen       PoolStatus = "open"
	PoolStatusInProgress PoolStatus = "in_progress"
	PoolStatusClosed     PoolStatus = "closed"
	PoolStatusCompleted  PoolStatus = "completed"
)

// Valid reports whether s is one of the known pool statuses.
func (s PoolStatus) Valid() bool {
	switch s {
	case PoolStatusOpen, PoolStatusInProgress, PoolStatusClosed, PoolStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status transition s → next is
// allowed. Closed and completed are terminal.
func (s PoolStatus) CanTransitionTo(next PoolStatus) bool {
	switch s {
	case PoolStatusOpen:
		return next == PoolStatusInProgress || next == PoolStatusClosed
	case PoolStatusInProgress:
		return next == PoolStatusCompleted || next == PoolStatusClosed
	}
	return false
}

// Pool is a unit of standing demand collected by an aggregator.
// TargetVolume and CurrentVolume are in tonnes; Price is in the
// reference currency per tonne. CurrentVolume only ever increases,
// and only via the capacity allocator.
type Pool struct {
	ID            int64           `json:"id"`
	AggregatorID  int64           `json:"aggregator_id"`
	Commodity     Commodity       `json:"commodity"`
	TargetVolume  decimal.Decimal `json:"target_volume"`
	CurrentVolume decimal.Decimal `json:"current_volume"`
	Price         decimal.Decimal `json:"price"`
	Port          string          `json:"port"`
	MaxMoisture   float64         `json:"max_moisture"`
	MinNature     float64         `json:"min_nature"`
	MaxImpurity   float64         `json:"max_impurity"`
	MaxWeed       float64         `json:"max_weed"`
	Documents     []string        `json:"documents"`
	Status        PoolStatus      `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RemainingVolume returns the uncommitted room left in the pool.
func (p *Pool) RemainingVolume() decimal.Decimal {
	return p.TargetVolume.Sub(p.CurrentVolume)
}

// Participant records a producer's commitment of a whole batch into a
// pool. Participants are append-only per pool.
type Participant struct {
	ProducerID int64           `json:"producer_id"`
	BatchID    int64           `json:"batch_id"`
	Volume     decimal.Decimal `json:"volume"`
	JoinedAt   time.Time       `json:"joined_at"`
}
