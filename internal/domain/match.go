package domain

import "time"

// MatchStatus represents the state of a compatibility notice.
type MatchStatus string

const (
	MatchStatusActive     MatchStatus = "active"
	MatchStatusSuperseded MatchStatus = "superseded"
)

// Match is an advisory record that a batch and a pool were found
// compatible. It deduplicates notifications: at most one active match
// exists per (batch, pool) pair. A match never blocks allocation and
// is not consumed by the allocator.
type Match struct {
	ID        int64       `json:"id"`
	BatchID   int64       `json:"batch_id"`
	PoolID    int64       `json:"pool_id"`
	Status    MatchStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
