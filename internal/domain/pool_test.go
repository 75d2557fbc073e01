package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPoolStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from PoolStatus
		to   PoolStatus
		want bool
	}{
		{PoolStatusOpen, PoolStatusInProgress, true},
		{PoolStatusOpen, PoolStatusClosed, true},
		{PoolStatusOpen, PoolStatusCompleted, false},
		{PoolStatusOpen, PoolStatusOpen, false},
		{PoolStatusInProgress, PoolStatusCompleted, true},
		{PoolStatusInProgress, PoolStatusClosed, true},
		{PoolStatusInProgress, PoolStatusOpen, false},
		{PoolStatusClosed, PoolStatusOpen, false},
		{PoolStatusClosed, PoolStatusCompleted, false},
		{PoolStatusCompleted, PoolStatusClosed, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Fatalf("%s → %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestPool_RemainingVolume(t *testing.T) {
	p := &Pool{
		TargetVolume:  decimal.NewFromInt(100),
		CurrentVolume: decimal.NewFromInt(40),
	}
	if got := p.RemainingVolume(); !got.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("remaining = %s, want 60", got)
	}
}
