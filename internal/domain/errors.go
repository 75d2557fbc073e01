package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrUserNotFound      = errors.New("user_not_found")
	ErrBatchNotFound     = errors.New("batch_not_found")
	ErrPoolNotFound      = errors.New("pool_not_found")
	ErrBatchNotOwned     = errors.New("batch_not_owned")
	ErrPoolNotOwned      = errors.New("pool_not_owned")
	ErrBatchNotActive    = errors.New("batch_not_active")
	ErrPoolNotOpen       = errors.New("pool_not_open")
	ErrCommodityMismatch = errors.New("commodity_mismatch")
	ErrInvalidTransition = errors.New("invalid_status_transition")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CapacityError is returned when a batch's volume exceeds the room
// remaining in a pool.
type CapacityError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient pool capacity: requested %s t, available %s t",
		e.Requested, e.Available)
}
