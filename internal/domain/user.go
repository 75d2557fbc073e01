package domain

import "time"

// Role classifies a registered user. A user picks one role at
// registration time and keeps it; there is no re-registration path.
type Role string

const (
	RoleProducer   Role = "producer"
	RoleAggregator Role = "aggregator"
	RoleCarrier    Role = "carrier"
	RoleDocAgent   Role = "docagent"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleProducer, RoleAggregator, RoleCarrier, RoleDocAgent:
		return true
	}
	return false
}

// User is an identity record. Other entities reference users by ID only.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
}
