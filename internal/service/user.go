package service

import (
	"regexp"
	"time"

	"github.com/Urushihara24/exportum/internal/domain"
	"github.com/Urushihara24/exportum/internal/store"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// RegisterUserRequest represents the input for user registration.
type RegisterUserRequest struct {
	Name  string
	Phone string
	Email string
	Role  string
}

// UserService handles user registration and lookup. Roles are fixed at
// registration: there is no update or re-registration operation.
type UserService struct {
	store *store.UserStore
}

// NewUserService creates a new UserService.
func NewUserService(store *store.UserStore) *UserService {
	return &UserService{store: store}
}

// Register validates the request and creates a user.
func (s *UserService) Register(req RegisterUserRequest) (*domain.User, error) {
	if req.Name == "" {
		return nil, &domain.ValidationError{Message: "name is required"}
	}
	if len(req.Name) > 128 {
		return nil, &domain.ValidationError{Message: "name must be at most 128 characters"}
	}
	role := domain.Role(req.Role)
	if !role.Valid() {
		return nil, &domain.ValidationError{
			Message: "role must be one of: producer, aggregator, carrier, docagent",
		}
	}
	if req.Phone != "" && !phoneRegex.MatchString(req.Phone) {
		return nil, &domain.ValidationError{Message: "phone must be 7-15 digits, optionally prefixed with +"}
	}

	u := &domain.User{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Role:         role,
		RegisteredAt: time.Now(),
	}
	s.store.Create(u)
	return u, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(id int64) (*domain.User, error) {
	return s.store.Get(id)
}

// List returns all registered users ordered by ID.
func (s *UserService) List() []*domain.User {
	return s.store.List()
}
