package store

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/Urushihara24/exportum/internal/domain"
)

const userSnapshot = "users"

// UserStore is a thread-safe in-memory store for users, keyed by user
// ID, mirrored to a durable snapshot after every mutation. The ID
// counter is reseeded at load time from the maximum persisted ID, so
// allocation is self-healing across restarts.
type UserStore struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64
	p      Persister
	logger *slog.Logger
}

// NewUserStore loads the user snapshot (if any) and seeds the ID counter.
func NewUserStore(p Persister, logger *slog.Logger) *UserStore {
	s := &UserStore{
		users:  make(map[int64]*domain.User),
		p:      p,
		logger: logger,
	}

	var loaded map[int64]*domain.User
	if found, _ := p.Load(userSnapshot, &loaded); found {
		s.users = loaded
	}
	for id := range s.users {
		if id > s.nextID {
			s.nextID = id
		}
	}
	return s
}

// Create assigns the next user ID, adds the user, and persists the
// collection. A failed write is a durability warning, not a failure of
// the mutation: the in-memory state stays authoritative.
func (s *UserStore) Create(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	u.ID = s.nextID
	s.users[u.ID] = u
	s.persist()
}

// Get retrieves a user by ID. It returns domain.ErrUserNotFound if the
// user does not exist.
func (s *UserStore) Get(id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// List returns all users ordered by ID.
func (s *UserStore) List() []*domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// persist writes the full user collection. Callers hold the write lock.
// Write failures are logged by the persister and never undo the
// in-memory mutation.
func (s *UserStore) persist() {
	_ = s.p.Save(userSnapshot, s.users)
}
