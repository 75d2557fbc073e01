package store

import (
	"testing"
	"time"

	"github.com/Urushihara24/exportum/internal/domain"
)

func newTestUser(name string, role domain.Role) *domain.User {
	return &domain.User{
		Name:         name,
		Role:         role,
		Phone:        "+79001234567",
		RegisteredAt: time.Now(),
	}
}

func TestUserStore_Create_and_Get(t *testing.T) {
	s := NewUserStore(NopPersister{}, testLogger())

	u := newTestUser("Ivan", domain.RoleProducer)
	s.Create(u)

	if u.ID != 1 {
		t.Fatalf("expected first user to get ID 1, got %d", u.ID)
	}

	got, err := s.Get(u.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Name != "Ivan" {
		t.Fatalf("expected Ivan, got %s", got.Name)
	}
}

func TestUserStore_Get_NotFound(t *testing.T) {
	s := NewUserStore(NopPersister{}, testLogger())

	_, err := s.Get(42)
	if err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserStore_List_OrderedByID(t *testing.T) {
	s := NewUserStore(NopPersister{}, testLogger())

	s.Create(newTestUser("a", domain.RoleProducer))
	s.Create(newTestUser("b", domain.RoleAggregator))
	s.Create(newTestUser("c", domain.RoleCarrier))

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 users, got %d", len(list))
	}
	for i, u := range list {
		if u.ID != int64(i+1) {
			t.Fatalf("expected ID %d at position %d, got %d", i+1, i, u.ID)
		}
	}
}

func TestUserStore_ReloadReseedsIDCounter(t *testing.T) {
	dir := t.TempDir()
	p, err := NewFilePersister(dir, testLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	s := NewUserStore(p, testLogger())
	s.Create(newTestUser("a", domain.RoleProducer))
	s.Create(newTestUser("b", domain.RoleAggregator))

	// A fresh store over the same directory must see both users and
	// continue allocating above the highest persisted ID.
	s2 := NewUserStore(p, testLogger())
	if _, err := s2.Get(2); err != nil {
		t.Fatalf("expected user 2 after reload, got %v", err)
	}

	u := newTestUser("c", domain.RoleProducer)
	s2.Create(u)
	if u.ID != 3 {
		t.Fatalf("expected next ID 3 after reload, got %d", u.ID)
	}
}
