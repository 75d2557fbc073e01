package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/Urushihara24/exportum/internal/domain"
)

func TestUserService_Register(t *testing.T) {
	us, _, _, _ := newTestServices()

	u, err := us.Register(RegisterUserRequest{
		Name:  "Ivan Petrov",
		Phone: "+79001234567",
		Email: "ivan@example.com",
		Role:  "producer",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected an assigned ID")
	}
	if u.Role != domain.RoleProducer {
		t.Fatalf("expected producer role, got %s", u.Role)
	}
	if u.RegisteredAt.IsZero() {
		t.Fatal("expected registration timestamp")
	}

	got, err := us.Get(u.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Name != "Ivan Petrov" {
		t.Fatalf("expected Ivan Petrov, got %s", got.Name)
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	us, _, _, _ := newTestServices()

	tests := []struct {
		name string
		req  RegisterUserRequest
	}{
		{"empty name", RegisterUserRequest{Role: "producer"}},
		{"name too long", RegisterUserRequest{Name: strings.Repeat("x", 129), Role: "producer"}},
		{"unknown role", RegisterUserRequest{Name: "a", Role: "admin"}},
		{"empty role", RegisterUserRequest{Name: "a"}},
		{"bad phone", RegisterUserRequest{Name: "a", Role: "carrier", Phone: "not-a-phone"}},
		{"phone too short", RegisterUserRequest{Name: "a", Role: "carrier", Phone: "+123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := us.Register(tt.req)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestUserService_Register_EmptyPhoneAllowed(t *testing.T) {
	us, _, _, _ := newTestServices()

	if _, err := us.Register(RegisterUserRequest{Name: "a", Role: "docagent"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestUserService_List(t *testing.T) {
	us, _, _, _ := newTestServices()

	registerUser(t, us, "producer")
	registerUser(t, us, "aggregator")

	list := us.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 users, got %d", len(list))
	}
	if list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("expected users ordered by ID, got %d and %d", list[0].ID, list[1].ID)
	}
}

func TestUserService_Get_NotFound(t *testing.T) {
	us, _, _, _ := newTestServices()

	_, err := us.Get(42)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
