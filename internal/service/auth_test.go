package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"todo_webapp/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.Username]; ok {
		return domain.ErrDuplicateUser
	}
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	r.users[u.Username] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func newTestAuth(repo domain.UserRepository, ttl time.Duration) *AuthService {
	return NewAuthService(repo, "test-secret", "@gmail.com", ttl, bcrypt.MinCost)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuth(repo, time.Hour)

	user, err := auth.Register(context.Background(), "alice", "alice@gmail.com", "Abc123!")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.PasswordHash == "Abc123!" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Abc123!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegisterRejectsBadDomain(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuth(repo, time.Hour)

	_, err := auth.Register(context.Background(), "bob", "bob@example.org", "Abc123!")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatal("rejected registration persisted a record")
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	auth := newTestAuth(newMemUserRepo(), time.Hour)

	for _, tc := range []struct{ username, email, password string }{
		{"", "a@gmail.com", "pw"},
		{"a", "", "pw"},
		{"a", "a@gmail.com", ""},
	} {
		if _, err := auth.Register(context.Background(), tc.username, tc.email, tc.password); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Register(%q,%q,%q): expected ErrInvalidInput, got %v", tc.username, tc.email, tc.password, err)
		}
	}
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuth(repo, time.Hour)

	if _, err := auth.Register(context.Background(), "alice", "alice@gmail.com", "Abc123!"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := auth.Register(context.Background(), "alice", "alice2@gmail.com", "Abc123!")
	if !errors.Is(err, domain.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuth(repo, time.Hour)

	if _, err := auth.Register(context.Background(), "alice", "alice@gmail.com", "Abc123!"); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := auth.Login(context.Background(), "alice", "Abc123!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims user id = %d, want %d", claims.UserID, user.ID)
	}
	if claims.Username != "alice" {
		t.Errorf("claims username = %q, want alice", claims.Username)
	}
	if claims.Email != "alice@gmail.com" {
		t.Errorf("claims email = %q, want alice@gmail.com", claims.Email)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuth(repo, time.Hour)

	if _, err := auth.Register(context.Background(), "alice", "alice@gmail.com", "Abc123!"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, unknownErr := auth.Login(context.Background(), "nobody", "Abc123!")
	_, _, wrongErr := auth.Login(context.Background(), "alice", "wrong")

	if !errors.Is(unknownErr, domain.ErrUnauthorized) {
		t.Errorf("unknown user: expected ErrUnauthorized, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrUnauthorized) {
		t.Errorf("wrong password: expected ErrUnauthorized, got %v", wrongErr)
	}
}

func TestParseTokenRejectsTampered(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuth(repo, time.Hour)

	if _, err := auth.Register(context.Background(), "alice", "alice@gmail.com", "Abc123!"); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, _, err := auth.Login(context.Background(), "alice", "Abc123!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// flip the last character of the signature
	tampered := token[:len(token)-1]
	if strings.HasSuffix(token, "A") {
		tampered += "B"
	} else {
		tampered += "A"
	}
	if _, err := auth.ParseToken(tampered); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("tampered token accepted: %v", err)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuth(repo, time.Hour)
	other := NewAuthService(repo, "other-secret", "@gmail.com", time.Hour, bcrypt.MinCost)

	user, err := auth.Register(context.Background(), "alice", "alice@gmail.com", "Abc123!")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := other.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := auth.ParseToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("token signed with wrong secret accepted: %v", err)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	repo := newMemUserRepo()
	expiring := newTestAuth(repo, -time.Hour)

	user, err := expiring.Register(context.Background(), "alice", "alice@gmail.com", "Abc123!")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := expiring.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := expiring.ParseToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expired token accepted: %v", err)
	}
}
