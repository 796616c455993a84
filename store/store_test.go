package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kbukum/sessionauth/auth"
	"github.com/kbukum/sessionauth/database"
	apperrors "github.com/kbukum/sessionauth/errors"
	"github.com/kbukum/sessionauth/logger"
)

type userStore interface {
	Store() auth.Store
	Delete(ctx context.Context, id string) error
}

func newGormStore(t *testing.T) *Gorm {
	t.Helper()
	db, err := database.Open(context.Background(), database.Config{
		DSN:      filepath.Join(t.TempDir(), "users.db"),
		LogLevel: "silent",
	}, logger.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	g := NewGorm(db)
	if err := g.Migrate(); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return g
}

func stores(t *testing.T) map[string]userStore {
	return map[string]userStore{
		"memory": NewMemory(),
		"gorm":   newGormStore(t),
	}
}

func TestStore_CreateAndFind(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := s.Store()

			created, err := st.Create(ctx, auth.CreateUserInput{
				Email:        "ada@example.com",
				PasswordHash: "$2a$04$hash",
				Extra:        map[string]any{"name": "Ada"},
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if created.ID == "" {
				t.Fatal("expected generated id")
			}

			byID, err := st.FindByID(ctx, created.ID)
			if err != nil {
				t.Fatalf("FindByID: %v", err)
			}
			if byID.Email != "ada@example.com" || byID.PasswordHash != "$2a$04$hash" {
				t.Errorf("unexpected user %+v", byID)
			}
			if byID.Attributes["name"] != "Ada" {
				t.Errorf("expected extra fields stored, got %v", byID.Attributes)
			}

			byEmail, err := st.FindByEmail(ctx, "ada@example.com")
			if err != nil {
				t.Fatalf("FindByEmail: %v", err)
			}
			if byEmail.ID != created.ID {
				t.Errorf("expected %s, got %s", created.ID, byEmail.ID)
			}
		})
	}
}

func TestStore_NotFound(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := s.Store()

			if _, err := st.FindByID(ctx, "missing"); !errors.Is(err, auth.ErrUserNotFound) {
				t.Errorf("FindByID: expected ErrUserNotFound, got %v", err)
			}
			if _, err := st.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, auth.ErrUserNotFound) {
				t.Errorf("FindByEmail: expected ErrUserNotFound, got %v", err)
			}
		})
	}
}

func TestStore_DuplicateEmail(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := s.Store()
			in := auth.CreateUserInput{Email: "dup@example.com", PasswordHash: "h"}

			if _, err := st.Create(ctx, in); err != nil {
				t.Fatalf("first Create: %v", err)
			}
			_, err := st.Create(ctx, in)
			appErr, ok := apperrors.AsAppError(err)
			if !ok || appErr.Code != apperrors.ErrCodeAlreadyExists {
				t.Fatalf("expected ALREADY_EXISTS, got %v", err)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := s.Store()

			u, err := st.Create(ctx, auth.CreateUserInput{Email: "gone@example.com", PasswordHash: "h"})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if err := s.Delete(ctx, u.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := st.FindByID(ctx, u.ID); !errors.Is(err, auth.ErrUserNotFound) {
				t.Errorf("expected deleted user to be missing, got %v", err)
			}
			if _, err := st.Create(ctx, auth.CreateUserInput{Email: "gone@example.com", PasswordHash: "h"}); err != nil {
				t.Errorf("email should be free after delete: %v", err)
			}
		})
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	u, _ := m.Create(ctx, auth.CreateUserInput{Email: "a@example.com", Extra: map[string]any{"role": "user"}})

	u.Attributes["role"] = "admin"
	again, _ := m.FindByID(ctx, u.ID)
	if again.Attributes["role"] != "user" {
		t.Error("mutating a returned user must not change the store")
	}
}

func TestMemory_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = m.Create(ctx, auth.CreateUserInput{Email: fmt.Sprintf("u%d@example.com", i%10)})
		}(i)
	}
	wg.Wait()

	if m.Len() != 10 {
		t.Errorf("expected 10 unique users, got %d", m.Len())
	}
}

func TestGorm_MigrateIsIdempotent(t *testing.T) {
	g := newGormStore(t)
	if err := g.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
