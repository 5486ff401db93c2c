package login

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
	"github.com/ledesmaled1977/ledesma-led-app/models"
)

func openLoginTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "login-test.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	migrationsDir := filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations")
	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestRegisterAndAuthenticate(t *testing.T) {
	db := openLoginTestDB(t)

	if err := RegisterUser(context.Background(), db, "Maria Perez", "maria", "secreto123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := authenticateUser(context.Background(), db, "maria", "secreto123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Fullname != "Maria Perez" || user.Role != models.RoleUser {
		t.Fatalf("unexpected user: %+v", user)
	}

	// Wrong password and unknown user answer identically.
	if _, err := authenticateUser(context.Background(), db, "maria", "incorrecta"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows on bad password, got %v", err)
	}
	if _, err := authenticateUser(context.Background(), db, "nadie", "secreto123"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows on unknown user, got %v", err)
	}
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	db := openLoginTestDB(t)

	if err := RegisterUser(context.Background(), db, "Maria", "maria", "secreto123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := RegisterUser(context.Background(), db, "Otra Maria", "MARIA", "otra456"); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists for case-insensitive duplicate, got %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := openLoginTestDB(t)

	if err := RegisterUser(context.Background(), db, "Maria", "maria", "secreto123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	user, err := authenticateUser(context.Background(), db, "maria", "secreto123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	session := newSession(user)
	if err := persistSession(context.Background(), db, session); err != nil {
		t.Fatalf("persist session: %v", err)
	}

	loaded, err := LoadSessionByToken(context.Background(), db, session.ID)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if loaded.UserID != user.ID || loaded.User.Username != "maria" {
		t.Fatalf("session not loaded with user relation: %+v", loaded)
	}

	if err := DeleteSessionByToken(context.Background(), db, session.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := LoadSessionByToken(context.Background(), db, session.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows after delete, got %v", err)
	}
}

func TestLoadSessionByToken_ExpiredIsPurged(t *testing.T) {
	db := openLoginTestDB(t)

	if err := RegisterUser(context.Background(), db, "Maria", "maria", "secreto123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	user, err := authenticateUser(context.Background(), db, "maria", "secreto123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	session := newSession(user)
	session.ExpiresAt = time.Now().Add(-time.Minute)
	if err := persistSession(context.Background(), db, session); err != nil {
		t.Fatalf("persist session: %v", err)
	}

	if _, err := LoadSessionByToken(context.Background(), db, session.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for expired session, got %v", err)
	}
}

func TestUpsertUserPasswordHash(t *testing.T) {
	db := openLoginTestDB(t)

	if err := UpsertUserPasswordHash(context.Background(), db, "Administrador", "admin", models.RoleAdmin, "Clave1!"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := authenticateUser(context.Background(), db, "admin", "Clave1!"); err != nil {
		t.Fatalf("authenticate seeded admin: %v", err)
	}

	// Re-seeding rotates the password instead of failing.
	if err := UpsertUserPasswordHash(context.Background(), db, "Administrador", "admin", models.RoleAdmin, "Clave2!"); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	if _, err := authenticateUser(context.Background(), db, "admin", "Clave1!"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected old password rejected, got %v", err)
	}
	user, err := authenticateUser(context.Background(), db, "admin", "Clave2!")
	if err != nil {
		t.Fatalf("authenticate rotated admin: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Fatalf("expected admin role, got %q", user.Role)
	}
}
