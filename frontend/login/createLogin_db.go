package login

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/argon"
	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
	"github.com/ledesmaled1977/ledesma-led-app/models"
)

// ErrUsernameExists is returned by RegisterUser when the username is taken.
var ErrUsernameExists = errors.New("el usuario ya existe")

func findUserByUsername(ctx context.Context, tx bun.Tx, username string) (models.User, error) {
	var user models.User
	err := tx.NewSelect().
		Model(&user).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func authenticateUser(ctx context.Context, db *sqlite.DB, username, password string) (models.User, error) {
	var user models.User
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		user, err = findUserByUsername(ctx, tx, username)
		return err
	})
	if err != nil {
		return models.User{}, err
	}

	ok, err := argon.ComparePasswordAndHash(password, user.PasswordHash)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		// Same answer as an unknown user so the caller cannot tell
		// which of the two fields was wrong.
		return models.User{}, sql.ErrNoRows
	}

	return user, nil
}

// RegisterUser stores a new user with a hashed password.
func RegisterUser(ctx context.Context, db *sqlite.DB, fullname, username, password string) error {
	fullname = strings.TrimSpace(fullname)
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if fullname == "" || username == "" || password == "" {
		return errors.New("todos los campos son obligatorios")
	}

	hash, err := argon.CreateHash(password, argon.DefaultParams)
	if err != nil {
		return err
	}

	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.User)(nil)).
			Where("LOWER(username) = ?", strings.ToLower(username)).
			Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return ErrUsernameExists
		}
		_, err = tx.NewInsert().Model(&models.User{
			Fullname:     fullname,
			Username:     username,
			PasswordHash: hash,
			Role:         models.RoleUser,
		}).Exec(ctx)
		return err
	})
}

func persistSession(ctx context.Context, db *sqlite.DB, session models.Session) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		// One row per token; the token is the primary key.
		_, err := tx.NewInsert().Model(&models.Session{
			ID:        session.ID,
			UserID:    session.UserID,
			ExpiresAt: session.ExpiresAt,
		}).Exec(ctx)
		return err
	})
}

func DeleteSessionByToken(ctx context.Context, db *sqlite.DB, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().Model((*models.Session)(nil)).Where("id = ?", token).Exec(ctx)
		return err
	})
}

func LoadSessionByToken(ctx context.Context, db *sqlite.DB, token string) (models.Session, error) {
	var session models.Session
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&session).
			Relation("User").
			Where("s.id = ?", token).
			Limit(1).
			Scan(ctx)
	})
	if err != nil {
		return models.Session{}, err
	}
	if session.Expired() {
		_ = DeleteSessionByToken(ctx, db, token)
		return models.Session{}, sql.ErrNoRows
	}
	return session, nil
}

// UpsertUserPasswordHash creates or refreshes an account with the given
// role and password. Used by the seeding command.
func UpsertUserPasswordHash(ctx context.Context, db *sqlite.DB, fullname, username, role, rawPassword string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is required")
	}
	rawPassword = strings.TrimSpace(rawPassword)
	if rawPassword == "" {
		return errors.New("password is required")
	}
	hash, err := argon.CreateHash(rawPassword, argon.DefaultParams)
	if err != nil {
		return err
	}

	now := time.Now()
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO users (fullname, username, password_hash, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(username) DO UPDATE SET
  fullname = excluded.fullname,
  password_hash = excluded.password_hash,
  role = excluded.role,
  updated_at = excluded.updated_at`, fullname, username, hash, role, now, now)
		return err
	})
}
