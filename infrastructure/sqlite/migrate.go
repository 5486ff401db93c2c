package sqlite

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/uptrace/bun"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// ApplyMigrations executes *.sql files in lexical order. An empty
// migrationsDir applies the migrations compiled into the binary; tests
// pass their checkout's migrations directory instead.
func ApplyMigrations(ctx context.Context, db *DB, migrationsDir string) error {
	if strings.TrimSpace(migrationsDir) == "" {
		return ApplyEmbeddedMigrations(ctx, db)
	}
	return ApplyMigrationsFromDir(ctx, db, migrationsDir)
}

// ApplyEmbeddedMigrations executes the go:embed'ded migration files.
func ApplyEmbeddedMigrations(ctx context.Context, db *DB) error {
	return applyMigrations(ctx, db, embeddedMigrations, "migrations")
}

// ApplyMigrationsFromDir executes migration files from a directory on disk.
func ApplyMigrationsFromDir(ctx context.Context, db *DB, migrationsDir string) error {
	return applyMigrations(ctx, db, os.DirFS(migrationsDir), ".")
}

func applyMigrations(ctx context.Context, db *DB, fsys fs.FS, root string) error {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := fs.ReadFile(fsys, path.Join(root, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if err := runMigration(ctx, db, name, string(script)); err != nil {
			return err
		}
	}
	return nil
}

// runMigration wraps the script in a write transaction unless it manages
// its own (BEGIN inside the file).
func runMigration(ctx context.Context, db *DB, name, script string) error {
	upper := strings.ToUpper(script)
	if strings.Contains(upper, "BEGIN TRANSACTION") || strings.Contains(upper, "BEGIN;") {
		if _, err := db.WriteSQL.ExecContext(ctx, script); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		return nil
	}

	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, execErr := tx.ExecContext(ctx, script)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	return nil
}
