package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ledesmaled1977/ledesma-led-app/frontend/login"
	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
	"github.com/ledesmaled1977/ledesma-led-app/models"
)

func main() {
	dbPath := getenv("SQLITE_PATH", "ledesmaled.db")

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, ""); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	adminPassword := getenv("ADMIN_PASSWORD", "Admin123!LedesmaLED")
	if err := login.UpsertUserPasswordHash(context.Background(), db, "Administrador", "admin", models.RoleAdmin, adminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	fmt.Println("seeded admin user (username=admin)")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
