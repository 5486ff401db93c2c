package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/cache"
	httpserver "github.com/ledesmaled1977/ledesma-led-app/infrastructure/http"
	"github.com/ledesmaled1977/ledesma-led-app/infrastructure/sqlite"
)

func main() {
	addr := getenv("APP_ADDR", ":8080")
	dbPath := getenv("SQLITE_PATH", "ledesmaled.db")

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, ""); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	sessionCache := cache.NewUserSessionCache()
	userCache := cache.NewUserCache()

	server := httpserver.NewServer(addr, db, sessionCache, userCache)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("ledesmaled listening on %s", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
