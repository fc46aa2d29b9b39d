// worker runs the scheduled session cleanup sweep. It sweeps once at startup
// so a long-stopped worker catches up immediately, then follows CLEANUP_SCHEDULE.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"water-abstraction-admin/internal/config"
	"water-abstraction-admin/internal/db"
	"water-abstraction-admin/internal/session"
	sessionrepo "water-abstraction-admin/internal/session/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.Close()

	cleaner := session.NewCleaner(sessionrepo.NewPostgresRepository(database), cfg.Retention())

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := cleaner.Run(ctx); err != nil {
			log.Printf("worker: sweep failed: %v", err)
		}
	}

	sweep()

	c := cron.New()
	if _, err := c.AddFunc(cfg.CleanupSchedule, sweep); err != nil {
		log.Fatalf("worker: bad CLEANUP_SCHEDULE %q: %v", cfg.CleanupSchedule, err)
	}
	c.Start()
	log.Printf("worker: session cleanup scheduled (%s), retention %s", cfg.CleanupSchedule, cfg.Retention())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("worker: shutting down...")
	<-c.Stop().Done()
	log.Println("worker: stopped")
}
