// server runs the water-abstraction admin HTTP service.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"water-abstraction-admin/internal/audit"
	auditrepo "water-abstraction-admin/internal/audit/repository"
	"water-abstraction-admin/internal/config"
	"water-abstraction-admin/internal/db"
	licencerepo "water-abstraction-admin/internal/licence/repository"
	refdatarepo "water-abstraction-admin/internal/refdata/repository"
	"water-abstraction-admin/internal/returnreqs/finalize"
	"water-abstraction-admin/internal/returnreqs/journey"
	"water-abstraction-admin/internal/returnreqs/service"
	returnsrepo "water-abstraction-admin/internal/returns/repository"
	"water-abstraction-admin/internal/server"
	sessionrepo "water-abstraction-admin/internal/session/repository"
	"water-abstraction-admin/internal/telemetry/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	ctx := context.Background()
	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "water-abstraction-admin", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.Close()

	sessions := sessionrepo.NewPostgresRepository(database)
	audits := auditrepo.NewPostgresRepository(database)
	auditLog := audit.NewLogger(audits, otel.NewEventEmitter(providers.LoggerProvider))

	journeys := journey.New(sessions)
	returns := returnsrepo.NewPostgresRepository(database)
	refdata := refdatarepo.NewPostgresRepository(database)
	finalizer := finalize.New(returns, sessions, auditLog)
	setup := service.NewSetupService(
		journeys,
		licencerepo.NewPostgresRepository(database),
		refdata,
		finalizer,
		auditLog,
	)

	router := server.NewRouter(server.Deps{
		Setup:    setup,
		Versions: returns,
		Regions:  refdata,
		Audits:   audits,
		DB:       database,
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
