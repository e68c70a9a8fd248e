package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/opentre/opentre/internal/api"
	"github.com/opentre/opentre/internal/auth"
	"github.com/opentre/opentre/internal/config"
	"github.com/opentre/opentre/internal/db"
	"github.com/opentre/opentre/internal/dispatch"
	"github.com/opentre/opentre/internal/template"
	"github.com/opentre/opentre/internal/workspace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		log.Fatalf("OPENTRE_DATABASE_URL is required")
	}
	store, err := db.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	log.Println("opentre: running database migrations...")
	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Println("opentre: database migrations complete")

	dispatcher, err := dispatch.NewNATSDispatcher(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to provisioning pipeline: %v", err)
	}
	defer dispatcher.Close()
	log.Printf("opentre: provisioning dispatcher connected (%s)", cfg.NATSURL)

	resolver := template.NewResolver(store)
	orchestrator := workspace.NewOrchestrator(store, resolver, dispatcher)

	var jwtIssuer *auth.JWTIssuer
	if cfg.JWTSecret != "" {
		jwtIssuer = auth.NewJWTIssuer(cfg.JWTSecret)
		log.Println("opentre: JWT auth configured")
	} else {
		log.Println("opentre: no JWT secret configured, running in dev mode (all callers are admin)")
	}

	server := api.NewServer(resolver, store, orchestrator, jwtIssuer)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("opentre: starting management API on %s (tre_id=%s, location=%s)", addr, cfg.TreID, cfg.Location)

	go func() {
		if err := server.Start(addr); err != nil {
			log.Printf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("opentre: shutting down...")
	if err := server.Close(); err != nil {
		log.Printf("error closing server: %v", err)
	}
}
