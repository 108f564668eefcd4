package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hackathon-club/app/config"
	"hackathon-club/app/database"
	"hackathon-club/app/security"
	"hackathon-club/app/server"
	"hackathon-club/app/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Printf("Warning: Failed to load %s location, falling back to UTC: %v", cfg.TimeZone, err)
		loc = time.UTC
	}
	time.Local = loc
	log.Printf("Application time zone set to: %s", time.Local.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	store := database.New(db, cfg.Database.Driver)
	defer store.Close()

	// Run database migrations
	if err := store.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	verifier, err := security.NewFirebaseVerifier(ctx, cfg.Firebase)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Start background scheduler
	var schedulerDone <-chan struct{}
	if cfg.Schedule.Enabled {
		schedulerDone = services.NewStatusScheduler(store, cfg.Schedule.Interval).Start(ctx)
	}

	app := server.New(cfg.CORS, server.NewServices(cfg, store, verifier, loc))

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}

	if cfg.Schedule.Enabled {
		<-schedulerDone
	}
	log.Println("Server stopped")
}
