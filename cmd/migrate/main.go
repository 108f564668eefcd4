package main

import (
	"context"
	"log"
	"time"

	"hackathon-club/app/config"
	"hackathon-club/app/database"
)

func main() {
	log.Println("Starting schema migration...")

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("Failed to load database settings: %v", err)
	}
	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	store := database.New(db, cfg.Driver)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := store.RunMigrations(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed successfully!")
}
