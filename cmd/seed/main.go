package main

import (
	"context"
	"log"
	"time"

	"smartmatch/internal/config"
	dbpostgres "smartmatch/internal/database/postgres"
	"smartmatch/internal/database/seeder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := seeder.Run(ctx, db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("seeded demo job offers")
}
