// Command seed populates the development database with fake data.
package main

import (
	"log"

	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/seed"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
