package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/johnquangdev/voice-dataset/internal/adapter/repository"
	"github.com/johnquangdev/voice-dataset/internal/infrastructure/database"
	"github.com/johnquangdev/voice-dataset/internal/usecase/catalog"
	"github.com/johnquangdev/voice-dataset/pkg/config"
)

func main() {
	path := flag.String("file", "catalog.toml", "TOML file listing contributors and sentences")
	flag.Parse()

	log.Println("🚀 Seeding catalog...")

	input, err := loadCatalogFile(*path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	service := catalog.NewService(
		repository.NewContributorRepository(db),
		repository.NewSentenceRepository(db),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	out, err := service.Import(ctx, *input)
	if err != nil {
		log.Fatalf("Failed to import catalog: %v", err)
	}

	log.Printf("✅ Contributors created: %d, already present: %d", out.ContributorsCreated, out.ContributorsSkipped)
	log.Printf("✅ Sentences written: %d", out.Sentences)
}
