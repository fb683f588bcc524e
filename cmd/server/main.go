package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/frabrice/insightium/internal/api"
	"github.com/frabrice/insightium/internal/catalog"
	"github.com/frabrice/insightium/internal/config"
	"github.com/frabrice/insightium/internal/contentapi"
	"github.com/frabrice/insightium/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	itemRepo := database.NewItemRepository(db)
	progressRepo := database.NewProgressRepository(db)

	if cfg.UpstreamURL != "" {
		client := contentapi.NewClient(cfg.UpstreamURL)
		refresher := catalog.NewRefresher(client, itemRepo, cfg.SyncInterval)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go refresher.Run(ctx)
	} else {
		log.Printf("CONTENT_API_URL not set, catalog sync disabled")
	}

	app := &api.App{
		DB:             db,
		ItemRepo:       itemRepo,
		ProgressRepo:   progressRepo,
		PlayerOrigin:   cfg.PlayerOrigin,
		AllowedOrigins: cfg.AllowedOrigins,
		PageSize:       cfg.PageSize,
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Database path: %s", cfg.DBPath)
	log.Printf("Trusted player origin: %s", cfg.PlayerOrigin)
	if cfg.UpstreamURL != "" {
		log.Printf("Content API: %s (sync every %s)", cfg.UpstreamURL, cfg.SyncInterval)
	}

	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
