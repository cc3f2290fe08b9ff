// Backfill tool: replays form submissions from the local sqlite store into
// Turso. Intended for manual runs after operating without TURSO_URL set.
package main

import (
	"log"

	"sakima-api/internal/config"
	"sakima-api/internal/models"
	"sakima-api/internal/store"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.TursoURL == "" {
		log.Fatal("TURSO_URL must be set for sync_submissions")
	}

	local, err := store.NewGormStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}

	remote, err := store.NewTursoStore(cfg.TursoURL, cfg.TursoToken)
	if err != nil {
		log.Fatalf("Failed to open Turso store: %v", err)
	}

	var subs []models.FormSubmission
	if err := local.DB.Order("id").Find(&subs).Error; err != nil {
		log.Fatalf("Failed to read local submissions: %v", err)
	}

	synced := 0
	for i := range subs {
		if err := remote.Replay(&subs[i]); err != nil {
			log.Printf("Error syncing submission %d: %v", subs[i].ID, err)
			continue
		}
		synced++
	}

	log.Printf("Synced %d/%d submissions to Turso", synced, len(subs))
}
