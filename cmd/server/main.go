package main

import (
	"log"

	"sakima-api/internal/api"
	"sakima-api/internal/config"
	"sakima-api/internal/store"
	"sakima-api/internal/surge"
	"sakima-api/internal/token"
)

func main() {
	cfg := config.LoadConfig()

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open submission store: %v", err)
	}

	surgeClient := surge.NewClient(cfg)

	var signer *token.Signer
	if cfg.SigningKey != "" {
		signer, err = token.NewSigner(cfg.SigningKeyID, cfg.SigningKey)
		if err != nil {
			log.Fatalf("Failed to load signing key: %v", err)
		}
	} else {
		log.Println("Warning: no signing key configured; /admin/token disabled")
	}

	r := api.NewRouter(cfg, st, surgeClient, signer)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
