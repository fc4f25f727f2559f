package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/you/identitysvc/internal/app"
	"github.com/you/identitysvc/internal/config"
)

func main() {
	// Local development convenience; production injects real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
