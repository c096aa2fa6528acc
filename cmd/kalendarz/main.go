package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/napierala85-collab/kalendarz-soboty/internal/app"
)

func main() {
	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ kalendarz failed to start: %v", err)
	}
}
