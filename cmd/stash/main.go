package main

import (
	"log"

	"github.com/MrSnakeDoc/stash/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ stash failed to start: %v", err)
	}
}
