package main

import (
	"log"

	"github.com/MrSnakeDoc/cocktails/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ cocktails failed to start: %v", err)
	}
}
