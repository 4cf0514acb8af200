package main

import (
	"log"

	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal"
)

func main() {
	app, err := internal.NewApp()
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize application: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("FATAL: Application run failed: %v", err)
	}
}
