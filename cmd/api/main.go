package main

import (
	"context"
	"log"

	"carpool-service/cmd/api/app"
	"carpool-service/cmd/api/server"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("failed to create application: %v", err)
	}

	ctx, cancel := server.WithSignal(context.Background())
	defer cancel()

	if err := a.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
