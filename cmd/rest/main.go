package main

import (
	"context"
	"log"

	"study-assistant-be/internal/bootstrap"
	"study-assistant-be/internal/config"
	"study-assistant-be/internal/server"
	"study-assistant-be/internal/tracer"
	"study-assistant-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Title generation runs off the request path.
	if err := container.TitleWorker.Consume(context.Background()); err != nil {
		log.Printf("Background title worker error: %v", err)
	}

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
