package main

import (
	"context"
	"log"

	"ai-speechcoach-be/internal/bootstrap"
	"ai-speechcoach-be/internal/config"
	"ai-speechcoach-be/internal/server"
	"ai-speechcoach-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	log.Fatal(srv.Run())
}
