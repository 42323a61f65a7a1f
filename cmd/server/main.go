package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tabular/internal/auth"
	"tabular/internal/config"
	"tabular/internal/engine"
	"tabular/internal/logging"
	"tabular/internal/pipeline"
	"tabular/internal/telemetry"
	"tabular/internal/transform"
	"tabular/internal/transport"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.InitFromEnv()

	cfg, err := config.Load(os.Getenv("TABULAR_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	reg := pipeline.NewRegistry()
	transform.RegisterBuiltins(reg)

	deps := transport.Deps{
		Registry: reg,
		Caps:     engine.NewCaps(!cfg.Engine.InMemoryOnly, cfg.Engine.ChunkRows, cfg.Engine.Workers),
		Users:    auth.NewStore(),
		Tokens:   auth.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL),
	}

	srv, err := transport.StartServer(cfg.Server, deps)
	if err != nil {
		log.Fatalf("transport: %v", err)
	}

	if cfg.Telemetry.Enabled {
		telemetry.Expose(cfg.Telemetry.Port)
	}

	go func() {
		<-ctx.Done()
		srv.Stop()
	}()

	logging.L().Info("listening", "addr", srv.Addr(), "version", transport.Version)
	if err := srv.Serve(); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
