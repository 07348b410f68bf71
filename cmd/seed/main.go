package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/hocus-focus/config"
	"github.com/oksasatya/hocus-focus/internal/bootstrap"
	"github.com/oksasatya/hocus-focus/internal/infrastructure/store"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
)

func main() {
	reset := flag.Bool("reset", false, "clear every collection and reload the demo data")
	wipe := flag.Bool("clear", false, "clear every collection and leave it empty")
	flag.Parse()
	if *reset && *wipe {
		log.Fatal("-reset and -clear are mutually exclusive")
	}

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("STORAGE_DRIVER=memory: seeded data disappears when this command exits")
	}

	ctx := context.Background()
	infra, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open infrastructure: %v", err)
	}
	defer infra.Close()

	st := store.New(infra.Backend, logger)
	if err := st.InitAll(ctx); err != nil {
		log.Fatalf("failed to initialize collections: %v", err)
	}

	switch {
	case *wipe:
		err = st.ClearAll(ctx)
	case *reset:
		err = st.ResetAll(ctx)
	default:
		err = st.SeedAll(ctx)
	}
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		log.Fatalf("failed to read stats: %v", err)
	}
	fmt.Printf("users=%d activities=%d participants=%d\n", stats.Users, stats.Activities, stats.Participants)
}
