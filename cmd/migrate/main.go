package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/PabloPavan/sniply_projects/internal"
	"github.com/PabloPavan/sniply_projects/internal/db"
	"github.com/PabloPavan/sniply_projects/migrations"
)

func main() {
	databaseURL := internal.MustEnv("DATABASE_URL")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := db.New(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer d.Close()

	applied, err := db.Migrate(ctx, d.Pool, migrations.FS)
	for _, name := range applied {
		log.Printf("applied %s", name)
	}
	if err != nil {
		log.Fatalf("migrate error: %v", err)
	}
	log.Printf("migrations complete: %d applied", len(applied))
}
