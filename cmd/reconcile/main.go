// Command reconcile runs a single member-count reconciliation pass and exits.
package main

import (
	"context"
	"log"

	"nabta/internal/config"
	"nabta/internal/database"
	"nabta/internal/reconcile"
	"nabta/internal/repository"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	r := reconcile.NewReconciler(repository.NewCircleRepository(db))
	stats, err := r.ReconcileAll(context.Background())
	if err != nil {
		log.Fatalf("reconciliation failed: %v", err)
	}

	log.Printf("reconciled %d circles, corrected %d, took %s",
		stats.Scanned, stats.Corrected, stats.Duration)
}
