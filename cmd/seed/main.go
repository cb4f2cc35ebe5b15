// Package main seeds the database with reference data: cuisines, cooks with
// their cuisine qualifications, the pantry of ingredients and tools, and
// recipes built from it. The same seed always produces the same catalogue.
//
// Usage:
//
//	go run ./cmd/seed -db competition.db
//	go run ./cmd/seed -db competition.db -seed 7 -cuisines 24 -cooks 80
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/config"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/logger"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/schedule"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/search"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store/sqlite"
)

func main() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	sizes := sizes{}
	fs.IntVar(&sizes.Cuisines, "cuisines", 20, "Number of cuisines")
	fs.IntVar(&sizes.Cooks, "cooks", 60, "Number of cooks")
	fs.IntVar(&sizes.RecipesPerCuisine, "recipes", 4, "Recipes per cuisine")

	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	seed := cfg.Generation.Seed
	if seed == 0 {
		seed = 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, seed, sizes); err != nil {
		log.Error("Seeding failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, seed int64, sz sizes) error {
	if err := sz.validate(schedule.DefaultRules()); err != nil {
		return err
	}

	st, err := sqlite.Open(cfg.Database.Path, log.Logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	index, err := search.Open(search.Options{Path: cfg.Search.IndexPath, Logger: log.Logger})
	if err != nil {
		return fmt.Errorf("open search index: %w", err)
	}
	defer index.Close()

	catalog := service.NewCatalogService(st, index, log.Logger)

	p := newPlan(rand.New(rand.NewSource(seed)), sz)
	counts, err := p.apply(ctx, catalog)
	if err != nil {
		return err
	}

	log.Info("Catalogue seeded",
		"seed", seed,
		"cuisines", counts.cuisines,
		"ingredients", counts.ingredients,
		"tools", counts.tools,
		"cooks", counts.cooks,
		"recipes", counts.recipes,
	)
	return nil
}
