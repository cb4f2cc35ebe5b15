// Package main generates competition episodes for a range of years.
//
// Without -start and -end the tool prompts for both years until they are
// valid against the episodes already in the database.
//
// Usage:
//
//	go run ./cmd/generate -db competition.db
//	go run ./cmd/generate -db competition.db -start 2020 -end 2023 -seed 42
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/config"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/logger"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/metrics"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store/sqlite"
)

func main() {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	start := fs.Int("start", 0, "First year to generate (prompted when omitted)")
	end := fs.Int("end", 0, "Last year to generate (prompted when omitted)")

	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Writer:      os.Stderr,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, *start, *end); err != nil {
		log.Error("Generation failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, start, end int) error {
	st, err := sqlite.Open(cfg.Database.Path, log.Logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	m := metrics.New(prometheus.NewRegistry())
	gen := service.NewGenerationService(st, cfg.Generation, m, log.Logger)

	if start == 0 || end == 0 {
		p := &prompter{in: os.Stdin, out: os.Stdout, rules: gen}
		if start, end, err = p.years(ctx, start, end); err != nil {
			return err
		}
	}

	began := time.Now()
	runRecord, err := gen.Generate(ctx, service.GenerateRequest{StartYear: start, EndYear: end})
	if runRecord != nil {
		printSummary(os.Stdout, runRecord, time.Since(began))
	}
	return err
}
