package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	domainerrors "github.com/Yassin1-prog/cooking-competition-DBMS/internal/errors"
)

// yearRules is the part of the generation service the prompt checks
// answers against.
type yearRules interface {
	ValidateStartYear(ctx context.Context, start int) error
	ValidateEndYear(start, end int) error
}

// prompter asks for the year range on a line-oriented terminal.
type prompter struct {
	in    io.Reader
	out   io.Writer
	rules yearRules
}

// years completes the year range. Non-zero arguments were given on the
// command line and are checked as they are; zero ones are read from the
// terminal, asking again after every answer that is not an integer or breaks
// a year rule.
func (p *prompter) years(ctx context.Context, start, end int) (int, int, error) {
	scanner := bufio.NewScanner(p.in)

	checkStart := func(v int) error {
		if err := p.rules.ValidateStartYear(ctx, v); err != nil {
			return err
		}
		if end != 0 {
			return p.rules.ValidateEndYear(v, end)
		}
		return nil
	}
	checkEnd := func(v int) error {
		return p.rules.ValidateEndYear(start, v)
	}

	var err error
	if start != 0 {
		if err := p.rules.ValidateStartYear(ctx, start); err != nil {
			return 0, 0, fmt.Errorf("start year %d: %w", start, err)
		}
	} else if start, err = p.ask(scanner, "Start year: ", checkStart); err != nil {
		return 0, 0, err
	}

	if end != 0 {
		if err := checkEnd(end); err != nil {
			return 0, 0, fmt.Errorf("end year %d: %w", end, err)
		}
	} else if end, err = p.ask(scanner, "End year: ", checkEnd); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func (p *prompter) ask(scanner *bufio.Scanner, label string, check func(int) error) (int, error) {
	for {
		fmt.Fprint(p.out, label)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("read input: %w", err)
			}
			return 0, io.ErrUnexpectedEOF
		}

		v, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(p.out, "Please enter a whole number.")
			continue
		}

		if err := check(v); err != nil {
			var de *domainerrors.Error
			if !errors.As(err, &de) || de.Code != domainerrors.CodeValidation {
				return 0, err
			}
			fmt.Fprintln(p.out, describe(de))
			continue
		}
		return v, nil
	}
}

// describe renders a validation error with its field messages.
func describe(err *domainerrors.Error) string {
	details, ok := err.Details.(map[string]string)
	if !ok || len(details) == 0 {
		return err.Message
	}

	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", strings.ReplaceAll(f, "_", " "), details[f]))
	}
	return "Invalid: " + strings.Join(parts, "; ")
}

func printSummary(w io.Writer, run *domain.GenerationRun, elapsed time.Duration) {
	fmt.Fprintf(w, "Run %s (seed %d): %s\n", run.ID, run.Seed, run.Status)
	fmt.Fprintf(w, "  years:     %d-%d (legacy judges in %d)\n", run.StartYear, run.EndYear, run.LegacyYear)
	fmt.Fprintf(w, "  episodes:  %d", run.EpisodesGenerated)
	if run.EpisodesGenerated > 0 {
		fmt.Fprintf(w, " (ids %d-%d)", run.FirstEpisodeID, run.LastEpisodeID)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  dead ends: %d\n", run.DeadEnds)
	fmt.Fprintf(w, "  elapsed:   %s\n", elapsed.Round(time.Millisecond))
	if run.Error != "" {
		fmt.Fprintf(w, "  error:     %s\n", run.Error)
	}
}
