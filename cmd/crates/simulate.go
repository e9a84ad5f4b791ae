package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/osse101/LootCrates_Go/internal/crate"
	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/selection"
)

const maxSimulations = 10_000_000

// SimulateCommand rolls a crate many times and compares observed and configured odds
type SimulateCommand struct {
	p printer
}

func (c *SimulateCommand) Name() string { return "simulate" }

func (c *SimulateCommand) Usage() string { return "simulate [-config f] [-dir d] <crate> <n> [seed]" }

func (c *SimulateCommand) Description() string {
	return "Roll a crate n times and print the reward distribution"
}

func (c *SimulateCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fs.SetOutput(c.p.out)
	mainPath := fs.String("config", envOr("CRATES_CONFIG", "config/config.yml"), "main crates file")
	dir := fs.String("dir", envOr("CRATES_DIR", "config/crates"), "crates directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) < 2 {
		return errors.New("usage: " + c.Usage())
	}
	n, err := strconv.Atoi(rest[1])
	if err != nil || n < 1 || n > maxSimulations {
		return fmt.Errorf("n must be between 1 and %d", maxSimulations)
	}
	var seed uint64
	if len(rest) > 2 {
		if seed, err = strconv.ParseUint(rest[2], 10, 64); err != nil {
			return fmt.Errorf("invalid seed %q: %w", rest[2], err)
		}
	}

	parser, err := crate.NewParser()
	if err != nil {
		return err
	}
	registry := crate.NewRegistry(parser, *mainPath, *dir)
	if _, err := registry.Reload(ctx); err != nil {
		return err
	}
	cr, ok := registry.Get(rest[0])
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrCrateNotFound, rest[0])
	}

	counts, err := selection.Simulate(cr, selection.NewRNG(seed), n)
	if err != nil {
		return err
	}
	c.p.Header(fmt.Sprintf("%s x %d", cr.ID, n))
	return writeDistribution(c.p.out, cr, counts, n)
}

// writeDistribution prints one row per reward in configured order plus the mean currency payout
func writeDistribution(w io.Writer, cr *domain.Crate, counts map[string]int, n int) error {
	total := cr.TotalWeight()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REWARD\tTIER\tWEIGHT\tEXPECTED\tHITS\tOBSERVED")

	var payout float64
	for i := range cr.Rewards {
		rw := &cr.Rewards[i]
		hits := counts[rw.ID]
		payout += float64(hits) * rw.CurrencyPaid()
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f%%\t%d\t%.2f%%\n",
			rw.ID, rw.Tier, rw.Weight,
			percent(rw.Weight, total), hits, percent(hits, n))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nmean currency payout: %.2f\n", payout/float64(n))
	return err
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
