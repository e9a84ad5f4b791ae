package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/osse101/LootCrates_Go/internal/crate"
)

// ValidateCommand parses crate files and reports every malformed definition
type ValidateCommand struct {
	p printer
}

func (c *ValidateCommand) Name() string { return "validate" }

func (c *ValidateCommand) Usage() string { return "validate <file|dir>..." }

func (c *ValidateCommand) Description() string {
	return "Parse crate definitions and report per-definition errors"
}

func (c *ValidateCommand) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("at least one file or directory is required")
	}

	parser, err := crate.NewParser()
	if err != nil {
		return err
	}

	var sources []crate.Source
	unreadable := 0
	for _, path := range args {
		more, err := readSources(ctx, path)
		if err != nil {
			c.p.Error("%v", err)
			unreadable++
			continue
		}
		sources = append(sources, more...)
	}

	registry := crate.NewRegistry(parser, "", "")
	report := registry.Load(ctx, sources...)

	c.p.Header("Crates")
	for _, cr := range registry.Crates() {
		c.p.Success("%s (%s): %d rewards, total weight %d", cr.ID, cr.Source, len(cr.Rewards), cr.TotalWeight())
	}

	if len(report.Errors) > 0 {
		c.p.Header("Problems")
		for _, cerr := range report.Errors {
			c.p.Error("%s", cerr.Error())
		}
	}

	fmt.Fprintf(c.p.out, "\n%d sources, %d crates, %d problems\n", len(report.Sources), report.Loaded, len(report.Errors)+unreadable)
	if len(report.Errors) > 0 || unreadable > 0 {
		return errFailed
	}
	return nil
}

func readSources(ctx context.Context, path string) ([]crate.Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return crate.DirSources(ctx, path)
	}
	src, err := crate.FileSource(path)
	if err != nil {
		return nil, err
	}
	return []crate.Source{src}, nil
}
