package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/osse101/LootCrates_Go/internal/logger"
)

// errFailed marks a run that already reported its problems
var errFailed = errors.New("command reported failures")

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// parser warnings go to stderr, reports to stdout
	logger.InitLoggerWithWriter(logger.QuietConfig("crates"), os.Stderr)

	os.Exit(run(os.Args[1:], os.Stdout, isTerminal(os.Stdout)))
}

func run(args []string, stdout io.Writer, color bool) int {
	p := printer{out: stdout, color: color}
	registry := NewRegistry(stdout,
		&ValidateCommand{p: p},
		&MigrateCommand{p: p},
		&SimulateCommand{p: p},
	)

	cmd, rest, ok := registry.Resolve(args)
	if !ok {
		if len(args) > 0 && isHelpArg(args[0]) {
			return 0
		}
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Run(ctx, rest); err != nil {
		if !errors.Is(err, errFailed) {
			slog.Error("Command failed", "command", cmd.Name(), "error", err)
		}
		return 1
	}
	return 0
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
