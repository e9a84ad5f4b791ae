package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCrates = `crates:
  vote:
    display: "&aVote Crate"
    open_method: GUI
    key:
      display: "&aVote Key"
    rewards:
      - id: coins
        type: MONEY
        amount: 100
        weight: 3
      - id: gem
        type: ITEM
        tier: rare
        weight: 1
        item:
          material: DIAMOND
`

const brokenCrates = `crates:
  broken:
    display: "Broken"
    open_method: SIDEWAYS
    rewards: []
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yml", validCrates)
	bad := writeFile(t, dir, "bad.yml", brokenCrates)

	t.Run("valid file", func(t *testing.T) {
		var out bytes.Buffer
		err := (&ValidateCommand{p: printer{out: &out}}).Run(context.Background(), []string{good})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "VOTE")
		assert.Contains(t, out.String(), "2 rewards, total weight 4")
		assert.Contains(t, out.String(), "0 problems")
	})

	t.Run("reports malformed definitions", func(t *testing.T) {
		var out bytes.Buffer
		err := (&ValidateCommand{p: printer{out: &out}}).Run(context.Background(), []string{good, bad})

		assert.ErrorIs(t, err, errFailed)
		assert.Contains(t, out.String(), "crate=BROKEN")
		assert.Contains(t, out.String(), "VOTE")
	})

	t.Run("missing file", func(t *testing.T) {
		var out bytes.Buffer
		err := (&ValidateCommand{p: printer{out: &out}}).Run(context.Background(), []string{filepath.Join(dir, "nope.yml")})

		assert.ErrorIs(t, err, errFailed)
		assert.Contains(t, out.String(), "1 problems")
	})

	t.Run("no arguments", func(t *testing.T) {
		err := (&ValidateCommand{p: printer{out: &bytes.Buffer{}}}).Run(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestSimulateCommand(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "config.yml", validCrates)

	t.Run("seeded run is reproducible", func(t *testing.T) {
		args := []string{"-config", main, "-dir", "", "vote", "4000", "7"}
		var first, second bytes.Buffer
		require.NoError(t, (&SimulateCommand{p: printer{out: &first}}).Run(context.Background(), args))
		require.NoError(t, (&SimulateCommand{p: printer{out: &second}}).Run(context.Background(), args))

		assert.Equal(t, first.String(), second.String())
		assert.Contains(t, first.String(), "75.00%")
		assert.Contains(t, first.String(), "25.00%")
		assert.Contains(t, first.String(), "mean currency payout")
	})

	t.Run("unknown crate", func(t *testing.T) {
		err := (&SimulateCommand{p: printer{out: &bytes.Buffer{}}}).Run(context.Background(),
			[]string{"-config", main, "-dir", "", "nope", "10"})
		assert.ErrorContains(t, err, "crate not found")
	})

	t.Run("bad count", func(t *testing.T) {
		err := (&SimulateCommand{p: printer{out: &bytes.Buffer{}}}).Run(context.Background(),
			[]string{"-config", main, "vote", "0"})
		assert.Error(t, err)
	})
}

func TestRun_UnknownCommand(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"explode"}, &out, false)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "unknown command")
	assert.Contains(t, out.String(), "validate <file|dir>...")
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, run([]string{"--help"}, &out, false))

	help := out.String()
	for _, name := range []string{"migrate", "simulate", "validate"} {
		assert.Contains(t, help, name)
	}
	assert.Less(t, strings.Index(help, "migrate"), strings.Index(help, "validate"), "commands are listed alphabetically")

	out.Reset()
	assert.Equal(t, 1, run(nil, &out, false), "no command is a usage error")
	assert.Contains(t, out.String(), "Usage: crates")
}
