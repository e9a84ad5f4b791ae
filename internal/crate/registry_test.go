package crate

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, mainPath, dir string) *Registry {
	t.Helper()
	return NewRegistry(newTestParser(t), mainPath, dir)
}

func TestRegistry_EmptyUntilLoaded(t *testing.T) {
	r := newTestRegistry(t, "", "")
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.List())
	_, ok := r.Get("vote")
	assert.False(t, ok)
}

func TestRegistry_ReloadFromDirectory_LaterSourceWins(t *testing.T) {
	r := newTestRegistry(t, "", "testdata")

	report, err := r.Reload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("testdata", "config.yml"),
		filepath.Join("testdata", "extra.json"),
		filepath.Join("testdata", "override.yaml"),
	}, report.Sources)
	assert.Equal(t, 3, report.Loaded)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "BROKEN", report.Errors[0].CrateID)

	assert.Equal(t, []string{"LEGENDARY", "STARTER", "VOTE"}, r.List())

	vote, ok := r.Get("vote")
	require.True(t, ok)
	assert.Equal(t, "Vote (event)", vote.Display)
	assert.Equal(t, filepath.Join("testdata", "override.yaml"), vote.Source)
	require.Len(t, vote.Rewards, 1)
	assert.Equal(t, "double_coins", vote.Rewards[0].ID)
}

func TestRegistry_GetIsCaseInsensitive(t *testing.T) {
	r := newTestRegistry(t, "testdata/config.yml", "")
	_, err := r.Reload(context.Background())
	require.NoError(t, err)

	for _, id := range []string{"vote", "VOTE", " Vote "} {
		c, ok := r.Get(id)
		require.True(t, ok, id)
		assert.Equal(t, "VOTE", c.ID)
	}
}

func TestRegistry_ReloadIsIdempotentAndKeepsOldReferences(t *testing.T) {
	r := newTestRegistry(t, "testdata/config.yml", "")
	_, err := r.Reload(context.Background())
	require.NoError(t, err)

	held, ok := r.Get("vote")
	require.True(t, ok)
	heldRewards := len(held.Rewards)

	second, err := r.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second.Loaded)

	again, ok := r.Get("vote")
	require.True(t, ok)
	assert.NotSame(t, held, again, "reload publishes fresh crates")
	assert.Equal(t, held.Display, again.Display)
	assert.Equal(t, held.Rewards, again.Rewards)
	assert.Len(t, held.Rewards, heldRewards, "held crate is untouched by reload")
}

func TestRegistry_ReloadWithUnreadableMainKeepsPublishedSet(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(main, []byte("crates:\n  a:\n    rewards: []\n"), 0o600))

	r := newTestRegistry(t, main, "")
	_, err := r.Reload(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, r.List())

	require.NoError(t, os.Remove(main))
	_, err = r.Reload(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"A"}, r.List())
}

func TestRegistry_LoadReplacesRemovedCrates(t *testing.T) {
	r := newTestRegistry(t, "", "")
	r.Load(context.Background(), BytesSource("one", []byte("crates:\n  a: {}\n  b: {}\n")))
	assert.Equal(t, []string{"A", "B"}, r.List())

	r.Load(context.Background(), BytesSource("two", []byte("crates:\n  b: {}\n")))
	assert.Equal(t, []string{"B"}, r.List())
	_, ok := r.Get("a")
	assert.False(t, ok)
}

func TestRegistry_ConcurrentReadsDuringReload(t *testing.T) {
	r := newTestRegistry(t, "testdata/config.yml", "")
	_, err := r.Reload(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c, ok := r.Get("legendary")
				if assert.True(t, ok) {
					assert.Len(t, c.Rewards, 2)
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		_, err := r.Reload(context.Background())
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestDirSources_MissingDirectory(t *testing.T) {
	sources, err := DirSources(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, sources)
}
