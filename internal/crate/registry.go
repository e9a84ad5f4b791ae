package crate

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/logger"
	"github.com/osse101/LootCrates_Go/internal/metrics"
)

// LoadReport summarises one registry load
type LoadReport struct {
	Sources []string
	Loaded  int
	Errors  []*domain.ConfigurationError
}

// Registry is the published set of crates keyed by case-folded id.
// Readers never block: a load builds a fresh map and swaps it in whole,
// so a crate obtained before a reload stays valid for the attempt holding it.
type Registry struct {
	parser *Parser
	crates atomic.Pointer[map[string]*domain.Crate]

	// serialises loads; readers never take it
	loadMu sync.Mutex

	mainPath string
	dir      string
}

// NewRegistry returns an empty registry. mainPath and dir are what Reload reads; either may be blank.
func NewRegistry(parser *Parser, mainPath, dir string) *Registry {
	r := &Registry{parser: parser, mainPath: mainPath, dir: dir}
	empty := make(map[string]*domain.Crate)
	r.crates.Store(&empty)
	return r
}

// Load parses the sources in order and publishes the result. A later definition of an id replaces an earlier one.
func (r *Registry) Load(ctx context.Context, sources ...Source) *LoadReport {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	log := logger.FromContext(ctx)
	next := make(map[string]*domain.Crate)
	report := &LoadReport{}

	for _, src := range sources {
		report.Sources = append(report.Sources, src.Name)
		res := r.parser.Parse(ctx, src)
		report.Errors = append(report.Errors, res.Errors...)
		for _, c := range res.Crates {
			if prev, ok := next[c.ID]; ok {
				log.Info(LogMsgDuplicateCrate, LogFieldCrateID, c.ID, LogFieldSource, c.Source, LogFieldPrevSource, prev.Source)
			}
			next[c.ID] = c
			log.Debug(LogMsgCrateLoaded, LogFieldCrateID, c.ID, LogFieldSource, c.Source, LogFieldCount, len(c.Rewards))
		}
	}
	report.Loaded = len(next)

	r.crates.Store(&next)

	metrics.RegistryCrates.Set(float64(report.Loaded))
	metrics.RegistryReloads.Inc()
	metrics.ConfigurationErrors.Add(float64(len(report.Errors)))
	log.Info(LogMsgRegistryReloaded,
		LogFieldCount, report.Loaded, LogFieldErrors, len(report.Errors), LogFieldSources, len(report.Sources))
	return report
}

// Reload re-reads the configured paths. If the sources cannot be read the published set is left untouched.
func (r *Registry) Reload(ctx context.Context) (*LoadReport, error) {
	sources, err := CollectSources(ctx, r.mainPath, r.dir)
	if err != nil {
		return nil, err
	}
	return r.Load(ctx, sources...), nil
}

// Get looks a crate up case-insensitively
func (r *Registry) Get(id string) (*domain.Crate, bool) {
	c, ok := (*r.crates.Load())[domain.NormalizeCrateID(id)]
	return c, ok
}

// List returns the published crate ids, sorted
func (r *Registry) List() []string {
	return sortedIDs(*r.crates.Load())
}

// Crates returns the published crates sorted by id
func (r *Registry) Crates() []*domain.Crate {
	m := *r.crates.Load()
	out := make([]*domain.Crate, 0, len(m))
	for _, id := range sortedIDs(m) {
		out = append(out, m[id])
	}
	return out
}

func sortedIDs(m map[string]*domain.Crate) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len is the number of published crates
func (r *Registry) Len() int {
	return len(*r.crates.Load())
}
