package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootCrates_Go/internal/crate"
	"github.com/osse101/LootCrates_Go/internal/domain"
)

// MockCrateService mocks CrateService
type MockCrateService struct {
	mock.Mock
}

func (m *MockCrateService) Open(ctx context.Context, req domain.OpenRequest) (*domain.OpenResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpenResult), args.Error(1)
}

func (m *MockCrateService) ForceOpen(ctx context.Context, actorID, username, crateID string) (*domain.OpenResult, error) {
	args := m.Called(ctx, actorID, username, crateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpenResult), args.Error(1)
}

func (m *MockCrateService) GiveKeys(ctx context.Context, actorID, crateID string, amount int) error {
	return m.Called(ctx, actorID, crateID, amount).Error(0)
}

func (m *MockCrateService) KeyCount(ctx context.Context, actorID, crateID string) (int, error) {
	args := m.Called(ctx, actorID, crateID)
	return args.Int(0), args.Error(1)
}

func (m *MockCrateService) ActorStats(ctx context.Context, actorID string) domain.ActorStatsReport {
	return m.Called(ctx, actorID).Get(0).(domain.ActorStatsReport)
}

func (m *MockCrateService) PityCount(actorID, crateID string) int {
	return m.Called(actorID, crateID).Int(0)
}

func (m *MockCrateService) CooldownRemaining(ctx context.Context, actorID, crateID string) time.Duration {
	return m.Called(ctx, actorID, crateID).Get(0).(time.Duration)
}

func (m *MockCrateService) DailyOpens(actorID, crateID string) int {
	return m.Called(actorID, crateID).Int(0)
}

func (m *MockCrateService) SetMaintenance(ctx context.Context, enabled bool) {
	m.Called(ctx, enabled)
}

func (m *MockCrateService) Maintenance() bool {
	return m.Called().Bool(0)
}

// MockFlusher mocks Flusher
type MockFlusher struct {
	mock.Mock
}

func (m *MockFlusher) FlushAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockPinger mocks Pinger
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// fakeCatalog is a fixed set of crates
type fakeCatalog struct {
	crates    map[string]*domain.Crate
	report    *crate.LoadReport
	reloadErr error
}

func newFakeCatalog(crates ...*domain.Crate) *fakeCatalog {
	c := &fakeCatalog{crates: make(map[string]*domain.Crate)}
	for _, cr := range crates {
		c.crates[cr.ID] = cr
	}
	return c
}

func (f *fakeCatalog) Get(id string) (*domain.Crate, bool) {
	c, ok := f.crates[domain.NormalizeCrateID(id)]
	return c, ok
}

func (f *fakeCatalog) Crates() []*domain.Crate {
	out := make([]*domain.Crate, 0, len(f.crates))
	for _, c := range f.crates {
		out = append(out, c)
	}
	return out
}

func (f *fakeCatalog) Reload(context.Context) (*crate.LoadReport, error) {
	return f.report, f.reloadErr
}

func voteCrate() *domain.Crate {
	return &domain.Crate{
		ID:              "VOTE",
		Display:         "&aVote Crate",
		Tier:            "common",
		OpenMethod:      domain.OpenMethodMenu,
		Enabled:         true,
		CooldownSeconds: 60,
		DailyLimit:      3,
		Pity:            domain.PityConfig{Enabled: true, Threshold: 5},
		Rewards: []domain.Reward{
			{ID: "coins", Type: domain.RewardCurrency, Tier: "common", Weight: 3, CurrencyAmount: 100},
			{ID: "gem", Type: domain.RewardItem, Tier: "rare", Weight: 1},
		},
	}
}

// serve routes req through a chi router so URL parameters resolve
func serve(pattern, method string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}
