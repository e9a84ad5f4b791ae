package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/LootCrates_Go/internal/crate"
	"github.com/osse101/LootCrates_Go/internal/domain"
)

func TestHandleReload(t *testing.T) {
	t.Run("reports skipped definitions", func(t *testing.T) {
		catalog := newFakeCatalog()
		catalog.report = &crate.LoadReport{
			Sources: []string{"config.yml"},
			Loaded:  2,
			Errors: []*domain.ConfigurationError{
				{Source: "config.yml", CrateID: "BROKEN", RewardIndex: -1, Err: errors.New("no key")},
			},
		}
		h := NewAdminHandler(&MockCrateService{}, catalog, &MockFlusher{})

		w := httptest.NewRecorder()
		h.HandleReload(w, httptest.NewRequest(http.MethodPost, "/admin/reload", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"loaded":2`)
		assert.Contains(t, w.Body.String(), "crate=BROKEN")
	})

	t.Run("unreadable sources", func(t *testing.T) {
		catalog := newFakeCatalog()
		catalog.reloadErr = errors.New("open config.yml: permission denied")
		h := NewAdminHandler(&MockCrateService{}, catalog, &MockFlusher{})

		w := httptest.NewRecorder()
		h.HandleReload(w, httptest.NewRequest(http.MethodPost, "/admin/reload", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgReloadFailed)
		assert.NotContains(t, w.Body.String(), "permission denied")
	})
}

func TestHandleMaintenance(t *testing.T) {
	t.Run("enable", func(t *testing.T) {
		svc := &MockCrateService{}
		svc.On("SetMaintenance", mock.Anything, true).Return()
		svc.On("Maintenance").Return(true)
		h := NewAdminHandler(svc, newFakeCatalog(), &MockFlusher{})

		w := httptest.NewRecorder()
		h.HandleMaintenance(w, httptest.NewRequest(http.MethodPost, "/admin/maintenance", strings.NewReader(`{"enabled":true}`)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgMaintenanceEnabled)
		svc.AssertExpectations(t)
	})

	t.Run("flag required", func(t *testing.T) {
		h := NewAdminHandler(&MockCrateService{}, newFakeCatalog(), &MockFlusher{})

		w := httptest.NewRecorder()
		h.HandleMaintenance(w, httptest.NewRequest(http.MethodPost, "/admin/maintenance", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"enabled"`)
	})
}

func TestHandleFlush(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		flusher := &MockFlusher{}
		flusher.On("FlushAll", mock.Anything).Return(nil)
		h := NewAdminHandler(&MockCrateService{}, newFakeCatalog(), flusher)

		w := httptest.NewRecorder()
		h.HandleFlush(w, httptest.NewRequest(http.MethodPost, "/admin/flush", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		flusher.AssertExpectations(t)
	})

	t.Run("storage failure", func(t *testing.T) {
		flusher := &MockFlusher{}
		flusher.On("FlushAll", mock.Anything).Return(&domain.StorageError{Op: "upsert", Err: errors.New("disk full")})
		h := NewAdminHandler(&MockCrateService{}, newFakeCatalog(), flusher)

		w := httptest.NewRecorder()
		h.HandleFlush(w, httptest.NewRequest(http.MethodPost, "/admin/flush", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk full")
	})
}
