package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	HandleHealthz().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	t.Run("storage reachable", func(t *testing.T) {
		store := &MockPinger{}
		store.On("Ping", mock.Anything).Return(nil)
		svc := &MockCrateService{}
		svc.On("Maintenance").Return(true)

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		w := httptest.NewRecorder()
		HandleReadyz(store, newFakeCatalog(voteCrate()), svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","crates":1,"maintenance":true}`, w.Body.String())
		store.AssertExpectations(t)
	})

	t.Run("storage down", func(t *testing.T) {
		store := &MockPinger{}
		store.On("Ping", mock.Anything).Return(assert.AnError)

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		w := httptest.NewRecorder()
		HandleReadyz(store, newFakeCatalog(), &MockCrateService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), StatusUnavailable)
		assert.Contains(t, w.Body.String(), ErrMsgDatabaseUnavailable)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})
}
