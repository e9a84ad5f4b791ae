package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/LootCrates_Go/internal/cooldown"
	"github.com/osse101/LootCrates_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"not found", domain.Reject(domain.RejectNotFound, "NOPE"), http.StatusNotFound, ErrMsgCrateNotFoundError},
		{"no key", domain.Reject(domain.RejectNoKey, ""), http.StatusConflict, ErrMsgNoKeyError},
		{"cooldown rejection", domain.Reject(domain.RejectOnCooldown, "5s"), http.StatusTooManyRequests, ErrMsgOnCooldownError},
		{"cooldown error type", cooldown.ErrOnCooldown{CrateID: "VOTE"}, http.StatusTooManyRequests, ErrMsgOnCooldownError},
		{"daily limit", domain.Reject(domain.RejectDailyLimitReached, "3"), http.StatusTooManyRequests, ErrMsgDailyLimitError},
		{"permission", domain.Reject(domain.RejectNoPermission, "x"), http.StatusForbidden, ErrMsgNoPermissionError},
		{"maintenance", domain.Reject(domain.RejectMaintenance, ""), http.StatusServiceUnavailable, ErrMsgMaintenanceError},
		{"unavailable", domain.Reject(domain.RejectUnavailable, ""), http.StatusConflict, ErrMsgCrateUnavailableError},
		{"vetoed", domain.Reject(domain.RejectVetoed, "event closed"), http.StatusForbidden, ErrMsgVetoedError},
		{"invalid input", fmt.Errorf("%w: actor id is required", domain.ErrInvalidInput), http.StatusBadRequest, ErrMsgInvalidInputError},
		{"storage detail hidden", &domain.StorageError{Op: "upsert", Err: errors.New("pq: relation missing")}, http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
