package metrics

import (
	"context"

	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/logger"
)

// OpenCollector records crate metrics from finished open attempts.
// It is registered as a post-open hook on the orchestrator.
type OpenCollector struct{}

// NewOpenCollector creates a new open metrics collector
func NewOpenCollector() *OpenCollector {
	return &OpenCollector{}
}

// AfterOpen implements the orchestrator's post hook
func (c *OpenCollector) AfterOpen(ctx context.Context, req domain.OpenRequest, crate *domain.Crate, result *domain.OpenResult) {
	crateID := domain.NormalizeCrateID(req.CrateID)

	if !result.Succeeded() {
		CrateOpens.WithLabelValues(crateID, OutcomeRejected).Inc()
		CrateRejections.WithLabelValues(crateID, string(result.Reason)).Inc()
		return
	}

	outcome := OutcomeComplete
	if req.Force {
		outcome = OutcomeForced
	}
	CrateOpens.WithLabelValues(crateID, outcome).Inc()

	if result.PityApplied {
		PityTriggers.WithLabelValues(crateID).Inc()
	}
	if result.Reward != nil && result.Reward.IsRare() {
		RareFinds.WithLabelValues(crateID).Inc()
	}

	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "crate", crateID, "outcome", outcome)
}
