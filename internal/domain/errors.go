package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgCrateNotFound = "crate not found"
	ErrMsgActorNotFound = "actor not found"

	// Precondition errors
	ErrMsgNoKey              = "no matching key held"
	ErrMsgOnCooldown         = "crate on cooldown"
	ErrMsgNoPermission       = "missing permission"
	ErrMsgCrateUnavailable   = "crate is not available"
	ErrMsgDailyLimitReached  = "daily open limit reached"
	ErrMsgWrongOpenMethod    = "crate cannot be opened this way"
	ErrMsgMaintenance        = "crates are under maintenance"
	ErrMsgRejectedByHook     = "open attempt vetoed"
	ErrMsgNoRewardsAvailable = "no rewards configured"

	// Selection errors
	ErrMsgEmptyRewardPool = "reward pool is empty"

	// Configuration errors
	ErrMsgInvalidDefinition = "invalid crate definition"

	// Capability errors
	ErrMsgCapabilityUnavailable = "capability not available"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrCrateNotFound = errors.New(ErrMsgCrateNotFound)
	ErrActorNotFound = errors.New(ErrMsgActorNotFound)

	ErrNoKey             = errors.New(ErrMsgNoKey)
	ErrOnCooldown        = errors.New(ErrMsgOnCooldown)
	ErrNoPermission      = errors.New(ErrMsgNoPermission)
	ErrCrateUnavailable  = errors.New(ErrMsgCrateUnavailable)
	ErrDailyLimitReached = errors.New(ErrMsgDailyLimitReached)
	ErrWrongOpenMethod   = errors.New(ErrMsgWrongOpenMethod)
	ErrMaintenance       = errors.New(ErrMsgMaintenance)
	ErrRejectedByHook    = errors.New(ErrMsgRejectedByHook)

	ErrEmptyRewardPool = errors.New(ErrMsgEmptyRewardPool)

	ErrInvalidDefinition     = errors.New(ErrMsgInvalidDefinition)
	ErrCapabilityUnavailable = errors.New(ErrMsgCapabilityUnavailable)
	ErrDatabaseError         = errors.New(ErrMsgDatabaseError)
	ErrInvalidInput          = errors.New(ErrMsgInvalidInput)
)

// ConfigurationError describes one malformed crate or reward definition.
// The registry logs and skips it; loading continues with the remaining definitions.
type ConfigurationError struct {
	Source      string
	CrateID     string
	RewardIndex int // -1 when the crate itself is malformed
	Err         error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrMsgInvalidDefinition)
	if e.Source != "" {
		fmt.Fprintf(&b, " in %s", e.Source)
	}
	if e.CrateID != "" {
		fmt.Fprintf(&b, " crate=%s", e.CrateID)
	}
	if e.RewardIndex >= 0 {
		fmt.Fprintf(&b, " reward=%d", e.RewardIndex)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrInvalidDefinition) match any configuration error
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

// RejectionError carries the reason an open attempt was abandoned before distribution
type RejectionError struct {
	Reason RejectReason
	Err    error
}

func (e *RejectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("open rejected: %s", e.Reason)
	}
	return fmt.Sprintf("open rejected: %s: %v", e.Reason, e.Err)
}

func (e *RejectionError) Unwrap() error { return e.Err }

// Reject builds a RejectionError whose wrapped sentinel matches the reason
func Reject(reason RejectReason, detail string) *RejectionError {
	err := reason.Sentinel()
	if detail != "" {
		err = fmt.Errorf("%w: %s", err, detail)
	}
	return &RejectionError{Reason: reason, Err: err}
}

// DistributionError aggregates sub-payout failures of a single reward.
// The attempt still completes; this is only logged and reported.
type DistributionError struct {
	RewardID string
	Failures []error
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("partial distribution of reward %s: %v", e.RewardID, errors.Join(e.Failures...))
}

func (e *DistributionError) Unwrap() []error { return e.Failures }

// PayoutError is one failed part of a reward payout.
// Part is safe to show to callers; Err carries the collaborator's detail for logs.
type PayoutError struct {
	Part string
	Err  error
}

func (e *PayoutError) Error() string { return e.Part + ": " + e.Err.Error() }

func (e *PayoutError) Unwrap() error { return e.Err }

// StorageError wraps a durable read or write failure
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrMsgDatabaseError, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDatabaseError) match any storage error
func (e *StorageError) Is(target error) bool {
	return target == ErrDatabaseError
}
