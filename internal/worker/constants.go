package worker

import "time"

// DefaultJobTimeout bounds a single background job
const DefaultJobTimeout = 10 * time.Second

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for worker pool operations
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgWorkerQueueFull   = "Worker queue full, dropping job"
)

// Log field keys
const (
	LogFieldError = "error"
	LogFieldTable = "table"
	LogFieldPanic = "panic"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
