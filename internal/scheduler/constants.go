package scheduler

// Log messages
const (
	LogMsgJobScheduled     = "Scheduled periodic job"
	LogMsgScheduleDisabled = "Periodic job disabled (non-positive interval)"
	LogMsgTickSkipped      = "Skipped periodic job tick, queue full"
)

// Log field keys
const (
	LogFieldJob      = "job"
	LogFieldInterval = "interval"
)
