package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Crate metric names
const (
	MetricNameCrateOpens           = "crate_opens_total"
	MetricNameCrateRejections      = "crate_rejections_total"
	MetricNamePityTriggers         = "crate_pity_triggers_total"
	MetricNameRareFinds            = "crate_rare_finds_total"
	MetricNameDistributionFailures = "crate_distribution_failures_total"
	MetricNameRegistryCrates       = "crate_registry_crates"
	MetricNameRegistryReloads      = "crate_registry_reloads_total"
	MetricNameConfigurationErrors  = "crate_configuration_errors_total"
	MetricNameOpenDuration         = "crate_open_duration_seconds"
	MetricNameCooldownEntries      = "crate_cooldown_entries"
	MetricNameCachedActors         = "crate_cached_actors"
)

// Storage metric names
const (
	MetricNameDurableWriteFailures = "durable_write_failures_total"
	MetricNameWriteQueueDropped    = "write_queue_dropped_total"
	MetricNameWriteQueueDepth      = "write_queue_depth"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Crate metric help text
const (
	HelpTextCrateOpens           = "Total number of completed crate opens"
	HelpTextCrateRejections      = "Total number of rejected open attempts"
	HelpTextPityTriggers         = "Total number of opens resolved through pity protection"
	HelpTextRareFinds            = "Total number of rare or special rewards handed out"
	HelpTextDistributionFailures = "Total number of failed sub-payouts"
	HelpTextRegistryCrates       = "Number of crates currently published in the registry"
	HelpTextRegistryReloads      = "Total number of registry loads"
	HelpTextConfigurationErrors  = "Total number of crate or reward definitions skipped at load"
	HelpTextOpenDuration         = "Open attempt latency in seconds"
	HelpTextCooldownEntries      = "Number of cooldown entries held in memory"
	HelpTextCachedActors         = "Number of actor records held in memory"
)

// Storage metric help text
const (
	HelpTextDurableWriteFailures = "Total number of failed background writes"
	HelpTextWriteQueueDropped    = "Total number of background writes dropped because the queue was full"
	HelpTextWriteQueueDepth      = "Current number of queued background writes"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelCrate      = "crate"
	LabelReason     = "reason"
	LabelRewardType = "reward_type"
	LabelTable      = "table"
	LabelOutcome    = "outcome"
)

// Outcome label values
const (
	OutcomeComplete = "complete"
	OutcomeRejected = "rejected"
	OutcomeForced   = "forced"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// OpenLatencyBuckets covers in-memory opens (sub-millisecond) up to a cold actor load
var OpenLatencyBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgMetricsRecorded = "Metrics recorded for open attempt"
)
