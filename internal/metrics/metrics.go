package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Crate Metrics
var (
	CrateOpens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCrateOpens,
			Help: HelpTextCrateOpens,
		},
		[]string{LabelCrate, LabelOutcome},
	)

	CrateRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCrateRejections,
			Help: HelpTextCrateRejections,
		},
		[]string{LabelCrate, LabelReason},
	)

	PityTriggers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePityTriggers,
			Help: HelpTextPityTriggers,
		},
		[]string{LabelCrate},
	)

	RareFinds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRareFinds,
			Help: HelpTextRareFinds,
		},
		[]string{LabelCrate},
	)

	DistributionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDistributionFailures,
			Help: HelpTextDistributionFailures,
		},
		[]string{LabelRewardType},
	)

	OpenDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameOpenDuration,
			Help:    HelpTextOpenDuration,
			Buckets: OpenLatencyBuckets,
		},
		[]string{LabelOutcome},
	)

	RegistryCrates = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameRegistryCrates,
			Help: HelpTextRegistryCrates,
		},
	)

	RegistryReloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRegistryReloads,
			Help: HelpTextRegistryReloads,
		},
	)

	ConfigurationErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameConfigurationErrors,
			Help: HelpTextConfigurationErrors,
		},
	)

	CooldownEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCooldownEntries,
			Help: HelpTextCooldownEntries,
		},
	)

	CachedActors = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCachedActors,
			Help: HelpTextCachedActors,
		},
	)
)

// Storage Metrics
var (
	DurableWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDurableWriteFailures,
			Help: HelpTextDurableWriteFailures,
		},
		[]string{LabelTable},
	)

	WriteQueueDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWriteQueueDropped,
			Help: HelpTextWriteQueueDropped,
		},
		[]string{LabelTable},
	)

	WriteQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameWriteQueueDepth,
			Help: HelpTextWriteQueueDepth,
		},
	)
)
