package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every game metric
const Namespace = "mathcatch"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNameSpawnsTotal          = "spawns_total"
	MetricNameSpawnsExpired        = "spawns_expired_total"
	MetricNameCatchesTotal         = "catches_total"
	MetricNameNearMissesTotal      = "near_misses_total"
	MetricNameCatchPersistFailures = "catch_persist_failures_total"
	MetricNameRuleChangesTotal     = "rule_changes_total"
	MetricNameActiveSpawns         = "active_spawns"
	MetricNameIntervalTimers       = "interval_timers"
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

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextSpawnsTotal          = "Items that became catchable, by trigger"
	HelpTextSpawnsExpired        = "Spawns removed uncaught after their expiry"
	HelpTextCatchesTotal         = "Successful catches, by item"
	HelpTextNearMissesTotal      = "Catch attempts that named the wrong item"
	HelpTextCatchPersistFailures = "Catches that could not be written to the inventory store"
	HelpTextRuleChangesTotal     = "Spawn rule changes, by action"
	HelpTextActiveSpawns         = "Channels that currently hold an active spawn"
	HelpTextIntervalTimers       = "Armed interval spawn timers"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelItem    = "item"
	LabelTrigger = "trigger"
	LabelAction  = "action"
)

// Rule change actions
const (
	ActionSet    = "set"
	ActionRemove = "remove"
)

// PathUnmatched labels requests that matched no route
const PathUnmatched = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEventDecodeFailed = "Failed to decode event payload for metrics"
)
