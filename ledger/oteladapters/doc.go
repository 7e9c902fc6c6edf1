// Package oteladapters implements the observability hooks of package ledger with OpenTelemetry.
//
// SlogBridgeLogger correlates log records with the active trace through the otelslog bridge,
// MetricsCollector maps durations, counters and values to histograms, counters and gauges,
// and TracingCollector turns store and handler operations into spans.
package oteladapters
