package drainers

import (
	"gratia-output/internal/shared/metrics"
)

const (
	outcomeConverted     = "converted"
	outcomeContended     = "contended"
	outcomeReadFailed    = "read_failed"
	outcomeConvertFailed = "convert_failed"
)

var (
	metricEntriesDrainedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDrain,
			Name:      "entries_total",
		},
		[]string{metrics.FieldOutcome},
	)

	metricSkippedLinesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDrain,
			Name:      "skipped_lines_total",
		},
		[]string{},
	)

	metricEntriesRemovedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDrain,
			Name:      "entries_removed_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
