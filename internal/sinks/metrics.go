package sinks

import (
	"gratia-output/internal/shared/metrics"
)

const (
	outcomeSent   = "sent"
	outcomeFailed = "failed"
)

var (
	metricBundlesSentTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSink,
			Name:      "bundles_total",
		},
		[]string{metrics.FieldTransport, metrics.FieldOutcome},
	)

	metricRecordsSentTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSink,
			Name:      "records_sent_total",
		},
		[]string{metrics.FieldTransport},
	)

	metricRecordsDeduplicatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSink,
			Name:      "records_deduplicated_total",
		},
		[]string{},
	)
)
