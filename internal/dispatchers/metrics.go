package dispatchers

import (
	"gratia-output/internal/shared/metrics"
)

var (
	metricBatchDispatchedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDispatch,
			Name:      "batches_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricRecordsSubmittedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDispatch,
			Name:      "records_submitted_total",
		},
		[]string{},
	)

	metricDispatchDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDispatch,
			Name:      "duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldErrorCode},
	)
)
