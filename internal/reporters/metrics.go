package reporters

import (
	"gratia-output/internal/shared/metrics"
)

var (
	metricRunsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRun,
			Name:      "total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricRecordsReportedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRun,
			Name:      "records_reported_total",
		},
		[]string{},
	)

	metricLastSuccessTimestamp = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRun,
			Name:      "last_success_timestamp_seconds",
		},
		[]string{},
	)
)
