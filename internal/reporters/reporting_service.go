package reporters

import (
	"context"
	"time"

	"gratia-output/internal/dispatchers"
	"gratia-output/internal/drainers"
	"gratia-output/internal/models"
	"gratia-output/internal/shared/loggers"
	"gratia-output/internal/shared/metrics"
	"gratia-output/internal/shared/svcerrors"
)

// RunSummary describes one reporting run.
type RunSummary struct {
	Drained   int
	Contended int
	Failed    int
	Batches   int
	Reported  int
}

//go:generate mockgen -source=reporting_service.go -destination=./mocks/reporting_service_mock.go -package=mocks
type ReportingService interface {
	// Run drains the queue once and reports the drained records, one sink cycle per probe.
	Run(ctx context.Context) (*RunSummary, error)
}

type reportingService struct {
	drainer    drainers.QueueDrainer
	dispatcher dispatchers.BatchDispatcher
}

func NewReportingService(drainer drainers.QueueDrainer, dispatcher dispatchers.BatchDispatcher) ReportingService {
	return &reportingService{drainer: drainer, dispatcher: dispatcher}
}

func (s *reportingService) Run(ctx context.Context) (*RunSummary, error) {
	summary, err := s.run(ctx)

	code := metrics.ValueNoError
	if err != nil {
		code = svcerrors.NewInternalErrorUndefined(err).Code
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			code = svcErr.Code
		}
	} else {
		metricLastSuccessTimestamp.WithLabelValues().Set(float64(time.Now().Unix()))
	}
	metricRunsTotal.WithLabelValues(code).Inc()
	return summary, err
}

func (s *reportingService) run(ctx context.Context) (*RunSummary, error) {
	logger := loggers.Ctx(ctx)

	result, err := s.drainer.Drain(ctx)
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{
		Drained:   len(result.Entries),
		Contended: result.Contended,
		Failed:    result.Failed,
	}
	if len(result.Entries) == 0 {
		logger.Info().Msg("no records to report")
		s.tidy(ctx)
		return summary, nil
	}

	groups := models.PartitionByProbe(result.Entries)
	if len(groups) > 1 {
		logger.Info().Msgf("drained records span %d probes, reporting each separately", len(groups))
	}

	for i, group := range groups {
		groupCtx := logger.With().
			Str(loggers.FieldSite, group.Batch.Site).
			Str(loggers.FieldProbe, group.Batch.Probe).
			Logger().WithContext(ctx)

		if err := s.dispatcher.Dispatch(groupCtx, group.Batch); err != nil {
			s.release(groupCtx, groups[i:])
			return summary, err
		}
		summary.Batches++
		summary.Reported += len(group.Batch.Records)
		metricRecordsReportedTotal.WithLabelValues().Add(float64(len(group.Batch.Records)))

		if err := s.drainer.Complete(groupCtx, group.Entries); err != nil {
			s.release(groupCtx, groups[i:])
			return summary, err
		}
	}

	s.tidy(ctx)
	return summary, nil
}

// release hands the entries of unreported groups back to the queue. It runs even when ctx is
// cancelled.
func (s *reportingService) release(ctx context.Context, groups []*models.EntryGroup) {
	var entries []models.DrainedEntry
	for _, group := range groups {
		entries = append(entries, group.Entries...)
	}
	if err := s.drainer.Release(context.WithoutCancel(ctx), entries); err != nil {
		loggers.Ctx(ctx).Error().Err(err).Msg("failed to release queue entries")
	}
}

func (s *reportingService) tidy(ctx context.Context) {
	if err := s.drainer.Tidy(ctx); err != nil {
		loggers.Ctx(ctx).Warn().Err(err).Msg("failed to purge queue")
	}
}
