package dispatchers

import (
	"context"
	"time"

	"gratia-output/internal/models"
	"gratia-output/internal/shared/loggers"
	"gratia-output/internal/shared/metrics"
	"gratia-output/internal/shared/svcerrors"
	"gratia-output/internal/sinks"
)

//go:generate mockgen -source=batch_dispatcher.go -destination=./mocks/batch_dispatcher_mock.go -package=mocks
type BatchDispatcher interface {
	// Dispatch reports every record of batch in one sink session. The session identity is taken
	// from the first record; callers are expected to pass single-probe batches.
	Dispatch(ctx context.Context, batch *models.Batch) error
}

type batchDispatcher struct {
	sink sinks.Sink
}

func NewBatchDispatcher(sink sinks.Sink) BatchDispatcher {
	return &batchDispatcher{sink: sink}
}

func (d *batchDispatcher) Dispatch(ctx context.Context, batch *models.Batch) error {
	if batch.IsEmpty() {
		loggers.Ctx(ctx).Debug().Msg("empty batch, nothing to dispatch")
		return nil
	}

	start := time.Now()
	err := d.dispatch(ctx, batch)

	code := metrics.ValueNoError
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		code = svcErr.Code
	}
	metricBatchDispatchedTotal.WithLabelValues(code).Inc()
	metricDispatchDuration.WithLabelValues(code).Observe(time.Since(start).Seconds())
	return err
}

func (d *batchDispatcher) dispatch(ctx context.Context, batch *models.Batch) error {
	site := batch.Records[0].SiteName
	probe := batch.Records[0].ProbeName
	logger := loggers.Ctx(ctx)

	session := d.sink.NewSession()
	session.ConfigureIdentity(site, probe)

	if err := session.Handshake(ctx); err != nil {
		return errInternalHandshakeFailed(err)
	}

	outstanding, err := session.SearchOutstanding(ctx)
	if err != nil {
		return errInternalSearchOutstandingFailed(err)
	}

	reprocessed, err := session.ReprocessOutstanding(ctx)
	if err != nil {
		// outstanding records stay in the outbox for the next cycle
		logger.Warn().Err(err).Msgf("failed to reprocess outstanding records (%d of %d sent)", reprocessed, outstanding)
	}

	for _, record := range batch.Records {
		if err := ctx.Err(); err != nil {
			return errInternalSubmitFailed(err)
		}
		if err := session.Submit(ctx, record); err != nil {
			return errInternalSubmitFailed(err)
		}
		metricRecordsSubmittedTotal.WithLabelValues().Inc()
	}

	if err := session.FinalizeBundle(ctx); err != nil {
		return errInternalFinalizeFailed(err)
	}

	logger.Info().
		Int(loggers.FieldRecordCount, len(batch.Records)).
		Msgf("dispatched batch for site %s", site)
	return nil
}
