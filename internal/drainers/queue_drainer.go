package drainers

import (
	"context"
	"errors"

	"gratia-output/internal/models"
	"gratia-output/internal/queues"
	"gratia-output/internal/records"
	"gratia-output/internal/shared/loggers"
	"gratia-output/internal/shared/metrics"
)

// RemovalMode controls when a converted entry leaves the queue.
type RemovalMode string

const (
	// RemoveAfterFinalize keeps entries locked until Complete, so a failed report leaves them queued.
	RemoveAfterFinalize RemovalMode = "after_finalize"
	// RemoveAfterConvert removes each entry as soon as it is converted. A failed report then
	// loses the records of removed entries.
	RemoveAfterConvert RemovalMode = "after_convert"
)

// DrainResult holds the converted entries of one pass in queue order.
type DrainResult struct {
	Entries   []models.DrainedEntry
	Contended int
	Failed    int
}

//go:generate mockgen -source=queue_drainer.go -destination=./mocks/queue_drainer_mock.go -package=mocks
type QueueDrainer interface {
	// Drain locks, reads and converts every available entry. Entries locked by another consumer
	// are skipped, unreadable or unconvertible entries are unlocked and left in the queue.
	Drain(ctx context.Context) (*DrainResult, error)
	// Complete removes entries whose records were reported.
	Complete(ctx context.Context, entries []models.DrainedEntry) error
	// Release unlocks entries whose records were not reported, leaving them for the next run.
	Release(ctx context.Context, entries []models.DrainedEntry) error
	// Tidy purges empty directories and stale temporary and lock files from the queue.
	Tidy(ctx context.Context) error
}

type queueDrainer struct {
	queue       queues.Queue
	removalMode RemovalMode
}

func NewQueueDrainer(queue queues.Queue, removalMode RemovalMode) QueueDrainer {
	if removalMode == "" {
		removalMode = RemoveAfterFinalize
	}
	return &queueDrainer{queue: queue, removalMode: removalMode}
}

func (d *queueDrainer) Drain(ctx context.Context) (*DrainResult, error) {
	logger := loggers.Ctx(ctx)

	names, err := d.queue.Names(ctx)
	if err != nil {
		return nil, errInternalQueueListFailed(err)
	}
	logger.Debug().Msgf("found %d queue entries (removal_mode=%s)", len(names), d.removalMode)

	result := &DrainResult{}
	fail := func(err error) (*DrainResult, error) {
		// entries drained so far are still locked; hand them back before giving up
		if releaseErr := d.Release(context.WithoutCancel(ctx), result.Entries); releaseErr != nil {
			logger.Error().Err(releaseErr).Msg("failed to release drained entries")
		}
		return nil, err
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		locked, err := d.queue.Lock(ctx, name)
		if err != nil {
			return fail(errInternalQueueLockFailed(name, err))
		}
		if !locked {
			result.Contended++
			metricEntriesDrainedTotal.WithLabelValues(outcomeContended).Inc()
			logger.Debug().Str(loggers.FieldQueueEntry, name).Msg("entry locked by another consumer, skipped")
			continue
		}

		record, ok, err := d.convert(ctx, name)
		if err != nil {
			return fail(err)
		}
		if !ok {
			result.Failed++
			continue
		}

		if d.removalMode == RemoveAfterConvert {
			if err := d.queue.Remove(ctx, name); err != nil {
				metricEntriesRemovedTotal.WithLabelValues(codeInternalQueueRemoveFailed).Inc()
				return fail(errInternalQueueRemoveFailed(err))
			}
			metricEntriesRemovedTotal.WithLabelValues(metrics.ValueNoError).Inc()
		}

		result.Entries = append(result.Entries, models.DrainedEntry{Name: name, Record: record})
		metricEntriesDrainedTotal.WithLabelValues(outcomeConverted).Inc()
	}

	logger.Info().
		Int(loggers.FieldRecordCount, len(result.Entries)).
		Msgf("drained queue: %d converted, %d contended, %d failed", len(result.Entries), result.Contended, result.Failed)
	return result, nil
}

// convert reads and converts a locked entry. A false result means the entry was unusable and has
// been unlocked again; the error is reserved for failures that must stop the drain.
func (d *queueDrainer) convert(ctx context.Context, name string) (*models.UsageRecord, bool, error) {
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldQueueEntry, name).Logger()

	payload, err := d.queue.Get(ctx, name)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read queue entry, leaving it queued")
		metricEntriesDrainedTotal.WithLabelValues(outcomeReadFailed).Inc()
		return nil, false, d.unlock(ctx, name)
	}

	record, parseResult := records.ParseRecord(string(payload))
	if parseResult.SkippedLines > 0 {
		logger.Debug().Int(loggers.FieldSkippedLines, parseResult.SkippedLines).Msg("skipped malformed lines")
		metricSkippedLinesTotal.WithLabelValues().Add(float64(parseResult.SkippedLines))
	}

	usageRecord, err := record.ToUsageRecord()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to convert queue entry, leaving it queued")
		metricEntriesDrainedTotal.WithLabelValues(outcomeConvertFailed).Inc()
		return nil, false, d.unlock(ctx, name)
	}
	return usageRecord, true, nil
}

func (d *queueDrainer) unlock(ctx context.Context, name string) error {
	if err := d.queue.Unlock(ctx, name); err != nil {
		return errInternalQueueUnlockFailed(err)
	}
	return nil
}

func (d *queueDrainer) Complete(ctx context.Context, entries []models.DrainedEntry) error {
	if d.removalMode == RemoveAfterConvert {
		return nil
	}

	var errs []error
	for _, entry := range entries {
		if err := d.queue.Remove(ctx, entry.Name); err != nil {
			metricEntriesRemovedTotal.WithLabelValues(codeInternalQueueRemoveFailed).Inc()
			errs = append(errs, err)
			continue
		}
		metricEntriesRemovedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	}
	if len(errs) > 0 {
		return errInternalQueueRemoveFailed(errors.Join(errs...))
	}
	return nil
}

func (d *queueDrainer) Release(ctx context.Context, entries []models.DrainedEntry) error {
	if d.removalMode == RemoveAfterConvert {
		return nil
	}

	var errs []error
	for _, entry := range entries {
		if err := d.queue.Unlock(ctx, entry.Name); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errInternalQueueUnlockFailed(errors.Join(errs...))
	}
	if len(entries) > 0 {
		loggers.Ctx(ctx).Info().Int(loggers.FieldRecordCount, len(entries)).Msg("released queue entries for the next run")
	}
	return nil
}

func (d *queueDrainer) Tidy(ctx context.Context) error {
	return d.queue.Purge(ctx, queues.DefaultMaxTempAge, queues.DefaultMaxLockAge)
}
