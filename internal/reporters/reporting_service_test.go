package reporters_test

import (
	"context"
	"errors"
	"testing"

	dispatchermocks "gratia-output/internal/dispatchers/mocks"
	"gratia-output/internal/drainers"
	drainermocks "gratia-output/internal/drainers/mocks"
	"gratia-output/internal/models"
	"gratia-output/internal/reporters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func entry(name, site string) models.DrainedEntry {
	return models.DrainedEntry{
		Name:   name,
		Record: &models.UsageRecord{SiteName: site, ProbeName: "probe-" + site},
	}
}

func TestRun_EmptyQueueTouchesNoSink(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	drainer := drainermocks.NewMockQueueDrainer(ctrl)
	dispatcher := dispatchermocks.NewMockBatchDispatcher(ctrl)

	drainer.EXPECT().Drain(gomock.Any()).Return(&drainers.DrainResult{Contended: 2}, nil)
	drainer.EXPECT().Tidy(gomock.Any()).Return(nil)

	summary, err := reporters.NewReportingService(drainer, dispatcher).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &reporters.RunSummary{Contended: 2}, summary)
}

func TestRun_ReportsEachProbeAndCompletesEntries(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	drainer := drainermocks.NewMockQueueDrainer(ctrl)
	dispatcher := dispatchermocks.NewMockBatchDispatcher(ctrl)

	e1, e2, e3 := entry("e1", "A"), entry("e2", "B"), entry("e3", "A")

	gomock.InOrder(
		drainer.EXPECT().Drain(gomock.Any()).Return(&drainers.DrainResult{Entries: []models.DrainedEntry{e1, e2, e3}, Failed: 1}, nil),
		dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, batch *models.Batch) error {
			assert.Equal(t, "probe-A", batch.Probe)
			assert.Equal(t, []*models.UsageRecord{e1.Record, e3.Record}, batch.Records)
			return nil
		}),
		drainer.EXPECT().Complete(gomock.Any(), []models.DrainedEntry{e1, e3}).Return(nil),
		dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, batch *models.Batch) error {
			assert.Equal(t, "probe-B", batch.Probe)
			return nil
		}),
		drainer.EXPECT().Complete(gomock.Any(), []models.DrainedEntry{e2}).Return(nil),
		drainer.EXPECT().Tidy(gomock.Any()).Return(errors.New("purge failed")),
	)

	summary, err := reporters.NewReportingService(drainer, dispatcher).Run(context.Background())
	require.NoError(t, err, "purge failures are only logged")
	assert.Equal(t, &reporters.RunSummary{Drained: 3, Failed: 1, Batches: 2, Reported: 3}, summary)
}

func TestRun_DispatchFailureReleasesUnreportedEntries(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	drainer := drainermocks.NewMockQueueDrainer(ctrl)
	dispatcher := dispatchermocks.NewMockBatchDispatcher(ctrl)

	e1, e2, e3 := entry("e1", "A"), entry("e2", "B"), entry("e3", "C")
	dispatchErr := errors.New("handshake refused")

	gomock.InOrder(
		drainer.EXPECT().Drain(gomock.Any()).Return(&drainers.DrainResult{Entries: []models.DrainedEntry{e1, e2, e3}}, nil),
		dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil),
		drainer.EXPECT().Complete(gomock.Any(), []models.DrainedEntry{e1}).Return(nil),
		dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(dispatchErr),
		drainer.EXPECT().Release(gomock.Any(), []models.DrainedEntry{e2, e3}).Return(nil),
	)

	summary, err := reporters.NewReportingService(drainer, dispatcher).Run(context.Background())
	assert.ErrorIs(t, err, dispatchErr)
	assert.Equal(t, 1, summary.Batches)
	assert.Equal(t, 1, summary.Reported)
}

func TestRun_CompleteFailureReleasesRemainingEntries(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	drainer := drainermocks.NewMockQueueDrainer(ctrl)
	dispatcher := dispatchermocks.NewMockBatchDispatcher(ctrl)

	e1, e2 := entry("e1", "A"), entry("e2", "B")
	removeErr := errors.New("read-only file system")

	gomock.InOrder(
		drainer.EXPECT().Drain(gomock.Any()).Return(&drainers.DrainResult{Entries: []models.DrainedEntry{e1, e2}}, nil),
		dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil),
		drainer.EXPECT().Complete(gomock.Any(), []models.DrainedEntry{e1}).Return(removeErr),
		drainer.EXPECT().Release(gomock.Any(), []models.DrainedEntry{e1, e2}).Return(nil),
	)

	_, err := reporters.NewReportingService(drainer, dispatcher).Run(context.Background())
	assert.ErrorIs(t, err, removeErr)
}

func TestRun_DrainFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	drainer := drainermocks.NewMockQueueDrainer(ctrl)
	dispatcher := dispatchermocks.NewMockBatchDispatcher(ctrl)
	drainErr := errors.New("queue unreadable")

	drainer.EXPECT().Drain(gomock.Any()).Return(nil, drainErr)

	summary, err := reporters.NewReportingService(drainer, dispatcher).Run(context.Background())
	assert.ErrorIs(t, err, drainErr)
	assert.Nil(t, summary)
}
