package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gratia-output/internal/dispatchers"
	"gratia-output/internal/drainers"
	"gratia-output/internal/queues"
	"gratia-output/internal/reporters"
	"gratia-output/internal/shared/configs"
	"gratia-output/internal/shared/filestorages"
	"gratia-output/internal/shared/loggers"
	"gratia-output/internal/shared/metrics"
	"gratia-output/internal/shared/processlocks"
	"gratia-output/internal/shared/svcerrors"
	"gratia-output/internal/shared/ulid"
	"gratia-output/internal/sinks"
	"gratia-output/internal/stores"
)

const metricsPushTimeout = 10 * time.Second

// App holds the dependencies of one gratia-output run.
type App struct {
	config      *configs.Config
	probeConfig *configs.ProbeConfig
	appLogger   loggers.Logger

	transport        sinks.Transport
	reportingService reporters.ReportingService
	pusher           metrics.Pusher
}

// New loads the probe configuration and wires the pipeline. Nothing touches the queue until Run.
func New(config *configs.Config) (*App, error) {
	return NewWithLogOutput(config, os.Stdout)
}

// NewWithLogOutput is New with an explicit log destination.
func NewWithLogOutput(config *configs.Config, logOutput io.Writer) (*App, error) {
	appLogger, err := loggers.NewWithWriter(config.Log.Level, logOutput)
	if err != nil {
		return nil, errInvalidConfig("failed to initialize logger", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "gratia-output").
		Str(loggers.FieldRunID, ulid.NewRunID()).
		Logger()

	probeConfig, err := configs.LoadProbeConfig(config.Gratia.ConfigPath)
	if err != nil {
		return nil, errInvalidConfig("invalid gratia probe config", err)
	}

	// Initialize queue and drainer
	queue, err := queues.NewDirectoryQueue(config.Queue.OutputPath)
	if err != nil {
		return nil, errInvalidConfig("failed to open queue", err)
	}
	drainer := drainers.NewQueueDrainer(queue, drainers.RemovalMode(config.Queue.RemovalMode))

	// Initialize outbox
	fileStorage, err := filestorages.NewFileStorage(probeConfig.WorkingFolder)
	if err != nil {
		return nil, errInvalidConfig("failed to initialize working folder", err)
	}
	outboxStore := stores.NewOutboxStore(fileStorage)

	// Initialize sink
	transport, err := sinks.NewTransport(sinks.TransportConfig{
		Kind:               probeConfig.Collector.Transport,
		URL:                probeConfig.Collector.URL,
		LumberjackEndpoint: probeConfig.Collector.LumberjackEndpoint,
		Timeout:            time.Duration(probeConfig.Collector.Timeout) * time.Second,
		Compress:           probeConfig.Collector.Compress,
	})
	if err != nil {
		return nil, errInvalidConfig("invalid collector transport", err)
	}
	sink := sinks.NewSink(outboxStore, transport, sinks.Options{
		BundleSize:                probeConfig.Bundle.Size,
		Grid:                      config.Infrastructure.Type,
		InfrastructureDescription: config.Infrastructure.Description,
		NodeCount:                 config.Infrastructure.NodeCount,
		Processors:                config.Infrastructure.Processors,
		Reporter:                  config.Gratia.Reporter,
		Service:                   config.Gratia.Service,
		ProbeManager:              config.Gratia.ProbeManager,
		ProbeVersion:              config.Gratia.ProbeVersion,
	})

	dispatcher := dispatchers.NewBatchDispatcher(sink)
	reportingService := reporters.NewReportingService(drainer, dispatcher)

	return &App{
		config:           config,
		probeConfig:      probeConfig,
		appLogger:        appLogger,
		transport:        transport,
		reportingService: reportingService,
		pusher:           metrics.NewPusher(config.Metrics.PushgatewayURL, config.Metrics.Job),
	}, nil
}

// Run performs one drain-and-report pass under the process lock.
func (app *App) Run(ctx context.Context) error {
	ctx = app.appLogger.WithContext(ctx)
	start := time.Now()

	app.appLogger.Info().
		Msgf("Starting gratia-output (queue=%s, removal_mode=%s, transport=%s, gratia_config=%s)",
			app.config.Queue.OutputPath,
			app.config.Queue.RemovalMode,
			app.transport.Name(),
			app.config.Gratia.ConfigPath)

	lock, err := processlocks.Acquire(app.probeConfig.LockFile)
	if err != nil {
		if errors.Is(err, processlocks.ErrLockHeld) {
			return app.fail(errLockHeld(err))
		}
		return app.fail(svcerrors.NewInternalErrorUndefined(fmt.Errorf("failed to acquire process lock: %w", err)))
	}
	defer func() {
		if err := lock.Release(); err != nil {
			app.appLogger.Warn().Err(err).Msg("failed to release process lock")
		}
	}()
	defer app.close()

	summary, err := app.reportingService.Run(ctx)
	if err != nil {
		return app.fail(err)
	}

	app.appLogger.Info().
		Dur(loggers.FieldDuration, time.Since(start)).
		Int(loggers.FieldRecordCount, summary.Reported).
		Msgf("run finished: %d drained, %d reported in %d batches, %d contended, %d failed",
			summary.Drained, summary.Reported, summary.Batches, summary.Contended, summary.Failed)
	return nil
}

func (app *App) fail(err error) error {
	event := app.appLogger.Error().Err(err)
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		event = event.Str(loggers.FieldErrorCode, svcErr.Code)
	}
	event.Msg("run failed")
	return err
}

// close releases the transport and pushes the run's metrics.
func (app *App) close() {
	if err := app.transport.Close(); err != nil {
		app.appLogger.Warn().Err(err).Msg("failed to close transport")
	}

	ctx, cancel := context.WithTimeout(context.Background(), metricsPushTimeout)
	defer cancel()
	if err := app.pusher.Push(ctx); err != nil {
		app.appLogger.Warn().Err(err).Msg("failed to push metrics")
	}
}
