package sinks

import (
	"context"
	"errors"
	"fmt"

	"gratia-output/internal/models"
	"gratia-output/internal/shared/loggers"
	"gratia-output/internal/stores"
)

var ErrIdentityNotConfigured = errors.New("session identity is not configured")

// Options holds what the sink announces about itself and how it bundles records.
type Options struct {
	BundleSize                int
	Grid                      string
	InfrastructureDescription string
	NodeCount                 int
	Processors                int
	Reporter                  string
	Service                   string
	ProbeManager              string
	ProbeVersion              string
}

//go:generate mockgen -source=sink.go -destination=./mocks/sink_mock.go -package=mocks
type Sink interface {
	// NewSession starts an independent reporting cycle.
	NewSession() Session
}

// Session is one reporting cycle against the accounting endpoint. Submitted records are kept in
// a durable outbox until the bundle holding them is accepted, so an interrupted cycle is picked
// up by SearchOutstanding and ReprocessOutstanding of a later session for the same probe.
type Session interface {
	ConfigureIdentity(site, probe string)
	Handshake(ctx context.Context) error
	// SearchOutstanding loads the records left in the outbox by earlier cycles.
	SearchOutstanding(ctx context.Context) (int, error)
	// ReprocessOutstanding sends the records found by SearchOutstanding and returns how many
	// were accepted.
	ReprocessOutstanding(ctx context.Context) (int, error)
	Submit(ctx context.Context, record *models.UsageRecord) error
	// FinalizeBundle sends the partially filled bundle.
	FinalizeBundle(ctx context.Context) error
}

type sink struct {
	outboxStore stores.OutboxStore
	transport   Transport
	options     Options
}

func NewSink(outboxStore stores.OutboxStore, transport Transport, options Options) Sink {
	if options.BundleSize < 1 {
		options.BundleSize = 1
	}
	return &sink{outboxStore: outboxStore, transport: transport, options: options}
}

func (s *sink) NewSession() Session {
	return &session{sink: s, seen: make(map[string]struct{})}
}

type session struct {
	sink *sink

	site  string
	probe string

	outstanding []*models.OutboxRecord
	bundle      []*models.OutboxRecord
	// ids sent or bundled during this session
	seen map[string]struct{}
}

func (s *session) ConfigureIdentity(site, probe string) {
	s.site = site
	s.probe = probe
}

func (s *session) Handshake(ctx context.Context) error {
	if s.probe == "" {
		return ErrIdentityNotConfigured
	}

	opts := s.sink.options
	details := &ProbeDetails{
		ProbeName:                 s.probe,
		SiteName:                  s.site,
		Grid:                      opts.Grid,
		InfrastructureDescription: opts.InfrastructureDescription,
		NodeCount:                 opts.NodeCount,
		Processors:                opts.Processors,
		Reporter:                  opts.Reporter,
		Service:                   opts.Service,
		ProbeManager:              opts.ProbeManager,
		ProbeVersion:              opts.ProbeVersion,
	}
	if err := s.sink.transport.Handshake(ctx, details); err != nil {
		return fmt.Errorf("handshake with %s failed: %w", s.sink.transport.Name(), err)
	}
	return nil
}

func (s *session) SearchOutstanding(ctx context.Context) (int, error) {
	if s.probe == "" {
		return 0, ErrIdentityNotConfigured
	}

	outstanding, err := s.sink.outboxStore.List(ctx, s.probe)
	if err != nil {
		return 0, err
	}
	s.outstanding = outstanding
	if len(outstanding) > 0 {
		loggers.Ctx(ctx).Info().Int(loggers.FieldRecordCount, len(outstanding)).Msg("found outstanding records in outbox")
	}
	return len(outstanding), nil
}

func (s *session) ReprocessOutstanding(ctx context.Context) (int, error) {
	size := s.sink.options.BundleSize
	sent := 0
	for len(s.outstanding) > 0 {
		n := min(size, len(s.outstanding))
		if err := s.send(ctx, s.outstanding[:n]); err != nil {
			return sent, err
		}
		s.outstanding = s.outstanding[n:]
		sent += n
	}
	return sent, nil
}

func (s *session) Submit(ctx context.Context, record *models.UsageRecord) error {
	if s.probe == "" {
		return ErrIdentityNotConfigured
	}

	id, err := stores.RecordID(record)
	if err != nil {
		return err
	}
	if _, ok := s.seen[id]; ok {
		loggers.Ctx(ctx).Debug().Str(loggers.FieldRecordID, id).Msg("record already reported in this cycle, skipped")
		metricRecordsDeduplicatedTotal.WithLabelValues().Inc()
		return nil
	}

	if _, err := s.sink.outboxStore.Put(ctx, s.probe, record); err != nil && !errors.Is(err, stores.ErrOutboxRecordAlreadyExist) {
		return fmt.Errorf("failed to store record in outbox: %w", err)
	}
	s.seen[id] = struct{}{}

	s.bundle = append(s.bundle, &models.OutboxRecord{ID: id, Record: record})
	if len(s.bundle) >= s.sink.options.BundleSize {
		return s.flushBundle(ctx)
	}
	return nil
}

func (s *session) FinalizeBundle(ctx context.Context) error {
	if len(s.bundle) == 0 {
		return nil
	}
	return s.flushBundle(ctx)
}

func (s *session) flushBundle(ctx context.Context) error {
	bundle := s.bundle
	s.bundle = nil
	return s.send(ctx, bundle)
}

// send delivers one bundle and drops its records from the outbox once accepted.
func (s *session) send(ctx context.Context, bundle []*models.OutboxRecord) error {
	transport := s.sink.transport
	records := make([]*models.UsageRecord, 0, len(bundle))
	for _, item := range bundle {
		records = append(records, item.Record)
	}

	if err := transport.Send(ctx, s.probe, records); err != nil {
		metricBundlesSentTotal.WithLabelValues(transport.Name(), outcomeFailed).Inc()
		return fmt.Errorf("failed to send bundle of %d records: %w", len(records), err)
	}
	metricBundlesSentTotal.WithLabelValues(transport.Name(), outcomeSent).Inc()
	metricRecordsSentTotal.WithLabelValues(transport.Name()).Add(float64(len(records)))

	for _, item := range bundle {
		s.seen[item.ID] = struct{}{}
		if err := s.sink.outboxStore.Delete(ctx, s.probe, item.ID); err != nil && !errors.Is(err, stores.ErrOutboxRecordNotFound) {
			return fmt.Errorf("failed to clear sent record from outbox: %w", err)
		}
	}

	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldTransport, transport.Name()).
		Int(loggers.FieldRecordCount, len(records)).
		Msg("bundle accepted")
	return nil
}
