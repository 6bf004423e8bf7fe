package sinks

import (
	"context"
	"fmt"
	"time"

	lumberjack "github.com/elastic/go-lumber/client/v2"

	"gratia-output/internal/models"
)

const (
	eventTypeHandshake   = "probe_details"
	eventTypeUsageRecord = "usage_record"
)

// lumberjackTransport forwards records as Beats events, one event per record. The connection
// is opened on first use and kept for the rest of the run.
type lumberjackTransport struct {
	endpoint string
	timeout  time.Duration
	compress bool
	client   *lumberjack.SyncClient
	now      func() time.Time
}

func NewLumberjackTransport(endpoint string, timeout time.Duration, compress bool) Transport {
	return &lumberjackTransport{endpoint: endpoint, timeout: timeout, compress: compress, now: time.Now}
}

func (t *lumberjackTransport) Name() string { return TransportLumberjack }

func (t *lumberjackTransport) Handshake(ctx context.Context, details *ProbeDetails) error {
	event := map[string]interface{}{
		"@timestamp": t.now().UTC(),
		"type":       eventTypeHandshake,
		"probe": map[string]interface{}{
			"name":    details.ProbeName,
			"version": details.ProbeVersion,
			"manager": details.ProbeManager,
		},
		"site": details.SiteName,
		"grid": details.Grid,
		"infrastructure": map[string]interface{}{
			"description": details.InfrastructureDescription,
			"nodecount":   details.NodeCount,
			"processors":  details.Processors,
		},
		"reporter": details.Reporter,
		"service":  details.Service,
	}
	return t.send(ctx, []interface{}{event})
}

func (t *lumberjackTransport) Send(ctx context.Context, probe string, records []*models.UsageRecord) error {
	events := make([]interface{}, 0, len(records))
	for _, record := range records {
		events = append(events, map[string]interface{}{
			"@timestamp": time.Unix(record.EndTime, 0).UTC(),
			"type":       eventTypeUsageRecord,
			"probe":      map[string]interface{}{"name": probe},
			"record":     record,
		})
	}
	return t.send(ctx, events)
}

func (t *lumberjackTransport) Close() error {
	if t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}

func (t *lumberjackTransport) send(ctx context.Context, events []interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.connect(); err != nil {
		return err
	}

	sent, err := t.client.Send(events)
	if err != nil {
		// the connection state is unknown after a failed window, start over next time
		_ = t.Close()
		return fmt.Errorf("failed to send %d events to beats server: %w", len(events), err)
	}
	if sent != len(events) {
		_ = t.Close()
		return fmt.Errorf("%w: beats server acknowledged %d of %d events", ErrCollectorRejected, sent, len(events))
	}
	return nil
}

func (t *lumberjackTransport) connect() error {
	if t.client != nil {
		return nil
	}

	level := 0
	if t.compress {
		level = 3
	}
	client, err := lumberjack.SyncDial(t.endpoint, lumberjack.CompressionLevel(level), lumberjack.Timeout(t.timeout))
	if err != nil {
		return fmt.Errorf("failed connection to beats server: %w", err)
	}
	t.client = client
	return nil
}
