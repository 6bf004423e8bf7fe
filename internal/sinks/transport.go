package sinks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gratia-output/internal/models"
)

const (
	TransportCollector  = "collector"
	TransportLumberjack = "lumberjack"
)

var (
	ErrCollectorRejected = errors.New("collector rejected request")
	ErrUnknownTransport   = errors.New("unknown transport")
)

// ProbeDetails is announced to the collector during the handshake.
type ProbeDetails struct {
	ProbeName                 string
	SiteName                  string
	Grid                      string
	InfrastructureDescription string
	NodeCount                 int
	Processors                int
	Reporter                  string
	Service                   string
	ProbeManager              string
	ProbeVersion              string
}

// Transport delivers handshakes and record bundles to an accounting endpoint. Send either
// accepts the whole bundle or returns an error.
//
//go:generate mockgen -source=transport.go -destination=./mocks/transport_mock.go -package=mocks
type Transport interface {
	Name() string
	Handshake(ctx context.Context, details *ProbeDetails) error
	Send(ctx context.Context, probe string, records []*models.UsageRecord) error
	Close() error
}

// TransportConfig selects and configures a Transport.
type TransportConfig struct {
	Kind               string
	URL                string
	LumberjackEndpoint string
	Timeout            time.Duration
	Compress           bool
}

func NewTransport(cfg TransportConfig) (Transport, error) {
	switch cfg.Kind {
	case TransportCollector:
		return NewCollectorTransport(cfg.URL, cfg.Timeout, cfg.Compress), nil
	case TransportLumberjack:
		return NewLumberjackTransport(cfg.LumberjackEndpoint, cfg.Timeout, cfg.Compress), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Kind)
	}
}
