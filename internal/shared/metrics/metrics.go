package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	FieldErrorCode = "error_code"
	FieldOutcome   = "outcome"
	FieldTransport = "transport"

	ValueNoError = ""

	Namespace   = "gratia_output"
	SubDrain    = "drain"
	SubDispatch = "dispatch"
	SubSink     = "sink"
	SubRun      = "run"
)

// CounterOpts is a type alias for prometheus.CounterOpts.
type CounterOpts = prometheus.CounterOpts

// GaugeOpts is a type alias for prometheus.GaugeOpts.
type GaugeOpts = prometheus.GaugeOpts

// HistogramOpts is a type alias for prometheus.HistogramOpts.
type HistogramOpts = prometheus.HistogramOpts

// DefBuckets is a re-export of prometheus.DefBuckets.
var DefBuckets = prometheus.DefBuckets

// NewCounterVec creates a new CounterVec with the given CounterOpts and label names.
// It is automatically registered with the default prometheus registry.
var NewCounterVec = promauto.NewCounterVec

// NewGaugeVec creates a new GaugeVec registered with the default prometheus registry.
var NewGaugeVec = promauto.NewGaugeVec

// NewHistogramVec creates a new HistogramVec with the given HistogramOpts and label names.
// It is automatically registered with the default prometheus registry.
var NewHistogramVec = promauto.NewHistogramVec

// Pusher sends the collected metrics of one run to a Prometheus Pushgateway.
type Pusher interface {
	Push(ctx context.Context) error
}

type noopPusher struct{}

func (noopPusher) Push(context.Context) error { return nil }

type gatewayPusher struct {
	pusher *push.Pusher
}

// NewPusher returns a Pusher for the given gateway URL and job name.
// An empty URL disables pushing.
func NewPusher(gatewayURL, job string) Pusher {
	if gatewayURL == "" {
		return noopPusher{}
	}
	return &gatewayPusher{
		pusher: push.New(gatewayURL, job).Gatherer(prometheus.DefaultGatherer),
	}
}

func (p *gatewayPusher) Push(ctx context.Context) error {
	if err := p.pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}
