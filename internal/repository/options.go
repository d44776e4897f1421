package repository

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vanshika/filmgraph/internal/graph"
	"github.com/vanshika/filmgraph/internal/metrics"
)

// Policy decides what happens to nodes the decoder rejects.
type Policy int

const (
	// PolicyStrict aborts the query on the first rejected node.
	PolicyStrict Policy = iota
	// PolicyLenient skips rejected nodes and keeps going.
	PolicyLenient
)

func (p Policy) String() string {
	if p == PolicyLenient {
		return "lenient"
	}
	return "strict"
}

// ParsePolicy maps a configuration value onto a Policy. Empty means strict.
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "strict":
		return PolicyStrict, nil
	case "lenient":
		return PolicyLenient, nil
	default:
		return PolicyStrict, fmt.Errorf("unknown decode policy %q", value)
	}
}

type options struct {
	entity  string
	column  string
	policy  Policy
	mode    graph.AccessMode
	binder  graph.Binder
	logger  *zap.Logger
	metrics *metrics.Collector
	tracer  trace.Tracer
}

func defaultOptions() options {
	return options{
		entity: "entity",
		policy: PolicyStrict,
		mode:   graph.AccessModeRead,
		binder: graph.StringBinder{},
		logger: zap.NewNop(),
		tracer: otel.Tracer("github.com/vanshika/filmgraph/internal/repository"),
	}
}

// Option customises a Repository.
type Option func(*options)

// WithEntityName sets the entity label used in logs, metrics and spans.
func WithEntityName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.entity = name
		}
	}
}

// WithColumn restricts decoding to a single named column. Without it every
// value of a record is expected to be a node.
func WithColumn(column string) Option {
	return func(o *options) {
		o.column = column
	}
}

// WithPolicy sets the decode policy.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithAccessMode sets the access mode connections are opened with.
func WithAccessMode(mode graph.AccessMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithBinder replaces the parameter binder.
func WithBinder(b graph.Binder) Option {
	return func(o *options) {
		if b != nil {
			o.binder = b
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) {
		o.metrics = c
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}
