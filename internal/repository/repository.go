// Package repository executes parameterised graph queries and decodes the
// returned nodes into typed entities.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vanshika/filmgraph/internal/graph"
	"github.com/vanshika/filmgraph/internal/metrics"
)

// Decoder converts a node into an entity, reporting false when the node is
// not a valid T.
type Decoder[T any] func(graph.Node) (T, bool)

// Repository runs queries for a single entity type. It holds only
// configuration and is safe for concurrent use; every call acquires and
// releases its own connection.
type Repository[T any] struct {
	driver graph.Driver
	decode Decoder[T]
	opts   options
}

// New instantiates a Repository over driver using decode for every node.
func New[T any](driver graph.Driver, decode Decoder[T], opts ...Option) *Repository[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With(zap.String("component", "repository"), zap.String("entity", o.entity))
	return &Repository[T]{driver: driver, decode: decode, opts: o}
}

// Policy reports the decode policy in use.
func (r *Repository[T]) Policy() Policy {
	return r.opts.policy
}

// Query executes template with params and returns the decoded entities in
// record order. An empty result is an empty, non-nil slice.
func (r *Repository[T]) Query(ctx context.Context, template string, params map[string]string) ([]T, error) {
	queryID := uuid.NewString()
	start := time.Now()
	logger := r.opts.logger.With(zap.String("query_id", queryID))

	ctx, span := r.opts.tracer.Start(ctx, "repository.query", trace.WithAttributes(
		attribute.String("query.id", queryID),
		attribute.String("entity", r.opts.entity),
		attribute.String("decode.policy", r.opts.policy.String()),
		attribute.String("access.mode", r.opts.mode.String()),
	))
	defer span.End()

	logger.Debug("executing query", zap.String("query", template), zap.Int("params", len(params)))

	entities, skipped, err := r.run(ctx, logger, template, params)
	elapsed := time.Since(start)
	r.opts.metrics.ObserveQuery(r.opts.entity, outcome(err), elapsed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("query failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return nil, err
	}

	r.opts.metrics.AddDecoded(r.opts.entity, len(entities))
	r.opts.metrics.AddSkipped(r.opts.entity, skipped)
	span.SetAttributes(
		attribute.Int("records.decoded", len(entities)),
		attribute.Int("records.skipped", skipped),
	)
	logger.Debug("query completed",
		zap.Int("decoded", len(entities)),
		zap.Int("skipped", skipped),
		zap.Duration("elapsed", elapsed),
	)
	return entities, nil
}

// QueryStatement runs a prebuilt statement.
func (r *Repository[T]) QueryStatement(ctx context.Context, stmt Statement) ([]T, error) {
	return r.Query(ctx, stmt.Query, stmt.Params)
}

func (r *Repository[T]) run(ctx context.Context, logger *zap.Logger, template string, params map[string]string) ([]T, int, error) {
	conn, err := r.driver.Connect(ctx, r.opts.mode)
	if err != nil {
		return nil, 0, newError(KindConnectionFailed, err, "acquire %s connection", r.opts.mode)
	}
	defer func() {
		if cerr := conn.Close(context.WithoutCancel(ctx)); cerr != nil {
			logger.Warn("failed to close graph connection", zap.Error(cerr))
		}
	}()

	if err := conn.Execute(ctx, template, r.opts.binder.Bind(params)); err != nil {
		return nil, 0, newError(KindQueryFailed, err, "execute query")
	}

	entities := []T{}
	skipped := 0
	for {
		batch, err := conn.FetchAll(ctx)
		if errors.Is(err, graph.ErrEndOfStream) {
			break
		}
		if err != nil {
			return nil, 0, newError(KindQueryFailed, err, "fetch records")
		}

		for _, rec := range batch {
			values, err := r.entityValues(rec)
			if err != nil {
				return nil, 0, err
			}
			for _, v := range values {
				node, ok := v.(graph.Node)
				if !ok {
					return nil, 0, newError(KindUnexpectedValue, nil, "expected node, got %s", graph.Kind(v))
				}
				entity, ok := r.decode(node)
				if !ok {
					if r.opts.policy == PolicyStrict {
						return nil, 0, newError(KindDecodeRejected, nil, "node %q is not a valid %s", node.ID, r.opts.entity)
					}
					skipped++
					logger.Warn("skipping undecodable node", zap.String("node_id", node.ID))
					continue
				}
				entities = append(entities, entity)
			}
		}
	}
	return entities, skipped, nil
}

func (r *Repository[T]) entityValues(rec graph.Record) ([]graph.Value, error) {
	if r.opts.column == "" {
		return rec.Values, nil
	}
	v, ok := rec.Get(r.opts.column)
	if !ok {
		return nil, newError(KindUnexpectedValue, nil, "column %q missing from record", r.opts.column)
	}
	return []graph.Value{v}, nil
}

func outcome(err error) string {
	switch KindOf(err) {
	case 0:
		if err != nil {
			return metrics.OutcomeQueryFailed
		}
		return metrics.OutcomeOK
	case KindConnectionFailed:
		return metrics.OutcomeConnectionFailed
	case KindQueryFailed:
		return metrics.OutcomeQueryFailed
	case KindUnexpectedValue:
		return metrics.OutcomeUnexpectedValue
	default:
		return metrics.OutcomeDecodeRejected
	}
}
