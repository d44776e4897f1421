// Package app assembles the catalog from configuration for the binaries.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/vanshika/filmgraph/internal/config"
	"github.com/vanshika/filmgraph/internal/graph"
	"github.com/vanshika/filmgraph/internal/metrics"
	"github.com/vanshika/filmgraph/internal/repository"
	"github.com/vanshika/filmgraph/internal/service"
)

const (
	// MetricsNamespace prefixes every exported metric.
	MetricsNamespace = "filmgraph"
	// TracerName names the tracer repository spans are started on.
	TracerName = "github.com/vanshika/filmgraph"
)

// Catalog bundles the driver and the services built on it.
type Catalog struct {
	Driver  graph.Driver
	Service *service.CatalogService
	Metrics *metrics.Collector
}

// Open connects to the configured graph database and builds the catalog.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Catalog, error) {
	driver, err := graph.NewNeo4jDriver(ctx, cfg.Graph.Options())
	if err != nil {
		return nil, err
	}
	logger.Info("connected to graph",
		zap.String("uri", cfg.Graph.URI()),
		zap.String("database", cfg.Graph.Database),
	)

	catalog, err := New(driver, cfg, logger)
	if err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}
	return catalog, nil
}

// New builds the catalog over an existing driver, adding the circuit breaker
// when enabled.
func New(driver graph.Driver, cfg config.Config, logger *zap.Logger) (*Catalog, error) {
	policy, err := repository.ParsePolicy(cfg.Graph.DecodePolicy)
	if err != nil {
		return nil, fmt.Errorf("graph decode policy: %w", err)
	}

	if cfg.Breaker.Enabled {
		driver = graph.NewBreakerDriver(driver, cfg.Breaker.Settings("graph"), logger)
	}

	collector := metrics.NewCollector(MetricsNamespace)
	collector.Registry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	stores := service.NewStores(driver,
		repository.WithPolicy(policy),
		repository.WithLogger(logger),
		repository.WithMetrics(collector),
		repository.WithTracer(otel.Tracer(TracerName)),
	)

	return &Catalog{
		Driver:  driver,
		Service: service.NewCatalogService(stores),
		Metrics: collector,
	}, nil
}

// Close releases the driver.
func (c *Catalog) Close(ctx context.Context) error {
	return c.Driver.Close(ctx)
}
