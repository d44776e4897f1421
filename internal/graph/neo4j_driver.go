package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jDriver speaks Bolt through the official Neo4j driver. Memgraph exposes
// the same protocol on 7687, so both databases are served by this driver for
// reads. Person upserts store map-valued properties (biography, influences),
// which only Memgraph accepts; Neo4j rejects them and the write fails.
// A connection handed out by Connect is a dedicated session.
type Neo4jDriver struct {
	driver    neo4j.DriverWithContext
	database  string
	fetchSize int
}

// NewNeo4jDriver creates the underlying driver and verifies it can reach the
// database before returning.
func NewNeo4jDriver(ctx context.Context, opts Options) (*Neo4jDriver, error) {
	if opts.Host == "" {
		return nil, ErrMissingHost
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI(), auth, func(c *neo4j.Config) {
		if opts.MaxConnections > 0 {
			c.MaxConnectionPoolSize = opts.MaxConnections
		}
		if opts.ConnectTimeout > 0 {
			c.ConnectionAcquisitionTimeout = opts.ConnectTimeout
			c.SocketConnectTimeout = opts.ConnectTimeout
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}

	return &Neo4jDriver{
		driver:    driver,
		database:  opts.Database,
		fetchSize: opts.FetchSize,
	}, nil
}

// Connect checks the server is ready and opens a session for a single query.
func (d *Neo4jDriver) Connect(ctx context.Context, mode AccessMode) (Conn, error) {
	if err := d.driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("graph not ready: %w", err)
	}

	accessMode := neo4j.AccessModeRead
	if mode == AccessModeWrite {
		accessMode = neo4j.AccessModeWrite
	}
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: d.database,
		AccessMode:   accessMode,
		FetchSize:    d.fetchSize,
	})
	return &neo4jConn{session: session, batchSize: d.fetchSize}, nil
}

func (d *Neo4jDriver) VerifyConnectivity(ctx context.Context) error {
	return d.driver.VerifyConnectivity(ctx)
}

func (d *Neo4jDriver) Close(ctx context.Context) error {
	return d.driver.Close(ctx)
}

type neo4jConn struct {
	session   neo4j.SessionWithContext
	result    neo4j.ResultWithContext
	batchSize int
}

func (c *neo4jConn) Execute(ctx context.Context, query string, params map[string]any) error {
	res, err := c.session.Run(ctx, query, params)
	if err != nil {
		return err
	}
	c.result = res
	return nil
}

// FetchAll hands out at most batchSize records per call, or the whole
// remaining stream when no batch size is configured.
func (c *neo4jConn) FetchAll(ctx context.Context) ([]Record, error) {
	if c.result == nil {
		return nil, ErrEndOfStream
	}

	var records []Record
	for (c.batchSize <= 0 || len(records) < c.batchSize) && c.result.Next(ctx) {
		records = append(records, convertRecord(c.result.Record()))
	}
	if err := c.result.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		c.result = nil
		return nil, ErrEndOfStream
	}
	return records, nil
}

func (c *neo4jConn) Close(ctx context.Context) error {
	return c.session.Close(ctx)
}

func convertRecord(rec *neo4j.Record) Record {
	record := Record{
		Keys:   append([]string(nil), rec.Keys...),
		Values: make([]Value, 0, len(rec.Values)),
	}
	for _, v := range rec.Values {
		record.Values = append(record.Values, FromDriver(v))
	}
	return record
}
