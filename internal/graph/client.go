package graph

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Driver opens connections to the graph database. Each connection is owned
// by exactly one caller and must be closed by it.
type Driver interface {
	Connect(ctx context.Context, mode AccessMode) (Conn, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Conn is a single connection on which one query is executed and streamed.
type Conn interface {
	// Execute runs the query with the bound parameters.
	Execute(ctx context.Context, query string, params map[string]any) error
	// FetchAll returns the next batch of records. ErrEndOfStream signals that
	// the result has been fully consumed.
	FetchAll(ctx context.Context) ([]Record, error)
	Close(ctx context.Context) error
}

// AccessMode tells the driver whether a connection reads or writes.
type AccessMode int

const (
	AccessModeRead AccessMode = iota
	AccessModeWrite
)

func (m AccessMode) String() string {
	if m == AccessModeWrite {
		return "write"
	}
	return "read"
}

// Record is one row of a query result.
type Record struct {
	Keys   []string
	Values []Value
}

// Get returns the value stored under the given column name.
func (r Record) Get(key string) (Value, bool) {
	for i, k := range r.Keys {
		if k == key && i < len(r.Values) {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Options configures a graph driver implementation.
type Options struct {
	Scheme         string
	Host           string
	Port           int
	Database       string
	Username       string
	Password       string
	MaxConnections int
	FetchSize      int
	ConnectTimeout time.Duration
}

// URI composes the connection URI, defaulting to the bolt scheme.
func (o Options) URI() string {
	scheme := o.Scheme
	if scheme == "" {
		scheme = "bolt"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, o.Host, o.Port)
}

var (
	// ErrEndOfStream is returned by Conn.FetchAll once every record was handed out.
	ErrEndOfStream = errors.New("graph: end of result stream")
	// ErrMissingHost indicates the graph host is not provided.
	ErrMissingHost = errors.New("graph host is required")
)
