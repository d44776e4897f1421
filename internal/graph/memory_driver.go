package graph

import (
	"context"
	"sync"
)

// MemoryDriver is a scripted in-memory Driver used to exercise repository
// logic without a running graph database. Each executed query consumes the
// next pushed result; a result is a sequence of record batches.
type MemoryDriver struct {
	mu           sync.Mutex
	results      [][][]Record
	executed     []ExecutedQuery
	connectErr   error
	executeErr   error
	fetchErr     error
	connectivity error
	opened       int
	closed       int
}

// ExecutedQuery captures a statement, its parameters and the access mode it ran with.
type ExecutedQuery struct {
	Query  string
	Params map[string]any
	Mode   AccessMode
}

// NewMemoryDriver instantiates an empty driver.
func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{}
}

// WithConnectError makes subsequent Connect calls fail with err.
func (m *MemoryDriver) WithConnectError(err error) *MemoryDriver {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectErr = err
	return m
}

// WithExecuteError makes subsequent Execute calls fail with err.
func (m *MemoryDriver) WithExecuteError(err error) *MemoryDriver {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executeErr = err
	return m
}

// WithFetchError makes FetchAll fail with err once the scripted batches are drained.
func (m *MemoryDriver) WithFetchError(err error) *MemoryDriver {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return the supplied error.
func (m *MemoryDriver) WithConnectivityError(err error) *MemoryDriver {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// PushResult appends a result, delivered batch by batch, for the next executed query.
func (m *MemoryDriver) PushResult(batches ...[]Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, batches)
}

// PushRecords appends a single-batch result.
func (m *MemoryDriver) PushRecords(records ...Record) {
	m.PushResult(records)
}

func (m *MemoryDriver) Connect(_ context.Context, mode AccessMode) (Conn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connectErr != nil {
		return nil, m.connectErr
	}
	m.opened++
	return &memoryConn{driver: m, mode: mode}, nil
}

func (m *MemoryDriver) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryDriver) Close(context.Context) error {
	return nil
}

// Executed returns a snapshot of executed queries.
func (m *MemoryDriver) Executed() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.executed...)
}

// OpenConnections reports connections handed out and not yet closed.
func (m *MemoryDriver) OpenConnections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened - m.closed
}

// Connections reports how many connections were opened in total.
func (m *MemoryDriver) Connections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened
}

type memoryConn struct {
	driver  *MemoryDriver
	mode    AccessMode
	batches [][]Record
	closed  bool
}

func (c *memoryConn) Execute(_ context.Context, query string, params map[string]any) error {
	m := c.driver
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.executeErr != nil {
		return m.executeErr
	}

	m.executed = append(m.executed, ExecutedQuery{
		Query:  query,
		Params: cloneMap(params),
		Mode:   c.mode,
	})

	if len(m.results) > 0 {
		c.batches = m.results[0]
		m.results = m.results[1:]
	}
	return nil
}

func (c *memoryConn) FetchAll(context.Context) ([]Record, error) {
	if len(c.batches) > 0 {
		batch := c.batches[0]
		c.batches = c.batches[1:]
		return batch, nil
	}

	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()
	if c.driver.fetchErr != nil {
		return nil, c.driver.fetchErr
	}
	return nil, ErrEndOfStream
}

func (c *memoryConn) Close(context.Context) error {
	if c.closed {
		return nil
	}
	c.closed = true

	c.driver.mu.Lock()
	defer c.driver.mu.Unlock()
	c.driver.closed++
	return nil
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
