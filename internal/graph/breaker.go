package graph

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerSettings configures the circuit breaker guarding connection acquisition.
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerSettings returns settings tuned for a single graph backend.
func DefaultBreakerSettings(name string) BreakerSettings {
	return BreakerSettings{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          15 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// BreakerDriver fails Connect fast while the database keeps refusing
// connections. Everything else is delegated to the wrapped Driver.
type BreakerDriver struct {
	Driver
	cb *gobreaker.CircuitBreaker
}

// NewBreakerDriver wraps inner with a circuit breaker.
func NewBreakerDriver(inner Driver, s BreakerSettings, logger *zap.Logger) *BreakerDriver {
	if logger == nil {
		logger = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= s.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("graph circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			// a caller giving up is not a database fault
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &BreakerDriver{Driver: inner, cb: cb}
}

func (b *BreakerDriver) Connect(ctx context.Context, mode AccessMode) (Conn, error) {
	conn, err := b.cb.Execute(func() (any, error) {
		return b.Driver.Connect(ctx, mode)
	})
	if err != nil {
		return nil, err
	}
	return conn.(Conn), nil
}

// State exposes the breaker state for health reporting.
func (b *BreakerDriver) State() gobreaker.State {
	return b.cb.State()
}
