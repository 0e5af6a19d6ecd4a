package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
)

// A creation breaker trips once over half of recent attempts fail, so a
// factory that keeps exploding stops being retried on every request.
const (
	breakerMinRequests  = 3
	breakerFailureRatio = 0.6
)

// CircuitBreakerConfig tunes one creation breaker.
type CircuitBreakerConfig struct {
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
}

// DefaultCircuitBreakerConfig allows three probes in half-open state,
// resets counts every 10 seconds and keeps a tripped breaker open for 30
// seconds before probing again.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
	}
}

// CircuitBreakerFactory guards entity creation behind a gobreaker
// instance. The registries keep one per registered name and route every
// factory Create call through it.
type CircuitBreakerFactory[T any] struct {
	name    string
	breaker *gobreaker.CircuitBreaker[T]
}

func NewCircuitBreakerFactory[T any](name string, config CircuitBreakerConfig) *CircuitBreakerFactory[T] {
	return &CircuitBreakerFactory[T]{
		name: name,
		breaker: gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
			Name:        "factory_" + name,
			MaxRequests: config.MaxRequests,
			Interval:    config.Interval,
			Timeout:     config.Timeout,
			ReadyToTrip: tripOnFailureRatio,
		}),
	}
}

func tripOnFailureRatio(counts gobreaker.Counts) bool {
	if counts.Requests < breakerMinRequests {
		return false
	}
	ratio := float64(counts.TotalFailures) / float64(counts.Requests)
	return ratio >= breakerFailureRatio
}

// ExecuteWithContext runs fn behind the breaker. While the breaker is
// open the call fails fast without invoking fn.
func (cb *CircuitBreakerFactory[T]) ExecuteWithContext(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	result, err := cb.breaker.Execute(func() (T, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("creation breaker %s: %w", cb.name, err)
	}
	return result, nil
}

// Status reports the breaker state as closed, half-open or open.
func (cb *CircuitBreakerFactory[T]) Status() string {
	return cb.breaker.State().String()
}
