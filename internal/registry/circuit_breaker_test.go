package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sony/gobreaker/v2"
)

func TestTripOnFailureRatio(t *testing.T) {
	tests := []struct {
		name   string
		counts gobreaker.Counts
		want   bool
	}{
		{"too few requests", gobreaker.Counts{Requests: 2, TotalFailures: 2}, false},
		{"below ratio", gobreaker.Counts{Requests: 10, TotalFailures: 5}, false},
		{"at ratio", gobreaker.Counts{Requests: 5, TotalFailures: 3}, true},
		{"every request failed", gobreaker.Counts{Requests: 3, TotalFailures: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tripOnFailureRatio(tt.counts); got != tt.want {
				t.Errorf("tripOnFailureRatio(%+v) = %v, want %v", tt.counts, got, tt.want)
			}
		})
	}
}

func TestCircuitBreakerFactory_PassesThroughResult(t *testing.T) {
	cb := NewCircuitBreakerFactory[string]("demo", DefaultCircuitBreakerConfig())

	got, err := cb.ExecuteWithContext(context.Background(), func(ctx context.Context) (string, error) {
		return "created", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "created" {
		t.Errorf("result = %q, want created", got)
	}
	if cb.Status() != "closed" {
		t.Errorf("status = %q, want closed", cb.Status())
	}
}

func TestCircuitBreakerFactory_WrapsFailures(t *testing.T) {
	cb := NewCircuitBreakerFactory[string]("demo", DefaultCircuitBreakerConfig())
	boom := errors.New("factory exploded")

	_, err := cb.ExecuteWithContext(context.Background(), func(ctx context.Context) (string, error) {
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped %v", err, boom)
	}
	if !strings.Contains(err.Error(), "creation breaker demo") {
		t.Errorf("error = %v, want breaker name in message", err)
	}
}

func TestCircuitBreakerFactory_OpensAfterRepeatedFailures(t *testing.T) {
	cb := NewCircuitBreakerFactory[string]("demo", DefaultCircuitBreakerConfig())
	boom := errors.New("factory exploded")

	for i := 0; i < 5; i++ {
		cb.ExecuteWithContext(context.Background(), func(ctx context.Context) (string, error) {
			return "", boom
		})
	}

	if cb.Status() != "open" {
		t.Fatalf("status = %q, want open", cb.Status())
	}

	// An open breaker fails fast without invoking the function.
	called := false
	_, err := cb.ExecuteWithContext(context.Background(), func(ctx context.Context) (string, error) {
		called = true
		return "created", nil
	})
	if err == nil {
		t.Fatal("expected fail-fast error from open breaker")
	}
	if called {
		t.Error("open breaker still invoked the function")
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want %v", err, gobreaker.ErrOpenState)
	}
}
