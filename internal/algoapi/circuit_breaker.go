// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package algoapi

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/metrics"
	"github.com/tomtom215/cinegraph/internal/models"
)

var _ Service = (*CircuitBreakerClient)(nil)

// BreakerConfig tunes the circuit breaker. Zero values take the defaults
// noted on each field.
type BreakerConfig struct {
	Name        string        // "algorithm-service"
	MaxRequests uint32        // 3 probes in half-open state
	Interval    time.Duration // 1m count window while closed
	Timeout     time.Duration // 2m open before probing
	MinRequests uint32        // 10 requests before tripping is considered
	FailureRate float64       // 0.6
}

// CircuitBreakerClient wraps a Service with a circuit breaker so an
// unreachable Algorithm Service fails fast instead of stacking timeouts.
// A rejected call is reported as a failure to the caller; it is not retried.
type CircuitBreakerClient struct {
	next Service
	cb   *gobreaker.CircuitBreaker[[]byte]
	name string
}

// NewCircuitBreakerClient wraps next.
func NewCircuitBreakerClient(next Service, cfg BreakerConfig) *CircuitBreakerClient {
	if cfg.Name == "" {
		cfg.Name = "algorithm-service"
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 3
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = 10
	}
	if cfg.FailureRate <= 0 {
		cfg.FailureRate = 0.6
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRate
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening algorithm service circuit")
			}
			return shouldTrip
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellation says nothing about upstream health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] Algorithm service state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{next: next, cb: cb, name: cfg.Name}
}

func (c *CircuitBreakerClient) execute(fn func() ([]byte, error)) ([]byte, error) {
	result, err := c.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Algorithm service request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(float64(c.cb.Counts().ConsecutiveFailures))
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(0)
	return result, nil
}

// Do executes req with circuit breaker protection.
func (c *CircuitBreakerClient) Do(ctx context.Context, req models.Request) ([]byte, error) {
	return c.execute(func() ([]byte, error) {
		return c.next.Do(ctx, req)
	})
}

// Info fetches algorithm descriptions with circuit breaker protection.
func (c *CircuitBreakerClient) Info(ctx context.Context) (map[string]string, error) {
	var info map[string]string
	_, err := c.execute(func() ([]byte, error) {
		var err error
		info, err = c.next.Info(ctx)
		return nil, err
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Ping checks connectivity with circuit breaker protection.
func (c *CircuitBreakerClient) Ping(ctx context.Context) (string, error) {
	var greeting string
	_, err := c.execute(func() ([]byte, error) {
		var err error
		greeting, err = c.next.Ping(ctx)
		return nil, err
	})
	return greeting, err
}

// State returns the current breaker state.
func (c *CircuitBreakerClient) State() gobreaker.State {
	return c.cb.State()
}

// Name returns the breaker name used in metrics.
func (c *CircuitBreakerClient) Name() string {
	return c.name
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
