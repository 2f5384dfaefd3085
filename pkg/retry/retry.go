// Package retry provides bounded retry with a fixed inter-attempt delay.
package retry

import (
	"fmt"
	"log/slog"
	"time"
)

// Operation represents an operation that can be retried
type Operation func() error

// Policy defines the configuration for retry behavior
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Sleep       func(time.Duration) // injectable for tests; defaults to time.Sleep
}

// DefaultPolicy returns the standard fetch/delivery retry policy
func DefaultPolicy() *Policy {
	return &Policy{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
	}
}

// Do executes an operation, retrying failures up to MaxAttempts with a
// fixed delay between attempts. No delay follows the final attempt.
func (p *Policy) Do(operationName string, op Operation) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err := op()
		if err == nil {
			if attempt > 1 {
				slog.Info("Operation succeeded after retry",
					"operation", operationName,
					"attempt", attempt)
			}
			return nil
		}

		lastErr = err
		slog.Warn("Attempt failed",
			"operation", operationName,
			"attempt", attempt,
			"maxAttempts", p.MaxAttempts,
			"error", err)

		if attempt < p.MaxAttempts {
			sleep(p.Delay)
		}
	}

	return fmt.Errorf("operation %s failed after %d attempts: %w", operationName, p.MaxAttempts, lastErr)
}
