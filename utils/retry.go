package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// Retrier holds the parameters for the retry strategy.
type Retrier struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      time.Duration // extra random delay added per wait, 0 to disable
	Logger      *Logger
}

// Do executes fn, retrying with exponential back-off (plus jitter) until it
// succeeds or MaxAttempts is exhausted.
func (r *Retrier) Do(operationName string, fn func() error) error {
	var lastErr error
	delay := r.BaseDelay

	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < r.MaxAttempts {
			wait := delay
			if r.Jitter > 0 {
				wait += time.Duration(rand.Int63n(int64(r.Jitter)))
			}
			r.Logger.Warn("[retry] %s failed (attempt %d/%d): %v — retrying in %v",
				operationName, attempt, r.MaxAttempts, lastErr, wait)
			time.Sleep(wait)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, r.MaxAttempts, lastErr)
}
