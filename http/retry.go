package http

import (
	"fmt"
	"math"
	"time"

	"github.com/workflowkit/httpcore/logger"
)

// RetryConfig holds the retry policy for one operation.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt.
	// Zero means exactly one attempt.
	MaxRetries int
	// InitialDelay is the pause before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the backoff growth.
	MaxDelay time.Duration
	// BackoffMultiplier scales the delay after each retry. Must be >= 1.
	BackoffMultiplier float64
	// Interactive enables asking the continuation callback once the
	// budget is exhausted, instead of failing outright.
	Interactive bool
}

// DefaultRetryConfig returns the standard policy: 3 retries, 1s initial
// delay, 30s cap, doubling backoff, interactive.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		InitialDelay:      1 * time.Second,
		MaxDelay:          30 * time.Second,
		BackoffMultiplier: 2.0,
		Interactive:       true,
	}
}

// RetryResult reports how an operation eventually succeeded.
// SucceededOnFirstAttempt is true exactly when RetryCount is zero.
type RetryResult[T any] struct {
	Result                  T
	RetryCount              int
	SucceededOnFirstAttempt bool
}

// ContinueFunc decides whether to keep retrying after the budget is
// exhausted with a retryable failure. The CLI layer implements it with an
// interactive prompt; non-interactive callers leave it nil, which means
// "always stop". The engine itself stays UI-agnostic.
type ContinueFunc func(operationName string, attempts int, lastErr error) bool

// Retrier drives a bounded, synchronous retry loop around an arbitrary
// operation. Attempts run sequentially on the calling goroutine and the
// delay between them blocks that same goroutine; there is no background
// timer. A Retrier carries no per-call state and may be reused, but two
// interactive sessions must not run concurrently: interleaved prompts
// would be meaningless to an operator.
type Retrier struct {
	config      RetryConfig
	log         logger.Logger
	onExhausted ContinueFunc
	sleep       func(time.Duration)
}

// RetrierOption customizes a Retrier.
type RetrierOption func(*Retrier)

// WithContinueFunc installs the exhaustion decision callback.
func WithContinueFunc(fn ContinueFunc) RetrierOption {
	return func(r *Retrier) {
		r.onExhausted = fn
	}
}

// WithSleep replaces the blocking pause between attempts. Tests use this
// to observe delays without waiting.
func WithSleep(sleep func(time.Duration)) RetrierOption {
	return func(r *Retrier) {
		r.sleep = sleep
	}
}

// NewRetrier creates a Retrier with the given policy.
func NewRetrier(config RetryConfig, log logger.Logger, opts ...RetrierOption) *Retrier {
	r := &Retrier{
		config: config,
		log:    log,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retry runs operation until it succeeds or fails terminally.
//
// Classification: transport failures, 5xx, and 429 are retryable; any
// other failure returns immediately with zero delay. On exhausting the
// budget with a retryable failure, an interactive Retrier asks its
// continuation callback before giving up; a yes grants another MaxRetries
// round (one attempt when MaxRetries is zero). The terminal error
// aggregates the operation name, the attempt count, and the last cause.
//
// On success at attempt k the result carries RetryCount == k, so
// SucceededOnFirstAttempt and RetryCount can never disagree.
func Retry[T any](r *Retrier, operationName string, operation func() (T, error)) (RetryResult[T], error) {
	var zero RetryResult[T]

	budget := r.config.MaxRetries
	attempt := 0

	for {
		result, err := operation()
		if err == nil {
			if attempt > 0 {
				r.log.Info().
					Str("operation", operationName).
					Int("retries", attempt).
					Msg("Operation succeeded after retries")
			}
			return RetryResult[T]{
				Result:                  result,
				RetryCount:              attempt,
				SucceededOnFirstAttempt: attempt == 0,
			}, nil
		}

		if !IsRetryable(err) {
			r.log.Warn().
				Str("operation", operationName).
				Err(err).
				Msg("Operation failed with terminal error")
			return zero, err
		}

		attempts := attempt + 1
		if attempt >= budget {
			if r.config.Interactive && r.onExhausted != nil && r.onExhausted(operationName, attempts, err) {
				budget += max(r.config.MaxRetries, 1)
			} else {
				r.log.Warn().
					Str("operation", operationName).
					Int("attempts", attempts).
					Err(err).
					Msg("Operation failed, giving up")
				return zero, fmt.Errorf("%s failed after %d attempts: %w", operationName, attempts, err)
			}
		}

		delay := r.delayFor(attempts)
		r.log.Warn().
			Str("operation", operationName).
			Int("attempt", attempts).
			Int("max_attempts", budget+1).
			Dur("delay", delay).
			Err(err).
			Msg("Operation failed, retrying")
		r.sleep(delay)
		attempt++
	}
}

// delayFor computes the pause before retry n (1-based):
// min(InitialDelay * BackoffMultiplier^(n-1), MaxDelay). Non-decreasing
// in n and bounded by MaxDelay.
func (r *Retrier) delayFor(n int) time.Duration {
	multiplier := r.config.BackoffMultiplier
	if multiplier < 1 {
		multiplier = 1
	}
	delay := float64(r.config.InitialDelay) * math.Pow(multiplier, float64(n-1))
	if capped := float64(r.config.MaxDelay); delay > capped {
		delay = capped
	}
	return time.Duration(delay)
}
