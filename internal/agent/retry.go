package agent

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

type controllerState int

const (
	stateAttempting controllerState = iota
	stateSucceeded
	stateExhausted
	stateFailedFatal
)

type dispatchFunc func(ctx context.Context, cred Credential, method, path string, body []byte) (Outcome, error)

// Controller drives the retry state machine around the Dispatcher. Each
// attempt is a full independent dispatch, so a retry carries a fresh nonce,
// timestamp and signature. Transport errors and transient API errors are
// retried with capped, jittered exponential backoff; everything else fails
// fatally on the first attempt.
type Controller struct {
	dispatch    dispatchFunc
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration

	// test seam; production uses a context-aware sleep
	wait func(ctx context.Context, d time.Duration) error

	// observation hook for metrics, may be nil
	onAttempt func(err error)
}

func NewController(dispatch dispatchFunc, maxAttempts int, baseDelay, maxDelay time.Duration) *Controller {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 250 * time.Millisecond
	}
	if maxDelay < baseDelay {
		maxDelay = 5 * time.Second
	}
	return &Controller{
		dispatch:    dispatch,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		maxDelay:    maxDelay,
		wait:        sleepCtx,
	}
}

// OnAttempt registers an observer called once per physical attempt with the
// attempt's classified error (nil on success).
func (c *Controller) OnAttempt(fn func(err error)) { c.onAttempt = fn }

// Do runs attempts until a terminal state is reached. The returned error
// always carries the attempt count and the last classified failure.
func (c *Controller) Do(ctx context.Context, cred Credential, method, path string, body []byte) (Outcome, error) {
	state := stateAttempting
	attempts := 0
	var out Outcome
	var lastErr error

	for state == stateAttempting {
		if err := ctx.Err(); err != nil {
			return Outcome{}, fmt.Errorf("aborted after %d attempt(s): %w", attempts, err)
		}

		attempts++
		out, lastErr = c.dispatch(ctx, cred, method, path, body)
		if c.onAttempt != nil {
			c.onAttempt(lastErr)
		}

		switch {
		case lastErr == nil:
			state = stateSucceeded
		case !isRetryable(lastErr):
			state = stateFailedFatal
		case attempts >= c.maxAttempts:
			state = stateExhausted
		default:
			if err := c.wait(ctx, c.backoff(attempts)); err != nil {
				return Outcome{}, fmt.Errorf("aborted after %d attempt(s): %w", attempts, err)
			}
		}
	}

	switch state {
	case stateSucceeded:
		return out, nil
	case stateFailedFatal:
		return Outcome{}, fmt.Errorf("after %d attempt(s): %w", attempts, lastErr)
	default:
		return Outcome{}, fmt.Errorf("retries exhausted after %d attempt(s): %w", attempts, lastErr)
	}
}

// backoff doubles the delay per attempt up to the cap and applies equal
// jitter: half deterministic floor, half uniform random, so concurrent
// clients do not retry in lockstep.
func (c *Controller) backoff(attempt int) time.Duration {
	d := c.baseDelay << (attempt - 1)
	if d <= 0 || d > c.maxDelay {
		d = c.maxDelay
	}
	half := d / 2
	if half <= 0 {
		return d
	}
	return half + time.Duration(rand.Int63n(int64(half)+1))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
