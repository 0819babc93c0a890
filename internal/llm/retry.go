package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with capped exponential
// backoff and ±20% jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	sleep  func(ctx context.Context, d time.Duration) error
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg, sleep: sleepCtx}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	return r.do(ctx, func() (*Response, error) { return r.inner.Generate(ctx, req) })
}

// Stream is retried only while nothing has reached onChunk. A stream that
// fails part way is returned as is.
func (r *RetryProvider) Stream(ctx context.Context, req Request, onChunk func(string)) (*Response, error) {
	return r.do(ctx, func() (*Response, error) { return r.inner.Stream(ctx, req, onChunk) })
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

type retryVerdict int

const (
	giveUp retryVerdict = iota
	retryAlways
	retryOnce
)

// classify decides whether err is worth another attempt. Rate limits,
// unavailable providers and unclassified network errors are transient.
func classify(err error) retryVerdict {
	var (
		interrupted *ErrStreamInterrupted
		maxTok      *ErrMaxTokensExceeded
		invalid     *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return giveUp
	case errors.As(err, &interrupted), errors.As(err, &maxTok):
		return giveUp
	case errors.As(err, &invalid):
		return retryOnce
	default:
		return retryAlways
	}
}

func (r *RetryProvider) do(ctx context.Context, call func() (*Response, error)) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	usedOnce := false

	var err error
	for attempt := range attempts {
		var resp *Response
		if resp, err = call(); err == nil {
			return resp, nil
		}

		switch classify(err) {
		case giveUp:
			return nil, err
		case retryOnce:
			if usedOnce {
				return nil, err
			}
			usedOnce = true
		}

		if attempt == attempts-1 {
			break
		}
		if sleepErr := r.sleep(ctx, r.backoff(attempt, err)); sleepErr != nil {
			return nil, sleepErr
		}
	}
	return nil, err
}

// backoff honours a rate limit's RetryAfter, otherwise grows by
// Multiplier per attempt up to MaxWait.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := math.Min(
		float64(r.config.InitialWait)*math.Pow(r.config.Multiplier, float64(attempt)),
		float64(r.config.MaxWait),
	)
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(math.Max(wait, 0))
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
