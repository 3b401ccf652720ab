// Package dataflow provides small channel-based pipeline stages: a source,
// a concurrent mapping stage with retry, and a terminal consumer. Used for
// bulk work such as search reindexing.
package dataflow

import (
	"context"
	"sync"
	"time"
)

// From emits the given items on the returned channel. The channel is closed
// once all items are sent or the context is canceled.
func From(ctx context.Context, items ...interface{}) <-chan interface{} {
	out := make(chan interface{})
	go func() {
		defer close(out)
		for _, item := range items {
			select {
			case out <- item:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// FromSlice is From for an already-built slice.
func FromSlice(ctx context.Context, items []interface{}) <-chan interface{} {
	return From(ctx, items...)
}

// Map applies fn to every item from in, forwarding results on the returned
// channel. Workers, output buffering, and retry are controlled by options.
// An item that still fails after the retry budget is handed to the error
// handler if one is set, and dropped either way.
func Map(ctx context.Context, in <-chan interface{}, fn func(interface{}) (interface{}, error), opts ...Option) <-chan interface{} {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	out := make(chan interface{}, cfg.bufferSize)
	var wg sync.WaitGroup
	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go func() {
			defer wg.Done()
			for item := range in {
				result, err := applyWithRetry(ctx, cfg, fn, item)
				if err != nil {
					if cfg.errorHandler != nil {
						cfg.errorHandler(err)
					}
					continue
				}
				select {
				case out <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ForEach consumes in, calling fn on every item. The first fn error is
// returned after the channel drains so upstream workers are not blocked.
func ForEach(ctx context.Context, in <-chan interface{}, fn func(interface{}) error) error {
	var firstErr error
	for item := range in {
		if firstErr != nil {
			continue
		}
		select {
		case <-ctx.Done():
			firstErr = ctx.Err()
			continue
		default:
		}
		if err := fn(item); err != nil {
			firstErr = err
		}
	}
	return firstErr
}

// applyWithRetry runs fn up to 1+maxRetries times, sleeping per the backoff
// schedule between attempts.
func applyWithRetry(ctx context.Context, cfg *config, fn func(interface{}) (interface{}, error), item interface{}) (interface{}, error) {
	var result interface{}
	var err error
	for attempt := 0; attempt <= cfg.maxRetries; attempt++ {
		if attempt > 0 && cfg.backoff != nil {
			select {
			case <-time.After(cfg.backoff(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		result, err = fn(item)
		if err == nil {
			return result, nil
		}
	}
	return nil, err
}
