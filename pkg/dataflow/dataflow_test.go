package dataflow

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMapRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessAfterRetries", func(t *testing.T) {
		var attempts int32
		fn := func(msg interface{}) (interface{}, error) {
			if atomic.AddInt32(&attempts, 1) < 3 {
				return nil, errors.New("fail")
			}
			return "success", nil
		}

		src := From(ctx, "item1")
		res := Map(ctx, src, fn, WithRetry(3, ConstantBackoff(time.Millisecond)))

		var results []interface{}
		err := ForEach(ctx, res, func(msg interface{}) error {
			results = append(results, msg)
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, []interface{}{"success"}, results)
		assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	})

	t.Run("ItemDroppedAfterBudgetExhausted", func(t *testing.T) {
		var attempts int32
		var handled int32
		fn := func(msg interface{}) (interface{}, error) {
			atomic.AddInt32(&attempts, 1)
			return nil, errors.New("permanent fail")
		}

		src := From(ctx, "item1")
		res := Map(ctx, src, fn,
			WithRetry(3, ConstantBackoff(time.Millisecond)),
			WithErrorHandler(func(error) bool {
				atomic.AddInt32(&handled, 1)
				return true
			}),
		)

		var results []interface{}
		err := ForEach(ctx, res, func(msg interface{}) error {
			results = append(results, msg)
			return nil
		})

		assert.NoError(t, err)
		assert.Empty(t, results)
		// initial attempt plus three retries
		assert.Equal(t, int32(4), atomic.LoadInt32(&attempts))
		assert.Equal(t, int32(1), atomic.LoadInt32(&handled))
	})
}

func TestMapWorkers(t *testing.T) {
	ctx := context.Background()

	items := make([]interface{}, 50)
	for i := range items {
		items[i] = i
	}

	src := FromSlice(ctx, items)
	res := Map(ctx, src, func(msg interface{}) (interface{}, error) {
		return msg.(int) * 2, nil
	}, WithWorkers(4), WithBufferSize(8))

	sum := 0
	err := ForEach(ctx, res, func(msg interface{}) error {
		sum += msg.(int)
		return nil
	})

	assert.NoError(t, err)
	// 2 * (0 + 1 + ... + 49)
	assert.Equal(t, 2450, sum)
}

func TestForEachPropagatesError(t *testing.T) {
	ctx := context.Background()

	src := From(ctx, 1, 2, 3)
	boom := errors.New("boom")
	err := ForEach(ctx, src, func(msg interface{}) error {
		if msg.(int) == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestExponentialBackoff(t *testing.T) {
	backoff := ExponentialBackoff(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, backoff(1))
	assert.Equal(t, 20*time.Millisecond, backoff(2))
	assert.Equal(t, 40*time.Millisecond, backoff(3))
	assert.Equal(t, 80*time.Millisecond, backoff(4))
}
