package worker_pool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestWorkerPool_ResultsInSubmissionOrder(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 3, false, quietLogger())

	for i := 0; i < 6; i++ {
		pool.Submit(fmt.Sprintf("task-%d", i), func(ctx context.Context) (any, error) {
			time.Sleep(time.Duration(6-i) * time.Millisecond)
			return i * i, nil
		})
	}

	results := pool.Wait()
	require.Len(t, results, 6)
	for i, res := range results {
		assert.Equal(t, fmt.Sprintf("task-%d", i), res.ID)
		assert.Equal(t, i*i, res.Result)
		assert.NoError(t, res.Err)
	}
}

func TestWorkerPool_RespectsLimit(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 2, false, quietLogger())

	var running, peak int32
	for i := 0; i < 8; i++ {
		pool.Submit(fmt.Sprint(i), func(ctx context.Context) (any, error) {
			now := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil, nil
		})
	}

	pool.Wait()
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestWorkerPool_ErrorsAreCollected(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 2, false, quietLogger())
	boom := errors.New("boom")

	pool.Submit("ok", func(ctx context.Context) (any, error) { return "fine", nil })
	pool.Submit("bad", func(ctx context.Context) (any, error) { return nil, boom })
	pool.Submit("after", func(ctx context.Context) (any, error) { return "still runs", nil })

	results := pool.Wait()
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Equal(t, "still runs", results[2].Result)
}

func TestWorkerPool_StopOnError(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1, true, quietLogger())
	boom := errors.New("boom")

	pool.Submit("bad", func(ctx context.Context) (any, error) { return nil, boom })
	pool.Submit("skipped", func(ctx context.Context) (any, error) { return "ran", nil })

	results := pool.Wait()
	assert.ErrorIs(t, results[0].Err, boom)
	assert.ErrorIs(t, results[1].Err, context.Canceled)
	assert.Nil(t, results[1].Result)
}
