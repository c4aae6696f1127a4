package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolKeepsInputOrder(t *testing.T) {
	pool := NewPool[int, int](4, func(ctx context.Context, n int) (int, error) {
		return n * n, nil
	})

	inputs := []int{1, 2, 3, 4, 5, 6, 7, 8}
	tasks := pool.Execute(context.Background(), inputs)

	require.Len(t, tasks, len(inputs))
	for i, task := range tasks {
		assert.Equal(t, inputs[i], task.Input)
		assert.Equal(t, inputs[i]*inputs[i], task.Result)
		assert.NoError(t, task.Err)
	}
}

func TestPoolReportsErrors(t *testing.T) {
	boom := errors.New("boom")
	pool := NewPool[int, int](2, func(ctx context.Context, n int) (int, error) {
		if n%2 == 0 {
			return 0, boom
		}
		return n, nil
	})

	tasks := pool.Execute(context.Background(), []int{1, 2, 3})
	assert.NoError(t, tasks[0].Err)
	assert.ErrorIs(t, tasks[1].Err, boom)
	assert.NoError(t, tasks[2].Err)
}

func TestPoolMinimumWorkerCount(t *testing.T) {
	pool := NewPool[int, int](0, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	tasks := pool.Execute(context.Background(), []int{42})
	require.Len(t, tasks, 1)
	assert.Equal(t, 42, tasks[0].Result)
}

func TestPoolCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool[int, int](2, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	tasks := pool.Execute(ctx, []int{1, 2, 3})
	assert.Len(t, tasks, 3)
}
