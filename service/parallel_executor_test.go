package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drace-lint/drace/domain"
)

func TestParallelExecutor_RunsAllTasks(t *testing.T) {
	executor := NewParallelExecutor()

	var count int64
	tasks := make([]domain.ExecutableTask, 0, 10)
	for i := 0; i < 10; i++ {
		tasks = append(tasks, NewSimpleTask("task", true, func(ctx context.Context) (interface{}, error) {
			atomic.AddInt64(&count, 1)
			return nil, nil
		}))
	}

	require.NoError(t, executor.Execute(context.Background(), tasks))
	assert.Equal(t, int64(10), atomic.LoadInt64(&count))
}

func TestParallelExecutor_SkipsDisabledTasks(t *testing.T) {
	executor := NewParallelExecutor()

	var count int64
	tasks := []domain.ExecutableTask{
		NewSimpleTask("on", true, func(ctx context.Context) (interface{}, error) {
			atomic.AddInt64(&count, 1)
			return nil, nil
		}),
		NewSimpleTask("off", false, func(ctx context.Context) (interface{}, error) {
			atomic.AddInt64(&count, 1)
			return nil, nil
		}),
	}

	require.NoError(t, executor.Execute(context.Background(), tasks))
	assert.Equal(t, int64(1), atomic.LoadInt64(&count))
}

func TestParallelExecutor_PropagatesErrors(t *testing.T) {
	executor := NewParallelExecutor()

	tasks := []domain.ExecutableTask{
		NewSimpleTask("ok", true, func(ctx context.Context) (interface{}, error) {
			return nil, nil
		}),
		NewSimpleTask("bad", true, func(ctx context.Context) (interface{}, error) {
			return nil, errors.New("exploded")
		}),
	}

	err := executor.Execute(context.Background(), tasks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestParallelExecutor_RespectsConcurrencyLimit(t *testing.T) {
	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(2)

	var mu sync.Mutex
	var active, peak int

	tasks := make([]domain.ExecutableTask, 0, 8)
	for i := 0; i < 8; i++ {
		tasks = append(tasks, NewSimpleTask("task", true, func(ctx context.Context) (interface{}, error) {
			mu.Lock()
			active++
			if active > peak {
				peak = active
			}
			mu.Unlock()

			time.Sleep(10 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			return nil, nil
		}))
	}

	require.NoError(t, executor.Execute(context.Background(), tasks))
	assert.LessOrEqual(t, peak, 2)
}

func TestParallelExecutor_EmptyTaskList(t *testing.T) {
	assert.NoError(t, NewParallelExecutor().Execute(context.Background(), nil))
}

func TestSimpleTask(t *testing.T) {
	task := NewSimpleTask("named", true, nil)
	assert.Equal(t, "named", task.Name())
	assert.True(t, task.IsEnabled())

	_, err := task.Execute(context.Background())
	assert.Error(t, err, "a task without a function fails loudly")
}
