package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countingJob struct {
	counter *int64
	fail    bool
}

type countingResult struct {
	err error
}

func (r countingResult) GetError() error { return r.err }

func (j countingJob) Execute(_ context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	if j.fail {
		return countingResult{err: errors.New("job failed")}
	}
	return countingResult{}
}

func TestPool_RunsAllJobs(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	var executed int64
	for i := 0; i < 20; i++ {
		pool.Submit(countingJob{counter: &executed})
	}

	results := pool.Wait()

	if got := atomic.LoadInt64(&executed); got != 20 {
		t.Errorf("Expected 20 executions, got %d", got)
	}
	if len(results) != 20 {
		t.Errorf("Expected 20 results, got %d", len(results))
	}
}

func TestPool_CollectsFailures(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var executed int64
	pool.Submit(countingJob{counter: &executed, fail: true})
	pool.Submit(countingJob{counter: &executed})

	results := pool.Wait()

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("Expected 1 failure, got %d", failures)
	}
}

func TestPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	pool := NewPool(0)
	pool.Start()

	var executed int64
	pool.Submit(countingJob{counter: &executed})

	if results := pool.Wait(); len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}
