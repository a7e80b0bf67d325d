package parallel

import (
	"errors"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if pool.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want GOMAXPROCS", n, pool.Workers())
		}
		pool.Close()
	}
}

func TestWorkerPool_Run(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	tasks := make([]func() error, 100)
	for i := range tasks {
		tasks[i] = func() error {
			counter.Add(1)
			return nil
		}
	}

	if err := pool.Run(tasks); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_RunEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	if err := pool.Run(nil); err != nil {
		t.Errorf("Run(nil) = %v", err)
	}
}

func TestWorkerPool_RunFirstError(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	errA := errors.New("a")
	errB := errors.New("b")
	var ran atomic.Int32
	tasks := []func() error{
		func() error { ran.Add(1); return nil },
		func() error { ran.Add(1); return errA },
		func() error { ran.Add(1); return errB },
	}

	if err := pool.Run(tasks); !errors.Is(err, errA) {
		t.Errorf("Run error = %v, want %v", err, errA)
	}
	if ran.Load() != 3 {
		t.Errorf("%d tasks ran, want all 3", ran.Load())
	}
}

func TestWorkerPool_RunPanic(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	err := pool.Run([]func() error{
		func() error { panic("kaboom") },
	})
	if err == nil || !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("Run error = %v, want panic report", err)
	}

	// The worker survives the panic.
	if err := pool.Run([]func() error{func() error { return nil }}); err != nil {
		t.Errorf("Run after panic: %v", err)
	}
}

func TestWorkerPool_Range(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	seen := make([]atomic.Int32, 103)
	err := pool.Range(len(seen), 10, func(start, end int) error {
		for i := start; i < end; i++ {
			seen[i].Add(1)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := range seen {
		if seen[i].Load() != 1 {
			t.Errorf("index %d visited %d times", i, seen[i].Load())
		}
	}
}

func TestWorkerPool_Close(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool running after Close")
	}
	if err := pool.Run([]func() error{func() error { return nil }}); !errors.Is(err, ErrClosed) {
		t.Errorf("Run after Close = %v, want ErrClosed", err)
	}
}
