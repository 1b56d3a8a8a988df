package leaktest

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestGoroutineChecker_NoLeak(t *testing.T) {
	checker := NewGoroutineChecker(t)
	checker.Check(0)
}

func TestGoroutineChecker_WithTolerance(t *testing.T) {
	checker := NewGoroutineChecker(t)

	done := make(chan struct{})
	defer close(done)
	go func() {
		<-done
	}()

	checker.Check(1)
}

func TestGoroutineChecker_DetectsLeak(t *testing.T) {
	rec := &recorder{TB: t}
	checker := NewGoroutineChecker(rec)

	done := make(chan struct{})
	defer close(done)
	go func() {
		<-done
	}()

	checker.Check(0)
	if !rec.failed {
		t.Error("expected the parked goroutine to be reported")
	}
}

func TestCheckNoGoroutineLeak_WaitsForExit(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		// exits after fn returns; Check must wait for it
		go time.Sleep(20 * time.Millisecond)
	})
}

func TestWaitForGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(10 * time.Millisecond)
		}()
	}
	wg.Wait()

	WaitForGoroutines(t, before, time.Second)
}

// recorder captures failures instead of failing the real test
type recorder struct {
	testing.TB
	failed bool
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(string, ...any) { r.failed = true }
