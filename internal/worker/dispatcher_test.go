package worker

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestJobsForOneUserRunInOrder(t *testing.T) {
	d := NewDispatcher(DispatcherConfig{MinWorkers: 2, MaxWorkers: 4, QueueSize: 128})

	const jobs = 50
	var mu sync.Mutex
	var order []int
	var inFlight int32
	var wg sync.WaitGroup

	for i := 0; i < jobs; i++ {
		i := i
		wg.Add(1)
		job := Job{
			UserID: 1,
			Run: func() {
				defer wg.Done()
				if n := atomic.AddInt32(&inFlight, 1); n != 1 {
					t.Errorf("job %d: %d jobs in flight for one user", i, n)
				}
				time.Sleep(time.Millisecond)
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				atomic.AddInt32(&inFlight, -1)
			},
		}
		if err := d.Dispatch(job); err != nil {
			t.Fatalf("dispatch job %d: %v", i, err)
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("jobs did not finish in time")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != jobs {
		t.Fatalf("expected %d jobs, ran %d", jobs, len(order))
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("job %d ran at position %d: %v", got, i, order)
		}
	}
}

func TestDistinctUsersRunConcurrently(t *testing.T) {
	d := NewDispatcher(DispatcherConfig{MinWorkers: 2, MaxWorkers: 4, QueueSize: 16})

	release := make(chan struct{})
	firstDone := make(chan struct{})

	// User 1's job cannot finish until user 2's job has run. If users were
	// serialized behind each other this would deadlock.
	err := d.Dispatch(Job{UserID: 1, Run: func() {
		select {
		case <-release:
			close(firstDone)
		case <-time.After(5 * time.Second):
		}
	}})
	if err != nil {
		t.Fatalf("dispatch first: %v", err)
	}
	err = d.Dispatch(Job{UserID: 2, Run: func() {
		close(release)
	}})
	if err != nil {
		t.Fatalf("dispatch second: %v", err)
	}

	select {
	case <-firstDone:
	case <-time.After(5 * time.Second):
		t.Fatal("users did not run concurrently")
	}
}

func TestDispatchRejectsInvalidJobs(t *testing.T) {
	d := NewDispatcher(DispatcherConfig{MinWorkers: 1, MaxWorkers: 1})

	if err := d.Dispatch(Job{UserID: 1}); err == nil {
		t.Fatal("expected error for nil Run")
	}
	if err := d.Dispatch(Job{UserID: 0, Run: func() {}}); err == nil {
		t.Fatal("expected error for missing user id")
	}
}

func TestLaterJobSeesEarlierJobsEffects(t *testing.T) {
	d := NewDispatcher(DispatcherConfig{MinWorkers: 1, MaxWorkers: 2})

	var state []string
	var mu sync.Mutex
	done := make(chan struct{})

	d.Dispatch(Job{UserID: 3, Run: func() {
		mu.Lock()
		state = append(state, "open dialog")
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
	}})
	d.Dispatch(Job{UserID: 3, Run: func() {
		mu.Lock()
		state = append(state, "dialog reply")
		mu.Unlock()
		close(done)
	}})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs did not finish in time")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(state) != 2 || state[0] != "open dialog" || state[1] != "dialog reply" {
		t.Fatalf("jobs ran out of order: %v", state)
	}
}
