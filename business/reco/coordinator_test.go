//go:build !integration

package reco

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCoordinator_RunsOncePerTrigger(t *testing.T) {
	var runs atomic.Int32

	c := NewCoordinator(func(ctx context.Context, userID uint, trigger string) {
		runs.Add(1)
	}, time.Second)

	c.Trigger(1, TriggerRegistration)
	c.Wait()

	if got := runs.Load(); got != 1 {
		t.Fatalf("runs = %d, want 1", got)
	}
}

func TestCoordinator_CoalescesRapidTriggers(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var runs atomic.Int32

	c := NewCoordinator(func(ctx context.Context, userID uint, trigger string) {
		if runs.Add(1) == 1 {
			close(started)
			<-release
		}
	}, time.Second)

	c.Trigger(1, TriggerPurchase)
	<-started

	// Many triggers landing mid-run must coalesce into a single follow-up.
	for i := 0; i < 10; i++ {
		c.Trigger(1, TriggerRefresh)
	}
	close(release)
	c.Wait()

	if got := runs.Load(); got != 2 {
		t.Fatalf("runs = %d, want 2 (initial + one coalesced rerun)", got)
	}
}

func TestCoordinator_TriggerNeverBlocks(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	c := NewCoordinator(func(ctx context.Context, userID uint, trigger string) {
		<-release
	}, time.Second)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			c.Trigger(1, TriggerRefresh)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Trigger blocked while a run was in flight")
	}
}

func TestCoordinator_SerializesPerUser(t *testing.T) {
	var inFlight atomic.Int32
	var overlap atomic.Bool

	c := NewCoordinator(func(ctx context.Context, userID uint, trigger string) {
		if inFlight.Add(1) > 1 {
			overlap.Store(true)
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
	}, time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Trigger(1, TriggerRefresh)
		}()
	}
	wg.Wait()
	c.Wait()

	if overlap.Load() {
		t.Fatal("two runs for the same user overlapped")
	}
}

func TestCoordinator_IndependentUsersRunConcurrently(t *testing.T) {
	var peak atomic.Int32
	var inFlight atomic.Int32
	barrier := make(chan struct{})

	c := NewCoordinator(func(ctx context.Context, userID uint, trigger string) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		<-barrier
		inFlight.Add(-1)
	}, time.Second)

	c.Trigger(1, TriggerRefresh)
	c.Trigger(2, TriggerRefresh)

	// Give both goroutines time to enter the run before releasing them.
	time.Sleep(50 * time.Millisecond)
	close(barrier)
	c.Wait()

	if peak.Load() != 2 {
		t.Fatalf("peak concurrent runs = %d, want 2", peak.Load())
	}
}

func TestCoordinator_RunContextCarriesDeadline(t *testing.T) {
	gotDeadline := make(chan bool, 1)

	c := NewCoordinator(func(ctx context.Context, userID uint, trigger string) {
		_, ok := ctx.Deadline()
		gotDeadline <- ok
	}, time.Second)

	c.Trigger(1, TriggerRefresh)
	c.Wait()

	if !<-gotDeadline {
		t.Fatal("run context has no deadline")
	}
}
