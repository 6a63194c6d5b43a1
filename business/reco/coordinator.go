package reco

import (
	"context"
	"sync"
	"time"
)

// Regeneration triggers.
const (
	TriggerRegistration = "registration"
	TriggerPurchase     = "purchase"
	TriggerRefresh      = "refresh"
)

// RunFunc executes one regeneration run for a user.
type RunFunc func(ctx context.Context, userID uint, trigger string)

type flight struct {
	dirty     bool
	retrigger string
}

// Coordinator serializes regeneration runs per user. At most one run is in
// flight per user; triggers arriving mid-run mark the user dirty and the
// finishing run immediately starts one follow-up, so many rapid triggers
// coalesce into a single rerun that sees the latest behavior state.
type Coordinator struct {
	mu         sync.Mutex
	inFlight   map[uint]*flight
	run        RunFunc
	runTimeout time.Duration
	wg         sync.WaitGroup
}

func NewCoordinator(run RunFunc, runTimeout time.Duration) *Coordinator {
	return &Coordinator{
		inFlight:   make(map[uint]*flight),
		run:        run,
		runTimeout: runTimeout,
	}
}

// Trigger schedules a regeneration run for the user. It never blocks the
// caller: the run executes on its own goroutine with a detached context.
func (c *Coordinator) Trigger(userID uint, trigger string) {
	c.mu.Lock()
	if f, ok := c.inFlight[userID]; ok {
		f.dirty = true
		f.retrigger = trigger
		c.mu.Unlock()
		return
	}
	c.inFlight[userID] = &flight{}
	c.mu.Unlock()

	c.wg.Add(1)
	go c.loop(userID, trigger)
}

func (c *Coordinator) loop(userID uint, trigger string) {
	defer c.wg.Done()

	for {
		c.runOnce(userID, trigger)

		c.mu.Lock()
		f := c.inFlight[userID]
		if f != nil && f.dirty {
			f.dirty = false
			trigger = f.retrigger
			c.mu.Unlock()
			continue
		}
		delete(c.inFlight, userID)
		c.mu.Unlock()
		return
	}
}

func (c *Coordinator) runOnce(userID uint, trigger string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.runTimeout)
	defer cancel()
	c.run(ctx, userID, trigger)
}

// Wait blocks until every in-flight run has finished. Used on shutdown.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}
