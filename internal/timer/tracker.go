// Package timer tracks time spent on tasks with one ticker per running task.
package timer

import (
	"sync"
	"time"
)

// TickFunc is called once per tick for a running task. Returning an error
// stops that task's timer.
type TickFunc func(id int) error

// TickerFunc produces a tick channel and a function releasing it.
type TickerFunc func() (<-chan time.Time, func())

// EverySecond is the production ticker.
func EverySecond() (<-chan time.Time, func()) {
	t := time.NewTicker(time.Second)
	return t.C, t.Stop
}

type run struct {
	done chan struct{}
}

// Tracker owns the active timers keyed by task id. A task is either idle
// (no entry) or running (exactly one entry).
type Tracker struct {
	mu      sync.Mutex
	active  map[int]*run
	onTick  TickFunc
	newTick TickerFunc
	wg      sync.WaitGroup
}

func NewTracker(onTick TickFunc, newTick TickerFunc) *Tracker {
	if newTick == nil {
		newTick = EverySecond
	}
	return &Tracker{active: make(map[int]*run), onTick: onTick, newTick: newTick}
}

// Toggle stops a running timer or starts an idle one and reports whether
// the timer is now running.
func (t *Tracker) Toggle(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.active[id]; ok {
		t.stopLocked(id)
		return false
	}
	t.startLocked(id)
	return true
}

// Start runs the timer for id. Starting a running timer does nothing.
func (t *Tracker) Start(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.active[id]; ok {
		return
	}
	t.startLocked(id)
}

// Stop halts the timer for id. Once Stop returns no further tick for id is
// delivered.
func (t *Tracker) Stop(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked(id)
}

// StopAll halts every timer and waits for their goroutines to exit.
func (t *Tracker) StopAll() {
	t.mu.Lock()
	for id := range t.active {
		t.stopLocked(id)
	}
	t.mu.Unlock()
	t.wg.Wait()
}

func (t *Tracker) Running(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.active[id]
	return ok
}

// Active returns the ids with a running timer.
func (t *Tracker) Active() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]int, 0, len(t.active))
	for id := range t.active {
		ids = append(ids, id)
	}
	return ids
}

func (t *Tracker) startLocked(id int) {
	r := &run{done: make(chan struct{})}
	t.active[id] = r
	ticks, release := t.newTick()
	t.wg.Add(1)
	go t.loop(id, r, ticks, release)
}

func (t *Tracker) stopLocked(id int) {
	r, ok := t.active[id]
	if !ok {
		return
	}
	delete(t.active, id)
	close(r.done)
}

func (t *Tracker) loop(id int, r *run, ticks <-chan time.Time, release func()) {
	defer t.wg.Done()
	defer release()
	for {
		select {
		case <-r.done:
			return
		case <-ticks:
			if !t.deliver(id, r) {
				return
			}
		}
	}
}

// deliver applies one tick while holding the lock, so a concurrent Stop
// either happens before the tick is applied or waits for it to finish.
func (t *Tracker) deliver(id int, r *run) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active[id] != r {
		return false
	}
	if err := t.onTick(id); err != nil {
		t.stopLocked(id)
		return false
	}
	return true
}
