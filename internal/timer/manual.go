package timer

import (
	"sync"
	"time"
)

// ManualTicker is a TickerFunc source driven by hand. Each started timer
// gets its own channel; Tick feeds the most recent one.
type ManualTicker struct {
	mu    sync.Mutex
	chans []chan time.Time
}

func (m *ManualTicker) New() (<-chan time.Time, func()) {
	c := make(chan time.Time)
	m.mu.Lock()
	m.chans = append(m.chans, c)
	m.mu.Unlock()
	return c, func() {}
}

// Tick delivers n ticks to the latest timer, blocking until each one has
// been received.
func (m *ManualTicker) Tick(n int) {
	m.mu.Lock()
	c := m.chans[len(m.chans)-1]
	m.mu.Unlock()
	for i := 0; i < n; i++ {
		c <- time.Now()
	}
}

// Started reports how many timers have been started.
func (m *ManualTicker) Started() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chans)
}
