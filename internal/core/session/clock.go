package session

import (
	"sync"
	"time"
)

// Clock delivers ticks while a countdown is active.
type Clock interface {
	Start(tick func())
	Stop()
}

// AlertPlayer is notified once per countdown overflow. Implementations must
// return without waiting for playback.
type AlertPlayer interface {
	PhaseCompleted(event Event)
}

// TickerClock calls tick once per interval from its own goroutine.
type TickerClock struct {
	mu       sync.Mutex
	interval time.Duration
	stopCh   chan struct{}
}

// NewTickerClock creates a clock; a non-positive interval means one second.
func NewTickerClock(interval time.Duration) *TickerClock {
	if interval <= 0 {
		interval = time.Second
	}
	return &TickerClock{interval: interval}
}

// Start launches the ticking loop. Starting a running clock restarts it.
func (clock *TickerClock) Start(tick func()) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if clock.stopCh != nil {
		close(clock.stopCh)
	}
	stopCh := make(chan struct{})
	clock.stopCh = stopCh
	go clock.run(stopCh, tick)
}

// Stop terminates the ticking loop without waiting for it to exit.
func (clock *TickerClock) Stop() {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if clock.stopCh == nil {
		return
	}
	close(clock.stopCh)
	clock.stopCh = nil
}

func (clock *TickerClock) run(stopCh <-chan struct{}, tick func()) {
	ticker := time.NewTicker(clock.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			select {
			case <-stopCh:
				return
			default:
			}
			tick()
		}
	}
}

type noopClock struct{}

func (noopClock) Start(func()) {}
func (noopClock) Stop()        {}

type noopAlert struct{}

func (noopAlert) PhaseCompleted(Event) {}
