package carousel

import (
	"context"
	"sync"
	"time"

	"learnhub/internal/core"
)

// AutoAdvanceInterval is the period between automatic slide changes
const AutoAdvanceInterval = 5 * time.Second

// SlideState is the part of the controller state the auto-advance timer acts on
type SlideState struct {
	Index  int
	Total  int
	Paused bool
}

// Tick is the auto-advance transition. A paused carousel or one without
// windows is left unchanged; otherwise the index moves one window forward,
// wrapping after the last.
func Tick(s SlideState) SlideState {
	if s.Paused || s.Total <= 0 {
		return s
	}
	s.Index = NextIndex(s.Index, s.Total)
	return s
}

// Ticker is the subset of time.Ticker used by the AutoAdvancer
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers. Tests substitute a virtual clock.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

type realTicker struct {
	*time.Ticker
}

func (t realTicker) C() <-chan time.Time {
	return t.Ticker.C
}

func (realClock) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

// RealClock returns a Clock backed by the time package
func RealClock() Clock {
	return realClock{}
}

// TickTarget receives auto-advance ticks
type TickTarget interface {
	Tick(ctx context.Context)
}

// AutoAdvancer drives a TickTarget on a fixed interval. Reset cancels the
// running timer and starts a fresh period; the controller requests a reset
// whenever its window count or pause state changes.
type AutoAdvancer struct {
	target   TickTarget
	clock    Clock
	interval time.Duration
	logger   *core.Logger

	reset    chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewAutoAdvancer creates an auto-advancer for target using clock
func NewAutoAdvancer(target TickTarget, clock Clock, interval time.Duration, logger *core.Logger) *AutoAdvancer {
	if clock == nil {
		clock = RealClock()
	}
	if interval <= 0 {
		interval = AutoAdvanceInterval
	}
	if logger == nil {
		logger = core.NewNopLogger()
	}
	return &AutoAdvancer{
		target:   target,
		clock:    clock,
		interval: interval,
		logger:   logger,
		reset:    make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
}

// Start begins the tick loop. Calling Start more than once, or after Stop,
// has no effect.
func (a *AutoAdvancer) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started || a.stopped {
		return
	}
	a.started = true

	a.wg.Add(1)
	go a.loop(ctx)
}

// Reset recreates the timer. It never blocks; resets requested while one
// is pending collapse into one.
func (a *AutoAdvancer) Reset() {
	select {
	case a.reset <- struct{}{}:
	default:
	}
}

// Stop ends the tick loop and waits for it to exit
func (a *AutoAdvancer) Stop() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.stopped = true
	close(a.stopChan)
	a.mu.Unlock()

	a.wg.Wait()
}

func (a *AutoAdvancer) loop(ctx context.Context) {
	defer a.wg.Done()

	ticker := a.clock.NewTicker(a.interval)
	defer func() { ticker.Stop() }()

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("Auto-advance context cancelled")
			return
		case <-a.stopChan:
			return
		case <-a.reset:
			ticker.Stop()
			ticker = a.clock.NewTicker(a.interval)
		case <-ticker.C():
			a.target.Tick(ctx)
		}
	}
}
