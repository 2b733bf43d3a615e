package client

import (
	"context"
	"sync"
	"time"

	"hostella/internal/utils"
)

// Poller refreshes client state on a fixed interval. Pausing (app goes
// to background) suspends ticks; resuming refetches immediately so the
// user never looks at stale data. A failed tick is logged and retried
// on the next one.
type Poller struct {
	interval time.Duration
	fetch    func(context.Context) error

	mu      sync.Mutex
	paused  bool
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}

	// resume ticks run outside the loop goroutine; Stop waits for them
	resumes sync.WaitGroup
}

func NewPoller(interval time.Duration, fetch func(context.Context) error) *Poller {
	return &Poller{interval: interval, fetch: fetch}
}

// Start begins ticking. Calling Start on a running or stopped poller is
// a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.ctx = ctx
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	p.tick(ctx)
	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.mu.Lock()
			paused := p.paused
			p.mu.Unlock()
			if !paused {
				p.tick(ctx)
			}
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := p.fetch(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		utils.LogEvent("", "poller", "tick", "refresh failed: "+err.Error())
	}
}

// Pause suspends ticks without tearing the loop down.
func (p *Poller) Pause() {
	p.mu.Lock()
	p.paused = true
	p.mu.Unlock()
}

// Resume lifts a pause and refreshes immediately.
func (p *Poller) Resume() {
	p.mu.Lock()
	if p.stopped || p.cancel == nil || !p.paused {
		p.mu.Unlock()
		return
	}
	p.paused = false
	ctx := p.ctx
	p.resumes.Add(1)
	p.mu.Unlock()

	defer p.resumes.Done()
	p.tick(ctx)
}

// Stop tears the poller down. Idempotent; no tick runs after Stop
// returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	p.resumes.Wait()
}
