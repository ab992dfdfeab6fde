// Package poller keeps a local copy of the dedication list in step with its
// authoritative store by re-reading it on a fixed cadence and on demand.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

// DefaultInterval is the re-read cadence used when Config.Interval is unset.
const DefaultInterval = 3 * time.Second

// ErrRunning is returned by Start when the poller is already running.
var ErrRunning = errors.New("poller already running")

// Source is the read side of a dedication store.
type Source interface {
	List(ctx context.Context) ([]domain.Dedication, error)
}

// Config configures a Poller. Source and OnUpdate are required.
type Config struct {
	Source   Source
	Interval time.Duration

	// OnUpdate receives the full list, newest first, after every successful
	// read. Each call replaces whatever the previous call delivered.
	OnUpdate func([]domain.Dedication)

	// FetchTimeout bounds a single read. Zero means Interval.
	FetchTimeout time.Duration

	Logger *slog.Logger
}

// Poller re-reads a Source periodically. Start and Stop may be called
// repeatedly; a stopped poller can be started again.
type Poller struct {
	source       Source
	interval     time.Duration
	fetchTimeout time.Duration
	onUpdate     func([]domain.Dedication)
	logger       *slog.Logger

	refresh chan struct{}

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	// done is closed when the current run's loop returns. Each Start gets
	// its own channel so Stop only waits for the run it cancelled.
	done chan struct{}
}

// New creates a stopped Poller.
func New(cfg Config) *Poller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = interval
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	onUpdate := cfg.OnUpdate
	if onUpdate == nil {
		onUpdate = func([]domain.Dedication) {}
	}

	return &Poller{
		source:       cfg.Source,
		interval:     interval,
		fetchTimeout: fetchTimeout,
		onUpdate:     onUpdate,
		logger:       logger.With(slog.String("component", "poller")),
		refresh:      make(chan struct{}, 1),
	}
}

// Start reads the source immediately and then once per interval until ctx is
// done or Stop is called.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done
	p.running = true

	go p.loop(runCtx, done)

	p.logger.DebugContext(ctx, "poller started", slog.Duration("interval", p.interval))

	return nil
}

// Stop cancels the loop and waits for an in-flight read to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}

	p.running = false
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done

	p.logger.Debug("poller stopped")
}

// Running reports whether the loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.running
}

// Refresh requests an immediate re-read, e.g. after a local mutation or when
// the view resumes. Requests made while one is pending are coalesced.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

func (p *Poller) loop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.fetch(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetch(ctx)
		case <-p.refresh:
			p.fetch(ctx)
			ticker.Reset(p.interval)
		}
	}
}

func (p *Poller) fetch(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	list, err := p.source.List(fetchCtx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}

		p.logger.WarnContext(ctx, "refresh failed, keeping previous list", slog.Any("error", err))

		return
	}

	if ctx.Err() != nil {
		return
	}

	p.onUpdate(domain.SortNewestFirst(list))
}
