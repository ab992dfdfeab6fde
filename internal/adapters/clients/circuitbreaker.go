package clients

import (
	"sync"
	"time"

	"github.com/jsamuelsen/dedication-wall/internal/platform/config"
)

// State is a circuit breaker state.
type State int

const (
	// StateClosed lets requests through.
	StateClosed State = iota
	// StateOpen rejects requests until the cool-down has passed.
	StateOpen
	// StateHalfOpen lets a limited number of probes through.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker stops calling a downstream that keeps failing.
//
//   - Closed → Open after MaxFailures consecutive failures
//   - Open → HalfOpen once Timeout has passed since the last failure
//   - HalfOpen → Closed after HalfOpenLimit consecutive successes
//   - HalfOpen → Open on any failure
type CircuitBreaker struct {
	mu        sync.Mutex
	cfg       config.CircuitBreakerConfig
	state     State
	failures  int
	successes int
	inFlight  int
	openedAt  time.Time
	now       func() time.Time
	onChange  func(from, to State)
}

// NewCircuitBreaker returns a closed breaker. Zero config values fall back to
// one failure, a one second cool-down and a single probe.
func NewCircuitBreaker(cfg config.CircuitBreakerConfig) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 1
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Second
	}

	if cfg.HalfOpenLimit <= 0 {
		cfg.HalfOpenLimit = 1
	}

	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers a callback run (in its own goroutine) on every transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onChange = fn
}

// Allow reports whether a request may proceed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.cfg.Timeout {
			return false
		}

		cb.transitionTo(StateHalfOpen)
		cb.inFlight = 1

		return true
	case StateHalfOpen:
		if cb.inFlight >= cb.cfg.HalfOpenLimit {
			return false
		}

		cb.inFlight++

		return true
	default:
		return false
	}
}

// RecordSuccess records a request that reached the downstream and got an answer.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.inFlight--
		cb.successes++

		if cb.successes >= cb.cfg.HalfOpenLimit {
			cb.transitionTo(StateClosed)
		}
	}
}

// RecordFailure records a request that failed at the transport or with a 5xx.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures++

		if cb.failures >= cb.cfg.MaxFailures {
			cb.transitionTo(StateOpen)
		}
	case StateHalfOpen:
		cb.inFlight--
		cb.transitionTo(StateOpen)
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// transitionTo must be called with mu held.
func (cb *CircuitBreaker) transitionTo(next State) {
	if cb.state == next {
		return
	}

	prev := cb.state
	cb.state = next
	cb.failures = 0
	cb.successes = 0

	if next == StateOpen {
		cb.openedAt = cb.now()
		cb.inFlight = 0
	}

	if cb.onChange != nil {
		go cb.onChange(prev, next)
	}
}
