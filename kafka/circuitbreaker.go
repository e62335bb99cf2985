package kafka

import (
	"errors"
	"sync"
	"time"

	"github.com/tair/starwars-blog/pkg/logger"
)

// ErrCircuitOpen is returned while the breaker refuses calls
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitState represents the state of a circuit breaker
type CircuitState string

const (
	StateClosed   CircuitState = "closed"    // Normal operation
	StateOpen     CircuitState = "open"      // Blocking calls
	StateHalfOpen CircuitState = "half-open" // Testing if the broker recovered
)

// CircuitBreaker stops calling a failing broker for a while, so a Kafka
// outage does not add the producer timeout to every request.
type CircuitBreaker struct {
	mu              sync.Mutex
	name            string
	maxFailures     int
	openTimeout     time.Duration
	state           CircuitState
	failures        int
	lastStateChange time.Time
	now             func() time.Time
}

// NewCircuitBreaker opens after maxFailures consecutive failures and lets a
// trial call through once openTimeout has passed.
func NewCircuitBreaker(name string, maxFailures int, openTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		name:            name,
		maxFailures:     maxFailures,
		openTimeout:     openTimeout,
		state:           StateClosed,
		lastStateChange: time.Now(),
		now:             time.Now,
	}
}

// Call executes fn unless the circuit is open
func (cb *CircuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()
	if cb.state == StateOpen {
		if cb.now().Sub(cb.lastStateChange) < cb.openTimeout {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.setState(StateHalfOpen)
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.onFailure()
	} else {
		cb.onSuccess()
	}
	return err
}

func (cb *CircuitBreaker) onFailure() {
	cb.failures++

	if cb.state == StateHalfOpen || cb.failures >= cb.maxFailures {
		if cb.state != StateOpen {
			logger.Logger.Error().
				Str("circuit", cb.name).
				Int("failures", cb.failures).
				Int("threshold", cb.maxFailures).
				Msg("Circuit breaker opened")
		}
		cb.setState(StateOpen)
	}
}

func (cb *CircuitBreaker) onSuccess() {
	if cb.state == StateHalfOpen {
		logger.Logger.Info().
			Str("circuit", cb.name).
			Msg("Circuit breaker closed after successful recovery")
		cb.setState(StateClosed)
	}
	cb.failures = 0
}

func (cb *CircuitBreaker) setState(state CircuitState) {
	cb.state = state
	cb.lastStateChange = cb.now()
}

// State returns the current state
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
