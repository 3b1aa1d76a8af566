package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/pokedex/internal/explorer"
)

// ErrAlreadySettled is returned when a second transition out of
// [PhaseLoading] is attempted.
var ErrAlreadySettled = errors.New("lifecycle already settled")

// Controller owns the creature list for the life of the process.
//
// Controller starts in [PhaseLoading]. The first call to [Controller.Load]
// runs the fetch; every other call waits for that one and returns its result.
// All methods are safe for concurrent use.
type Controller struct {
	fetcher Fetcher
	logger  *slog.Logger

	once    sync.Once
	settled chan struct{}

	// mu guards state, cause and subscribers
	mu          sync.RWMutex
	state       State
	cause       error
	subscribers map[chan State]struct{}
}

// NewController creates a [Controller] in [PhaseLoading].
//
// If logger is nil, [slog.Default] is used.
func NewController(fetcher Fetcher, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		fetcher:     fetcher,
		logger:      logger,
		settled:     make(chan struct{}),
		state:       State{Phase: PhaseLoading},
		subscribers: make(map[chan State]struct{}),
	}
}

// Load runs the fetch exactly once and returns the settled state.
//
// The phase always leaves [PhaseLoading] when the fetch returns, whatever the
// outcome. Failures are logged and replaced by [FailureMessage]; they are
// never returned. A cancelled ctx makes the in-flight fetch fail.
func (c *Controller) Load(ctx context.Context) State {
	c.once.Do(func() {
		c.load(ctx)
	})
	return c.State()
}

func (c *Controller) load(ctx context.Context) {
	start := time.Now()
	creatures, err := c.safeFetch(ctx)
	latency := time.Since(start)

	next := State{Phase: PhaseReady, Creatures: creatures}
	if err != nil {
		next = State{Phase: PhaseFailed, Message: FailureMessage}
		c.logger.Warn("creature fetch failed",
			"error", err.Error(),
			"latency_ms", latency.Milliseconds(),
		)
	} else {
		if next.Creatures == nil {
			next.Creatures = []explorer.Creature{}
		}
		c.logger.Info("creatures loaded",
			"creature_count", len(next.Creatures),
			"latency_ms", latency.Milliseconds(),
		)
	}

	if err := c.settle(next, err); err != nil {
		c.logger.Error("lifecycle transition rejected", "error", err)
	}
}

// safeFetch calls the fetcher with panic recovery.
// A panic is logged with a correlation ID and reported as a failure.
func (c *Controller) safeFetch(ctx context.Context) (creatures []explorer.Creature, err error) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			c.logger.Error("fetcher panic",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			creatures = nil
			err = fmt.Errorf("fetcher panic (correlation_id: %s)", correlationID)
		}
	}()
	return c.fetcher.FetchCreatures(ctx)
}

// settle performs the single forward transition and notifies subscribers.
func (c *Controller) settle(next State, cause error) error {
	if !next.Phase.Settled() {
		return fmt.Errorf("cannot settle into phase %s", next.Phase)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != PhaseLoading {
		return ErrAlreadySettled
	}
	c.state = next
	c.cause = cause
	close(c.settled)

	// each channel has room for exactly this one message
	for ch := range c.subscribers {
		ch <- next
		close(ch)
		delete(c.subscribers, ch)
	}
	return nil
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Cause returns the error behind [PhaseFailed], or nil.
//
// The cause is for logs and SDK callbacks; it is never rendered to users.
func (c *Controller) Cause() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cause
}

// Settled returns a channel that is closed once the phase is terminal.
func (c *Controller) Settled() <-chan struct{} {
	return c.settled
}

// Subscribe returns a channel that receives the settled state once.
//
// If the lifecycle has already settled, the state is delivered immediately.
// The channel is closed after delivery. Caller must call
// [Controller.Unsubscribe] when done to release an unsettled subscription.
func (c *Controller) Subscribe() <-chan State {
	ch := make(chan State, 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase.Settled() {
		ch <- c.state
		close(ch)
		return ch
	}
	c.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a pending subscription and closes its channel.
//
// Safe to call multiple times, after delivery, or with an unknown channel.
func (c *Controller) Unsubscribe(ch <-chan State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for subCh := range c.subscribers {
		if subCh == ch {
			delete(c.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// compile-time check
var _ Source = (*Controller)(nil)
