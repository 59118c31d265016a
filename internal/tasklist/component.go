package tasklist

import (
	"context"
	"io"
	"log"
	"slices"
	"sync"
	"time"

	"tasklist/internal/service"
)

// Observer is told about every fetch outcome the component applies.
type Observer interface {
	ObserveFetch(phase Phase, elapsed time.Duration, tasks int)
}

// Component owns the task-list state. Mount issues the single fetch;
// Unmount cancels it and discards any outcome that arrives afterwards.
type Component struct {
	svc      service.Service
	logger   *log.Logger
	observer Observer

	mountOnce sync.Once
	done      chan struct{}

	mu        sync.Mutex
	state     State
	cancel    context.CancelFunc
	unmounted bool
	changed   []func(State)
}

// Option configures a Component.
type Option func(*Component)

// WithLogger sets where fetch failures are logged. Defaults to discarding.
func WithLogger(logger *log.Logger) Option {
	return func(c *Component) { c.logger = logger }
}

// WithObserver attaches an Observer.
func WithObserver(o Observer) Option {
	return func(c *Component) { c.observer = o }
}

// New creates an unmounted component in the loading state.
func New(svc service.Service, opts ...Option) *Component {
	c := &Component{
		svc:    svc,
		logger: log.New(io.Discard, "", 0),
		done:   make(chan struct{}),
		state:  InitialState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount starts the fetch. Only the first call has any effect; the fetch runs
// in the background and ctx bounds it.
func (c *Component) Mount(ctx context.Context) {
	c.mountOnce.Do(func() {
		c.mu.Lock()
		if c.unmounted {
			c.mu.Unlock()
			close(c.done)
			return
		}
		ctx, cancel := context.WithCancel(ctx)
		c.cancel = cancel
		c.mu.Unlock()

		go c.load(ctx)
	})
}

// Unmount tears the component down. An in-flight fetch is cancelled and its
// outcome is not applied. Safe to call more than once, and before Mount.
func (c *Component) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unmounted = true
	if c.cancel != nil {
		c.cancel()
	}
}

// OnChange registers fn to run after the state is updated. fn runs on the
// fetch goroutine and must not call back into Unmount synchronously.
func (c *Component) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.changed = append(c.changed, fn)
}

// State returns a snapshot of the held state.
func (c *Component) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Tasks = append([]service.Task(nil), c.state.Tasks...)
	return s
}

// Done is closed once the fetch has finished, whether or not its outcome was applied.
func (c *Component) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the fetch finishes or ctx is done, then returns the state.
func (c *Component) Wait(ctx context.Context) (State, error) {
	select {
	case <-c.done:
		return c.State(), nil
	case <-ctx.Done():
		return c.State(), ctx.Err()
	}
}

func (c *Component) load(ctx context.Context) {
	defer close(c.done)

	start := time.Now()
	tasks, err := c.svc.FetchTasks(ctx)
	elapsed := time.Since(start)

	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return
	}
	next := State{Tasks: []service.Task{}}
	if err != nil {
		c.logger.Printf("error: %v", err)
		next.Err = FailedMessage
	} else if len(tasks) > 0 {
		next.Tasks = tasks
	}
	c.state = next
	c.cancel()
	listeners := slices.Clone(c.changed)
	c.mu.Unlock()

	if c.observer != nil {
		c.observer.ObserveFetch(next.Phase(), elapsed, len(next.Tasks))
	}
	for _, fn := range listeners {
		fn(next)
	}
}
