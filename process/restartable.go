package process

import (
	"context"
	"sync"

	"github.com/aykans/runkit/logger"
)

// State describes a Restartable's lifecycle phase.
type State string

const (
	// StateIdle means no live child and no transition in flight.
	StateIdle State = "idle"
	// StateRunning means one live child and no pending transition.
	StateRunning State = "running"
	// StateRestarting means a close-then-respawn sequence is in flight.
	StateRestarting State = "restarting"
	// StateClosing means a close-only sequence is in flight.
	StateClosing State = "closing"
)

// transition is one close-and-maybe-respawn sequence. Its done channel
// is closed after err is set, so waiters observing done may read err.
type transition struct {
	done chan struct{}
	err  error
}

// Restartable is a single-slot supervised process cell: it holds at
// most one live child at a time and coalesces overlapping Restart
// requests onto the same in-flight transition.
//
// Construction is two-phase: NewRestartable returns an Idle cell and
// spawns nothing; call Start (or Restart) to launch the first child.
type Restartable struct {
	reg *Registry
	cmd Command
	log *logger.Logger

	mu       sync.Mutex
	state    State
	handle   *Handle
	inflight *transition
}

// NewRestartable creates an Idle cell that will spawn cmd through reg.
func NewRestartable(reg *Registry, cmd Command) *Restartable {
	return &Restartable{
		reg:   reg,
		cmd:   cmd,
		log:   reg.log,
		state: StateIdle,
	}
}

// State returns the cell's current lifecycle phase.
func (p *Restartable) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Handle returns the live child's handle, or nil when Idle.
func (p *Restartable) Handle() *Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handle
}

// Start launches the first child. It is Restart under a clearer name
// for the initial call.
func (p *Restartable) Start(ctx context.Context) error {
	return p.Restart(ctx)
}

// Restart replaces the current child with a fresh one: close the live
// child if any, then spawn. If a transition is already in flight the
// call joins it and returns its outcome instead of starting a second
// sequence, so a burst of concurrent restarts yields exactly one live
// child.
func (p *Restartable) Restart(ctx context.Context) error {
	p.mu.Lock()
	if t := p.inflight; t != nil {
		p.mu.Unlock()
		return awaitTransition(ctx, t)
	}
	t := &transition{done: make(chan struct{})}
	p.inflight = t
	current := p.handle
	p.state = StateRestarting
	p.mu.Unlock()

	p.log.Info("restarting process", logger.Fields(
		logger.FieldBinary, logger.Cyan(p.cmd.Binary),
	))

	err := p.cycle(ctx, current, true)
	p.finish(t, err)
	return err
}

// Kill closes the cell's child and leaves it Idle. A transition in
// flight is awaited first, then whatever child it produced is closed.
func (p *Restartable) Kill(ctx context.Context) error {
	p.mu.Lock()
	for p.inflight != nil {
		t := p.inflight
		p.mu.Unlock()
		if err := awaitTransition(ctx, t); err != nil && ctx.Err() != nil {
			return err
		}
		p.mu.Lock()
	}
	t := &transition{done: make(chan struct{})}
	p.inflight = t
	current := p.handle
	p.state = StateClosing
	p.mu.Unlock()

	p.log.Info("killing process", logger.Fields(
		logger.FieldBinary, logger.Cyan(p.cmd.Binary),
	))

	err := p.cycle(ctx, current, false)
	p.finish(t, err)
	return err
}

// cycle closes current (when non-nil) and optionally spawns a
// replacement. A Failure outcome from the closing child is not an
// error; only launch failures and context cancellation are.
func (p *Restartable) cycle(ctx context.Context, current *Handle, respawn bool) error {
	if current != nil {
		if _, err := p.reg.Despawn(ctx, current); err != nil {
			return err
		}
		p.mu.Lock()
		p.handle = nil
		p.mu.Unlock()
	}

	if !respawn {
		return nil
	}

	h, err := p.reg.Spawn(p.cmd)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.handle = h
	p.mu.Unlock()
	return nil
}

// finish publishes the transition result and settles the cell's state.
func (p *Restartable) finish(t *transition, err error) {
	t.err = err
	p.mu.Lock()
	p.inflight = nil
	if p.handle != nil {
		p.state = StateRunning
	} else {
		p.state = StateIdle
	}
	p.mu.Unlock()
	close(t.done)
}

func awaitTransition(ctx context.Context, t *transition) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
