package process

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/aykans/runkit/logger"
)

// Registry tracks every live child process spawned through it. A handle
// is a member exactly while its process is running: registered at spawn
// time, unregistered when the OS reports exit, before the handle's
// Closed channel resolves.
//
// Construct one Registry per host process at startup and pass it to
// spawn call sites; tests can use isolated registries.
type Registry struct {
	log *logger.Logger

	mu   sync.Mutex
	live map[*Handle]struct{}
}

// NewRegistry creates an empty registry logging through log. A nil log
// falls back to the global logger.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.WithComponent("process")
	}
	return &Registry{
		log:  log,
		live: make(map[*Handle]struct{}),
	}
}

// Spawn launches cmd as an OS child process, inheriting the host's
// standard streams unless cmd overrides them. The new handle is
// registered before Spawn returns; a reaper goroutine unregisters it
// and resolves the handle's Closed channel when the process exits.
func (r *Registry) Spawn(cmd Command) (*Handle, error) {
	if cmd.Binary == "" {
		return nil, fmt.Errorf("process: binary is required")
	}

	c := exec.Command(cmd.Binary, cmd.Args...) //nolint:gosec // dynamic args are the purpose of this package
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)

	c.Stdin = cmd.Stdin
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	c.Stdout = cmd.Stdout
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	c.Stderr = cmd.Stderr
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}

	// Use a process group so despawn can kill the entire tree
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("process: start %s: %w", cmd.Binary, err)
	}

	h := &Handle{
		id:     uuid.New(),
		spec:   cmd,
		cmd:    c,
		closed: make(chan struct{}),
	}
	unregister := r.Register(h)

	r.log.Debug("spawned process", logger.Fields(
		logger.FieldBinary, logger.Cyan(cmd.Binary),
		logger.FieldPID, h.PID(),
		logger.FieldHandle, h.ID(),
	))

	go r.reap(h, unregister)
	return h, nil
}

// reap waits for the process to exit, then unregisters the handle and
// resolves its Closed channel. Unregistration happens first, so a
// waiter observing resolution never sees the handle in the registry.
func (r *Registry) reap(h *Handle, unregister func()) {
	err := h.cmd.Wait()
	h.outcome = outcomeFromState(h.cmd.ProcessState)
	if err != nil && h.cmd.ProcessState == nil {
		// Wait failed before the process ran to completion (I/O error
		// on a stdio pipe, for example). Surface it as a failure.
		r.log.Error("process wait failed", logger.ErrorFields("reap", err))
	}

	unregister()
	close(h.closed)

	r.log.Debug("process closed", logger.Fields(
		logger.FieldBinary, h.spec.Binary,
		logger.FieldPID, h.PID(),
		logger.FieldStatus, h.outcome.String(),
	))
}

// Run spawns cmd and waits for it to complete. Intended for short-lived
// commands; non-zero exits are reported through the Outcome, not the
// error.
func (r *Registry) Run(ctx context.Context, cmd Command) (Outcome, error) {
	h, err := r.Spawn(cmd)
	if err != nil {
		return Outcome{Code: -1}, err
	}
	return h.Wait(ctx)
}

// RunOutput is Run with stdout/stderr captured instead of inherited.
// The captured slices are nil when the respective stream never emitted
// data.
func (r *Registry) RunOutput(ctx context.Context, cmd Command) (*Output, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	h, err := r.Spawn(cmd)
	if err != nil {
		return nil, err
	}
	outcome, err := h.Wait(ctx)
	if err != nil {
		return nil, err
	}

	out := &Output{Outcome: outcome}
	if stdout.Len() > 0 {
		out.Stdout = stdout.Bytes()
	}
	if stderr.Len() > 0 {
		out.Stderr = stderr.Bytes()
	}
	return out, nil
}

// Register adds a handle to the registry and returns a function that
// removes it. Double registration and unregistration of an absent
// handle are logged as warnings, never fatal.
func (r *Registry) Register(h *Handle) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.live[h]; ok {
		r.log.Warn("handle already registered", logger.Fields(
			logger.FieldHandle, h.ID(),
			logger.FieldPID, h.PID(),
		))
	} else {
		r.live[h] = struct{}{}
	}
	return func() { r.unregister(h) }
}

func (r *Registry) unregister(h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.live[h]; !ok {
		r.log.Warn("unregister of unknown handle", logger.Fields(
			logger.FieldHandle, h.ID(),
			logger.FieldPID, h.PID(),
		))
		return
	}
	delete(r.live, h)
}

// Len returns the number of currently-live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Live returns a snapshot of the currently-live handles.
func (r *Registry) Live() []*Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	handles := make([]*Handle, 0, len(r.live))
	for h := range r.live {
		handles = append(handles, h)
	}
	return handles
}

// Despawn terminates h's process and waits for it to close. SIGTERM is
// sent first; if the process has not exited within its grace period,
// SIGKILL follows. Registry removal happens through the reaper set up
// at spawn time, as with a natural exit.
func (r *Registry) Despawn(ctx context.Context, h *Handle) (Outcome, error) {
	if err := h.Signal(syscall.SIGTERM); err != nil {
		// The process may already be gone; the reaper still resolves.
		r.log.Debug("despawn signal failed", logger.ErrorFields("despawn", err))
	}

	grace := time.NewTimer(h.spec.gracePeriod())
	defer grace.Stop()

	select {
	case <-h.closed:
		return h.outcome, nil
	case <-ctx.Done():
		return Outcome{Code: -1}, ctx.Err()
	case <-grace.C:
		r.log.Warn("process ignored SIGTERM, killing", logger.Fields(
			logger.FieldBinary, h.spec.Binary,
			logger.FieldPID, h.PID(),
		))
		_ = h.Signal(syscall.SIGKILL)
	}

	select {
	case <-h.closed:
		return h.outcome, nil
	case <-ctx.Done():
		return Outcome{Code: -1}, ctx.Err()
	}
}

// DespawnAll concurrently despawns every live handle and waits for all
// of them to close. The result has one Outcome per drained handle; an
// empty registry yields an empty slice immediately.
func (r *Registry) DespawnAll(ctx context.Context) []Outcome {
	handles := r.Live()
	outcomes := make([]Outcome, len(handles))

	var wg sync.WaitGroup
	for i, h := range handles {
		wg.Add(1)
		go func(i int, h *Handle) {
			defer wg.Done()
			outcome, err := r.Despawn(ctx, h)
			if err != nil {
				r.log.Error("despawn failed", logger.MergeWithError(logger.Fields(
					logger.FieldBinary, h.spec.Binary,
					logger.FieldPID, h.PID(),
				), err))
			}
			outcomes[i] = outcome
		}(i, h)
	}
	wg.Wait()
	return outcomes
}

// mergeEnv merges additional env vars with the current environment.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil // inherit parent env
	}
	env := os.Environ()
	return append(env, extra...)
}
