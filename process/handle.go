package process

import (
	"context"
	"os"
	"os/exec"
	"syscall"

	"github.com/google/uuid"
)

// Handle represents one live OS process launch. It is created by
// Registry.Spawn and becomes terminal when Closed resolves.
type Handle struct {
	id   uuid.UUID
	spec Command
	cmd  *exec.Cmd

	// closed is closed exactly once, after the handle has been
	// unregistered and outcome has been stored.
	closed  chan struct{}
	outcome Outcome
}

// ID returns the handle's stable identifier.
func (h *Handle) ID() string {
	return h.id.String()
}

// PID returns the OS process id.
func (h *Handle) PID() int {
	if h.cmd.Process == nil {
		return -1
	}
	return h.cmd.Process.Pid
}

// Closed resolves when the OS reports process exit. By that point the
// handle has been removed from its registry.
func (h *Handle) Closed() <-chan struct{} {
	return h.closed
}

// Outcome returns the terminal result. Valid only after Closed resolves.
func (h *Handle) Outcome() Outcome {
	return h.outcome
}

// Wait blocks until the process exits or ctx is done.
func (h *Handle) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-h.closed:
		return h.outcome, nil
	case <-ctx.Done():
		return Outcome{Code: -1}, ctx.Err()
	}
}

// Signal delivers sig to the process group, so the whole tree is
// signaled. Errors from an already-exited process are returned as-is;
// callers racing natural exit should treat them as benign.
func (h *Handle) Signal(sig os.Signal) error {
	if h.cmd.Process == nil {
		return nil
	}
	s, ok := sig.(syscall.Signal)
	if !ok {
		return h.cmd.Process.Signal(sig)
	}
	return syscall.Kill(-h.cmd.Process.Pid, s)
}
