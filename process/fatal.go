package process

import (
	"context"

	"github.com/aykans/runkit/errors"
	"github.com/aykans/runkit/logger"
)

// LabelFunc maps a fault value to a short diagnostic label for logging.
type LabelFunc func(v any) string

// Recover is the synchronous fatal-fault handler. Defer it in the
// goroutines whose panics should drain the registry:
//
//	defer reg.Recover(nil)
//
// On panic it logs the fault, despawns every live child, and re-panics
// so the original fault still takes the host down.
func (r *Registry) Recover(label LabelFunc) {
	v := recover()
	if v == nil {
		return
	}
	r.handleFatal(v, label)
	panic(v)
}

// Fatal is the asynchronous fatal-fault path: call it with an error
// that cannot be handled and would otherwise orphan children. The error
// is wrapped into a structured fault if it is not one already, logged,
// and every live child is despawned. Fatal does not terminate the host;
// that remains the caller's decision.
func (r *Registry) Fatal(err error, label LabelFunc) {
	if err == nil {
		return
	}
	r.handleFatal(err, label)
}

func (r *Registry) handleFatal(v any, label LabelFunc) {
	fault := errors.Ensure(v)

	name := "fatal error"
	if label != nil {
		name = label(v)
	}

	r.log.Error(logger.Red(name), logger.Fields(
		logger.FieldError, fault.Error(),
		"live_children", r.Len(),
	))

	// Best-effort drain: bounded by each child's grace period, so this
	// terminates even when children ignore SIGTERM.
	r.DespawnAll(context.Background())
}
