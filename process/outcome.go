package process

import (
	"fmt"
	"os"
	"syscall"
)

// Outcome is the terminal result of one spawned process. Exactly one of
// Code/Signal is meaningful: Signal is set when the process was killed
// by a signal, otherwise Code carries the exit status.
type Outcome struct {
	// Code is the exit code. -1 when the process was signaled or never ran.
	Code int
	// Signal is the name of the delivering signal, empty when the
	// process exited on its own.
	Signal string
}

// Success reports whether the process exited normally with code zero.
func (o Outcome) Success() bool {
	return o.Code == 0 && o.Signal == ""
}

// String renders the outcome for diagnostics.
func (o Outcome) String() string {
	if o.Signal != "" {
		return fmt.Sprintf("signal %s", o.Signal)
	}
	return fmt.Sprintf("exit %d", o.Code)
}

// outcomeFromState extracts an Outcome from the OS process state
// reported at exit.
func outcomeFromState(state *os.ProcessState) Outcome {
	if state == nil {
		return Outcome{Code: -1}
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Outcome{Code: -1, Signal: ws.Signal().String()}
	}
	return Outcome{Code: state.ExitCode()}
}

// Output bundles an Outcome with captured output streams. Stdout and
// Stderr are nil when the respective stream never emitted data.
type Output struct {
	Outcome Outcome
	Stdout  []byte
	Stderr  []byte
}
