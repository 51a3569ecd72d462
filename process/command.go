package process

import (
	"io"
	"strings"
	"time"
)

const defaultGracePeriod = 5 * time.Second

// Command configures a child process to spawn. It is immutable once
// submitted to a Registry.
type Command struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	// Args are the command-line arguments.
	Args []string
	// Dir is the working directory. If empty, uses the current directory.
	Dir string
	// Env is additional environment variables (key=value). Merged with os.Environ.
	Env []string
	// Stdin provides input to the process. Nil inherits the host's stdin.
	Stdin io.Reader
	// Stdout receives standard output. Nil inherits the host's stdout.
	Stdout io.Writer
	// Stderr receives standard error. Nil inherits the host's stderr.
	Stderr io.Writer
	// GracePeriod is how long despawn waits after SIGTERM before SIGKILL.
	// Defaults to 5 seconds if zero.
	GracePeriod time.Duration
}

// String renders the command line for diagnostics.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Binary
	}
	return c.Binary + " " + strings.Join(c.Args, " ")
}

func (c Command) gracePeriod() time.Duration {
	if c.GracePeriod > 0 {
		return c.GracePeriod
	}
	return defaultGracePeriod
}
