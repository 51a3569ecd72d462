package process_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/aykans/runkit/logger"
	"github.com/aykans/runkit/process"
)

// newRegistry builds an isolated registry that logs nowhere.
func newRegistry(t *testing.T) *process.Registry {
	t.Helper()
	log := logger.New(&logger.Config{Level: "error", Format: "json", Writer: io.Discard}, "test")
	return process.NewRegistry(log)
}

func TestRunSuccess(t *testing.T) {
	reg := newRegistry(t)
	outcome, err := reg.Run(context.Background(), process.Command{
		Binary: "printf",
		Args:   []string{"ok"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Success() {
		t.Fatalf("expected success, got %v", outcome)
	}
	if outcome.Signal != "" {
		t.Errorf("expected no signal, got %q", outcome.Signal)
	}
	if reg.Len() != 0 {
		t.Errorf("expected empty registry after exit, got %d", reg.Len())
	}
}

func TestRunFailure(t *testing.T) {
	reg := newRegistry(t)
	outcome, err := reg.Run(context.Background(), process.Command{
		Binary: "false",
	})
	if err != nil {
		t.Fatalf("expected failure via outcome, not error: %v", err)
	}
	if outcome.Success() {
		t.Fatal("expected failure outcome")
	}
	if outcome.Code != 1 {
		t.Errorf("expected exit code 1, got %d", outcome.Code)
	}
	if outcome.Signal != "" {
		t.Errorf("expected no signal, got %q", outcome.Signal)
	}
}

func TestRunExitCodePreserved(t *testing.T) {
	reg := newRegistry(t)
	outcome, err := reg.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "exit 42"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Code != 42 {
		t.Errorf("expected exit code 42, got %d", outcome.Code)
	}
}

func TestRunOutputCapturesStdout(t *testing.T) {
	reg := newRegistry(t)
	out, err := reg.RunOutput(context.Background(), process.Command{
		Binary: "echo",
		Args:   []string{"hello"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Outcome.Success() {
		t.Fatalf("expected success, got %v", out.Outcome)
	}
	if string(out.Stdout) != "hello\n" {
		t.Errorf("expected 'hello\\n', got %q", out.Stdout)
	}
	if out.Stderr != nil {
		t.Errorf("expected nil stderr, got %q", out.Stderr)
	}
}

func TestRunOutputCapturesStderr(t *testing.T) {
	reg := newRegistry(t)
	out, err := reg.RunOutput(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo oops >&2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out.Stderr) != "oops\n" {
		t.Errorf("expected 'oops\\n' on stderr, got %q", out.Stderr)
	}
	if out.Stdout != nil {
		t.Errorf("expected nil stdout, got %q", out.Stdout)
	}
}

func TestRunOutputEnv(t *testing.T) {
	reg := newRegistry(t)
	out, err := reg.RunOutput(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "printf \"$MY_TEST_VAR\""},
		Env:    []string{"MY_TEST_VAR=hello123"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out.Stdout) != "hello123" {
		t.Errorf("expected 'hello123', got %q", out.Stdout)
	}
}

func TestSpawnEmptyBinary(t *testing.T) {
	reg := newRegistry(t)
	if _, err := reg.Spawn(process.Command{}); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestSpawnMissingBinary(t *testing.T) {
	reg := newRegistry(t)
	_, err := reg.Spawn(process.Command{Binary: "definitely-not-a-real-binary-xyz"})
	if err == nil {
		t.Fatal("expected launch error")
	}
	if reg.Len() != 0 {
		t.Errorf("expected nothing registered after launch failure, got %d", reg.Len())
	}
}

func TestHandleUnregisteredBeforeClosed(t *testing.T) {
	reg := newRegistry(t)
	h, err := reg.Spawn(process.Command{Binary: "sleep", Args: []string{"0.1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 live handle, got %d", reg.Len())
	}

	<-h.Closed()
	if reg.Len() != 0 {
		t.Error("handle must be unregistered before Closed resolves")
	}
	if !h.Outcome().Success() {
		t.Errorf("expected success, got %v", h.Outcome())
	}
}

func TestWaitContextCancel(t *testing.T) {
	reg := newRegistry(t)
	h, err := reg.Spawn(process.Command{
		Binary:      "sleep",
		Args:        []string{"10"},
		GracePeriod: 500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := h.Wait(ctx); err == nil {
		t.Error("expected context error")
	}

	// The child is still live; clean it up.
	if _, err := reg.Despawn(context.Background(), h); err != nil {
		t.Fatalf("cleanup despawn failed: %v", err)
	}
}
