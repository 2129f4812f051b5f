// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"git.home.luguber.info/inful/exrunner/internal/tool"
)

// ExamplesDir creates a temporary directory holding empty files with the given names.
func ExamplesDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("fn main() {}\n"), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", n, err)
		}
	}
	return dir
}

// RecordingInvoker records every call and replays canned results.
type RecordingInvoker struct {
	mu      sync.Mutex
	calls   []string
	Results map[string]tool.Result
	Errs    map[string]error
}

// NewRecordingInvoker creates an invoker that succeeds with empty output by default.
func NewRecordingInvoker() *RecordingInvoker {
	return &RecordingInvoker{Results: map[string]tool.Result{}, Errs: map[string]error{}}
}

func (r *RecordingInvoker) Invoke(_ context.Context, name string) (tool.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
	if err := r.Errs[name]; err != nil {
		return tool.Result{}, err
	}
	return r.Results[name], nil
}

// Calls returns the example names invoked so far, in order.
func (r *RecordingInvoker) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}
