package errors

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestRunnerError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *RunnerError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestRunnerError_WithContext(t *testing.T) {
	err := New(CategoryTool, SeverityFatal, "start failed").
		WithContext("command", "cargo").
		WithContext("example", "hello")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}
	if err.Context["command"] != "cargo" {
		t.Errorf("Context[command] = %v, want cargo", err.Context["command"])
	}
	if err.Context["example"] != "hello" {
		t.Errorf("Context[example] = %v, want hello", err.Context["example"])
	}
}

func TestIsCategory(t *testing.T) {
	configErr := New(CategoryConfig, SeverityFatal, "config error")
	toolErr := ToolUnavailable("cargo", fmt.Errorf("not found"))
	wrapped := fmt.Errorf("run: %w", toolErr)
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"config error matches config category", configErr, CategoryConfig, true},
		{"config error doesn't match tool category", configErr, CategoryTool, false},
		{"tool error matches tool category", toolErr, CategoryTool, true},
		{"wrapped tool error still matches", wrapped, CategoryTool, true},
		{"standard error doesn't match any category", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsCategory(test.err, test.category); got != test.expected {
				t.Errorf("IsCategory() = %v, want %v", got, test.expected)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := InternalError("boom", cause)
	if !stdErrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("ConfigNotFound", func(t *testing.T) {
		err := ConfigNotFound("/path/to/exrunner.yaml")
		if err.Category != CategoryConfig {
			t.Errorf("Category = %v, want %v", err.Category, CategoryConfig)
		}
		if err.Severity != SeverityFatal {
			t.Errorf("Severity = %v, want %v", err.Severity, SeverityFatal)
		}
		if err.Context["path"] != "/path/to/exrunner.yaml" {
			t.Errorf("Context[path] = %v", err.Context["path"])
		}
	})

	t.Run("ValidationFailed", func(t *testing.T) {
		err := ValidationFailed("examples.suffix", "must not be empty")
		if err.Category != CategoryValidation {
			t.Errorf("Category = %v, want %v", err.Category, CategoryValidation)
		}
		if err.Context["field"] != "examples.suffix" {
			t.Errorf("Context[field] = %v", err.Context["field"])
		}
	})
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", fmt.Errorf("x"), 1},
		{"validation", ValidationFailed("f", "r"), 2},
		{"config", ConfigNotFound("p"), 7},
		{"tool", ToolUnavailable("cargo", nil), 8},
		{"filesystem", DirUnreadable("d", nil), 11},
		{"runtime", New(CategoryRuntime, SeverityError, "r"), 12},
		{"internal", InternalError("i", nil), 10},
		{"wrapped", fmt.Errorf("ctx: %w", ConfigNotFound("p")), 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.ExitCodeFor(tc.err); got != tc.want {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, stderr bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	a := NewCLIErrorAdapter(false, logger)
	a.stderr = &stderr
	code := -1
	a.exit = func(c int) { code = c }

	a.HandleError(ToolUnavailable("cargo", fmt.Errorf("executable file not found")))

	if code != 8 {
		t.Errorf("exit code = %d, want 8", code)
	}
	if !strings.Contains(stderr.String(), "tool: external build tool could not be started") {
		t.Errorf("unexpected stderr: %q", stderr.String())
	}
	if !strings.Contains(logs.String(), "category=tool") || !strings.Contains(logs.String(), "command=cargo") {
		t.Errorf("expected category and context in log output, got %q", logs.String())
	}

	code = -1
	a.HandleError(nil)
	if code != -1 {
		t.Error("HandleError(nil) should not exit")
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)
	err := ConfigInvalid("exrunner.yaml", fmt.Errorf("bad yaml"))

	if got := quiet.FormatError(err); got != "configuration invalid" {
		t.Errorf("quiet FormatError = %q", got)
	}
	if got := verbose.FormatError(err); got != err.Error() {
		t.Errorf("verbose FormatError = %q", got)
	}
	if got := quiet.FormatError(fmt.Errorf("plain")); got != "Error: plain" {
		t.Errorf("plain FormatError = %q", got)
	}
}
