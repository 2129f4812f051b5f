package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyExample    = "example"
	KeyDir        = "dir"
	KeyPath       = "path"
	KeyCommand    = "command"
	KeyExitCode   = "exit_code"
	KeyDurationMS = "duration_ms"
	KeyScheduleID = "schedule_id"
	KeyOutcome    = "outcome"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Example(name string) slog.Attr    { return slog.String(KeyExample, name) }
func Dir(d string) slog.Attr           { return slog.String(KeyDir, d) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Command(c string) slog.Attr       { return slog.String(KeyCommand, c) }
func ExitCode(code int) slog.Attr      { return slog.Int(KeyExitCode, code) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func ScheduleID(id string) slog.Attr   { return slog.String(KeyScheduleID, id) }
func Outcome(o string) slog.Attr       { return slog.String(KeyOutcome, o) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d) / float64(time.Millisecond))
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
