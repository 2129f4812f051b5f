package metrics

import "time"

// Outcome enumerates per-example result categories for counters.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeStderr  Outcome = "stderr" // zero exit, diagnostic text present
	OutcomeFailed  Outcome = "failed" // non-zero exit
)

// OutcomeOf classifies an exit code and captured stderr.
func OutcomeOf(exitCode int, stderr string) Outcome {
	switch {
	case exitCode != 0:
		return OutcomeFailed
	case stderr != "":
		return OutcomeStderr
	default:
		return OutcomeSuccess
	}
}

// Recorder defines observability hooks for runs and examples.
type Recorder interface {
	ObserveExampleDuration(name string, d time.Duration, outcome Outcome)
	IncExampleOutcome(outcome Outcome)
	ObserveRunDuration(d time.Duration)
	SetExamplesDiscovered(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveExampleDuration(string, time.Duration, Outcome) {}
func (NoopRecorder) IncExampleOutcome(Outcome)                             {}
func (NoopRecorder) ObserveRunDuration(time.Duration)                      {}
func (NoopRecorder) SetExamplesDiscovered(int)                             {}
