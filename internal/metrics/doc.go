// Package metrics provides observability hooks for example runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	r := runner.New(cfg, invoker, os.Stdout)            // NoopRecorder
//	r = r.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// Recorded values never influence control flow. A failing example is
// observed here and nowhere else.
//
// Two export paths exist: WriteTextfile for one-shot runs (picked up by the
// node_exporter textfile collector) and HTTPHandler for the long-running
// watch and schedule modes.
package metrics
