// Package analyzer turns a piece of student text into a corrected text plus a
// list of labeled error spans. The neural work is delegated to two backends:
//
//   - a Corrector rewrites the text (a seq2seq grammar correction model);
//   - a Classifier assigns a label id to each changed span.
//
// The package itself owns everything around those calls:
//
//   - analyzer.go: Analyzer type, the Analyze pipeline, label lookup.
//   - config.go: Config and package defaults; New applies defaults.
//   - adapter_iface.go: Corrector, Classifier, Cache and Pinger interfaces.
//   - spans.go: token level diff between original and corrected text.
//   - labels.go: default label table and id mapping.
//   - admission.go: bounded queue and in-flight limit in front of the models.
//   - errors.go: error types and helpers (IsTooBusy, IsBackendFailure, ...).
//   - events.go: lifecycle events and publishers.
//   - metrics.go: Prometheus collectors for analyses and model calls.
//   - status_report.go, sanity.go: reporting for /status and startup checks.
//
// Backends live in internal/backend/*; callers wire them in through Config.
package analyzer
