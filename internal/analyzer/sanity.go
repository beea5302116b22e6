package analyzer

import "context"

// SanityReport describes reachability of the configured backends.
type SanityReport struct {
	CorrectorOK  bool   `json:"corrector_ok"`
	ClassifierOK bool   `json:"classifier_ok"`
	Error        string `json:"error,omitempty"`
}

// SanityCheck pings backends that implement Pinger. Backends without a ping
// are reported healthy when configured. It does not mutate state.
func (a *Analyzer) SanityCheck(ctx context.Context) SanityReport {
	var r SanityReport
	r.CorrectorOK, r.Error = check(ctx, a.corrector, "correction")
	var msg string
	r.ClassifierOK, msg = check(ctx, a.classifier, "classification")
	if r.Error == "" {
		r.Error = msg
	}
	return r
}

func check(ctx context.Context, backend any, task string) (bool, string) {
	if backend == nil {
		return false, task + " backend not configured"
	}
	if p, ok := backend.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return false, task + " backend: " + err.Error()
		}
	}
	return true, ""
}
