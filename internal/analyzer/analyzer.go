package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"grammarbot/pkg/types"
)

// Result is the outcome of one analysis. It is what the cache stores.
type Result struct {
	CorrectedText string            `json:"corrected_text"`
	Errors        []types.ErrorItem `json:"errors"`
}

// Analyzer runs the correction, diff and classification pipeline.
type Analyzer struct {
	corrector  Corrector
	classifier Classifier
	labels     []string
	cache      Cache
	publisher  EventPublisher
	log        zerolog.Logger

	// Queueing primitives
	genCh   chan struct{} // in-flight analyses
	queueCh chan struct{} // queue slots
	maxWait time.Duration

	mu        sync.RWMutex
	lastError string
	startTime time.Time

	analysesTotal  atomic.Uint64
	cacheHitsTotal atomic.Uint64
}

// Labels returns a copy of the label table in id order.
func (a *Analyzer) Labels() []string {
	return append([]string(nil), a.labels...)
}

// Ready reports whether both backends are wired.
func (a *Analyzer) Ready() bool {
	return a.corrector != nil && a.classifier != nil
}

// Analyze corrects text, diffs it against the correction and labels every
// changed span. Results are served from the cache when one is configured.
func (a *Analyzer) Analyze(ctx context.Context, text string) (Result, error) {
	if a.corrector == nil {
		return Result{}, ErrDependencyUnavailable("correction backend not configured")
	}
	if a.classifier == nil {
		return Result{}, ErrDependencyUnavailable("classification backend not configured")
	}

	key := ""
	if a.cache != nil {
		key = CacheKey(backendKey(a.corrector), backendKey(a.classifier), a.labels, text)
		res, ok, err := a.cache.Get(ctx, key)
		if err != nil {
			a.log.Warn().Err(err).Msg("analysis cache get")
		} else if ok {
			a.cacheHitsTotal.Add(1)
			cacheHitsTotal.Inc()
			a.publisher.Publish(Event{Name: "cache_hit", Model: a.corrector.Model()})
			return res, nil
		}
	}

	release, err := a.beginAnalysis(ctx)
	if err != nil {
		return Result{}, err
	}
	defer release()

	start := time.Now()
	a.publisher.Publish(Event{Name: "analysis_start", Model: a.corrector.Model()})
	res, err := a.run(ctx, text)
	if err != nil {
		analysesTotal.WithLabelValues("error").Inc()
		if ctx.Err() == nil {
			a.setLastError(err)
		}
		a.publisher.Publish(Event{Name: "analysis_failed", Model: a.corrector.Model(), Fields: map[string]any{"error": err.Error()}})
		return Result{}, err
	}
	a.analysesTotal.Add(1)
	analysesTotal.WithLabelValues("ok").Inc()
	for _, e := range res.Errors {
		errorsDetectedTotal.WithLabelValues(e.ErrorType).Inc()
	}
	a.publisher.Publish(Event{Name: "analysis_done", Model: a.corrector.Model(), Fields: map[string]any{
		"errors":   len(res.Errors),
		"duration": time.Since(start),
	}})

	if a.cache != nil {
		if err := a.cache.Set(ctx, key, res); err != nil {
			a.log.Warn().Err(err).Msg("analysis cache set")
		}
	}
	return res, nil
}

func (a *Analyzer) run(ctx context.Context, text string) (Result, error) {
	t0 := time.Now()
	corrected, err := a.corrector.Correct(ctx, text)
	modelCallDuration.WithLabelValues("correction", a.corrector.Name()).Observe(time.Since(t0).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, backendFailureError{task: "correction", err: err}
	}

	res := Result{CorrectedText: corrected, Errors: []types.ErrorItem{}}
	for _, sp := range ErrorSpans(text, corrected) {
		if strings.TrimSpace(sp.Original) == strings.TrimSpace(sp.Corrected) {
			continue
		}
		t1 := time.Now()
		id, err := a.classifier.Classify(ctx, ClassificationInput(sp.Original, sp.Corrected))
		modelCallDuration.WithLabelValues("classification", a.classifier.Name()).Observe(time.Since(t1).Seconds())
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			return Result{}, backendFailureError{task: "classification", err: err}
		}
		res.Errors = append(res.Errors, types.ErrorItem{
			OriginalSpan:  sp.Original,
			CorrectedSpan: sp.Corrected,
			ErrorType:     labelFor(a.labels, id),
		})
	}
	return res, nil
}

func (a *Analyzer) setLastError(err error) {
	a.mu.Lock()
	a.lastError = err.Error()
	a.mu.Unlock()
}

// backendKey names a backend for the cache: its kind, model and, when it has
// one, its fingerprint.
func backendKey(b interface {
	Name() string
	Model() string
}) string {
	k := b.Name() + "\x1e" + b.Model()
	if f, ok := b.(Fingerprinter); ok {
		k += "\x1e" + f.Fingerprint()
	}
	return k
}

// CacheKey derives a stable cache key from the backends, the label table and
// the exact input text.
func CacheKey(correctionBackend, classificationBackend string, labels []string, text string) string {
	h := sha256.New()
	h.Write([]byte(correctionBackend))
	h.Write([]byte{0})
	h.Write([]byte(classificationBackend))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(labels, "\x1f")))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
