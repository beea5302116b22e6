package analyzer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeCorrector returns a fixed correction or error.
type fakeCorrector struct {
	out   string
	err   error
	block chan struct{}
	mu    sync.Mutex
	calls int
}

func (f *fakeCorrector) Name() string  { return "fake" }
func (f *fakeCorrector) Model() string { return "fake-t5" }
func (f *fakeCorrector) Correct(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func (f *fakeCorrector) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeClassifier answers ids from a map keyed by classifier input.
type fakeClassifier struct {
	ids    map[string]int
	def    int
	err    error
	inputs []string
}

func (f *fakeClassifier) Name() string  { return "fake" }
func (f *fakeClassifier) Model() string { return "fake-bert" }
func (f *fakeClassifier) Classify(ctx context.Context, input string) (int, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return 0, f.err
	}
	if id, ok := f.ids[input]; ok {
		return id, nil
	}
	return f.def, nil
}

// memCache is an in-memory Cache.
type memCache struct {
	mu   sync.Mutex
	m    map[string]Result
	gerr error
}

func newMemCache() *memCache { return &memCache{m: map[string]Result{}} }

func (c *memCache) Get(ctx context.Context, key string) (Result, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gerr != nil {
		return Result{}, false, c.gerr
	}
	r, ok := c.m[key]
	return r, ok, nil
}

func (c *memCache) Set(ctx context.Context, key string, r Result) error {
	c.mu.Lock()
	c.m[key] = r
	c.mu.Unlock()
	return nil
}

type pingErr struct{ fakeCorrector }

func (p *pingErr) Ping(ctx context.Context) error { return errors.New("connection refused") }

// testCtx returns a context with a short timeout, canceled on test cleanup.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return c
}
