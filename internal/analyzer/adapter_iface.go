package analyzer

import "context"

// Corrector rewrites text into its grammatically corrected form.
// Implementations must return when the context is canceled.
type Corrector interface {
	// Name is the backend kind (e.g. "hf", "gemini").
	Name() string
	// Model is the model identifier the backend calls.
	Model() string
	Correct(ctx context.Context, text string) (string, error)
}

// Classifier predicts a label id for a formatted span pair
// (see ClassificationInput). Ids index into the analyzer label table;
// a negative or out-of-range id means "unknown".
type Classifier interface {
	Name() string
	Model() string
	Classify(ctx context.Context, input string) (int, error)
}

// Fingerprinter is implemented by backends whose answers depend on settings
// beyond the model name. The fingerprint becomes part of the cache key.
type Fingerprinter interface {
	Fingerprint() string
}

// Cache stores finished analyses keyed by CacheKey.
type Cache interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Set(ctx context.Context, key string, r Result) error
}

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
