package analyzer

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMaxInflight   = 2
	defaultMaxQueueDepth = 32
	defaultMaxWait       = 30 * time.Second
)

// Config encapsulates all tunables for Analyzer construction.
type Config struct {
	Corrector  Corrector
	Classifier Classifier
	// Labels in classifier id order. Empty means DefaultLabels.
	Labels []string
	// Optional result cache; nil disables caching.
	Cache Cache
	// Analyses allowed to call the models at once.
	MaxInflight int
	// Analyses allowed to wait for an in-flight slot.
	MaxQueueDepth int
	// Longest wait for a queue or in-flight slot before returning too busy.
	MaxWait   time.Duration
	Publisher EventPublisher
	Logger    *zerolog.Logger
}

// New constructs an Analyzer from Config.
func New(cfg Config) *Analyzer {
	a := &Analyzer{
		corrector:  cfg.Corrector,
		classifier: cfg.Classifier,
		cache:      cfg.Cache,
		publisher:  cfg.Publisher,
		startTime:  time.Now(),
	}
	if len(cfg.Labels) == 0 {
		a.labels = DefaultLabels()
	} else {
		a.labels = append([]string(nil), cfg.Labels...)
	}
	if a.publisher == nil {
		a.publisher = noopPublisher{}
	}
	if cfg.Logger != nil {
		a.log = *cfg.Logger
	} else {
		a.log = zerolog.Nop()
	}
	// Apply defaults if unset
	inflight := cfg.MaxInflight
	if inflight <= 0 {
		inflight = defaultMaxInflight
	}
	depth := cfg.MaxQueueDepth
	if depth <= 0 {
		depth = defaultMaxQueueDepth
	}
	if cfg.MaxWait <= 0 {
		a.maxWait = defaultMaxWait
	} else {
		a.maxWait = cfg.MaxWait
	}
	a.genCh = make(chan struct{}, inflight)
	a.queueCh = make(chan struct{}, depth)
	return a
}
