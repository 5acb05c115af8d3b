// Package collapse implements the R1-R4 collapse rules and overhang
// trimming of spec §4.2: it iteratively merges nodes that represent
// the same underlying exon segment on compatible strands until a
// fixed point is reached, pruning short intron-encroaching overhangs
// along the way when trimming is enabled.
package collapse

import "errors"

// ErrDidNotConverge is returned when the iteration cap is exceeded
// before a pass finds no applicable rule. The graph is left in its
// last consistent state; no partial mutation beyond what was already
// applied is rolled back.
var ErrDidNotConverge = errors.New("collapse: did not converge within iteration budget")

// Option customizes a Config.
type Option func(*Config)

// Config resolves the collapse engine's tunables. The zero Config
// trims nothing and caps iterations at DefaultMaxIterations.
type Config struct {
	Trim              bool
	OverhangThreshold int
	MaxIterations     int
}

// DefaultMaxIterations bounds collapse passes before CollapseDidNotConverge
// is surfaced; it is large enough that only a pathological locus (the
// kind the merge_path9/trim3 fixtures in the original source exercise)
// would ever hit it.
const DefaultMaxIterations = 10_000

// NewConfig resolves a Config from opts.
func NewConfig(opts ...Option) Config {
	cfg := Config{MaxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithTrim enables overhang trimming with the given threshold
// (overhang_threshold >= 0).
func WithTrim(overhangThreshold int) Option {
	return func(cfg *Config) {
		cfg.Trim = true
		cfg.OverhangThreshold = overhangThreshold
	}
}

// WithMaxIterations overrides the default iteration cap.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxIterations = n
		}
	}
}
