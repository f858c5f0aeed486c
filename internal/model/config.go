package model

import "fmt"

// AmbiguousYearPolicy decides how the Birth-Year rule (R2) treats a
// candidate pair where exactly one record carries year information. The
// spec's default is to reject as ambiguous; a caller can opt into the
// looser behavior explicitly (spec §9 open question).
type AmbiguousYearPolicy int8

const (
	// RejectAmbiguousYear rejects a pair when only one side has year
	// information. This is the documented default.
	RejectAmbiguousYear AmbiguousYearPolicy = iota
	// PassAmbiguousYear passes a pair in that same situation. Must be
	// selected explicitly; never the default.
	PassAmbiguousYear
)

// Config is the pipeline's configuration. It is constructed once via
// NewConfig or DefaultConfig and then shared read-only with every
// collaborator — there is no package-level mutable singleton (spec §9).
type Config struct {
	FuzzyThreshold     float64
	PhoneticFallbackLow float64
	ConfidenceThreshold int
	UsePhonetic         bool
	UseParallel         bool
	Workers             int // 0 means "cores - 1, floor 1"
	MaxBlockSize        int

	AmbiguousYearPolicy AmbiguousYearPolicy

	// UseSearchEnrichment turns on the optional Meilisearch-assisted
	// candidate suggestion pass over the no_address bucket. Off by
	// default: it never changes which pairs the core pipeline emits.
	UseSearchEnrichment bool
}

// DefaultConfig returns the spec §6 defaults.
func DefaultConfig() Config {
	return Config{
		FuzzyThreshold:      0.70,
		PhoneticFallbackLow: 0.60,
		ConfidenceThreshold: 70,
		UsePhonetic:         true,
		UseParallel:         true,
		Workers:             0,
		MaxBlockSize:        10000,
		AmbiguousYearPolicy: RejectAmbiguousYear,
		UseSearchEnrichment: false,
	}
}

// NewConfig validates cfg and returns it, or an error describing the first
// invalid field. Invalid configuration is a fatal, fail-fast condition
// caught here at construction — never mid-run (spec §7).
func NewConfig(cfg Config) (Config, error) {
	if cfg.FuzzyThreshold < 0 || cfg.FuzzyThreshold > 1 {
		return Config{}, fmt.Errorf("model: fuzzy_threshold %.3f out of range [0, 1]", cfg.FuzzyThreshold)
	}
	if cfg.PhoneticFallbackLow < 0 || cfg.PhoneticFallbackLow > 1 {
		return Config{}, fmt.Errorf("model: phonetic_fallback_low %.3f out of range [0, 1]", cfg.PhoneticFallbackLow)
	}
	if cfg.PhoneticFallbackLow > cfg.FuzzyThreshold {
		return Config{}, fmt.Errorf("model: phonetic_fallback_low %.3f must not exceed fuzzy_threshold %.3f", cfg.PhoneticFallbackLow, cfg.FuzzyThreshold)
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 100 {
		return Config{}, fmt.Errorf("model: confidence_threshold %d out of range [0, 100]", cfg.ConfidenceThreshold)
	}
	if cfg.Workers < 0 {
		return Config{}, fmt.Errorf("model: workers %d must not be negative", cfg.Workers)
	}
	if cfg.MaxBlockSize <= 0 {
		return Config{}, fmt.Errorf("model: max_block_size %d must be positive", cfg.MaxBlockSize)
	}
	return cfg, nil
}
