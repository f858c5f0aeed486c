// Package config loads the dedup pipeline's configuration from a YAML
// file with environment-variable overrides, producing a validated
// model.Config. Unlike the donor parser config, there is no package-level
// mutable singleton: callers construct a Config once and pass it by value
// into every collaborator (spec §9).
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ClaudioLutz/dublettenbereinigung/internal/model"
)

// File is the on-disk shape of the YAML config file. Field names mirror
// the option table in spec §6.
type File struct {
	FuzzyThreshold      float64 `yaml:"fuzzy_threshold"`
	PhoneticFallbackLow float64 `yaml:"phonetic_fallback_low"`
	ConfidenceThreshold int     `yaml:"confidence_threshold"`
	UsePhonetic         *bool   `yaml:"use_phonetic"`
	UseParallel         *bool   `yaml:"use_parallel"`
	Workers             int     `yaml:"workers"`
	MaxBlockSize        int     `yaml:"max_block_size"`
	AmbiguousYearPolicy string  `yaml:"ambiguous_year_policy"`
	UseSearchEnrichment bool    `yaml:"use_search_enrichment"`
}

// Environment variables that may override a field loaded from the YAML
// file, generalizing the donor's single USE_LIBPOSTAL override to every
// knob this pipeline exposes.
const (
	envFuzzyThreshold = "DEDUP_FUZZY_THRESHOLD"
	envConfidenceMin  = "DEDUP_CONFIDENCE_THRESHOLD"
	envWorkers        = "DEDUP_WORKERS"
	envUsePhonetic    = "DEDUP_USE_PHONETIC"
	envUseParallel    = "DEDUP_USE_PARALLEL"
)

// Load reads path as YAML, applies environment overrides, validates the
// result via model.NewConfig, and returns it. A missing file falls back to
// model.DefaultConfig before overrides are applied, so a caller can run
// with only environment variables set.
func Load(path string) (model.Config, error) {
	cfg := model.DefaultConfig()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			var f File
			if err := yaml.Unmarshal(b, &f); err != nil {
				return model.Config{}, err
			}
			applyFile(&cfg, f)
		case os.IsNotExist(err):
			// no file at path: proceed with defaults + env overrides
		default:
			return model.Config{}, err
		}
	}

	applyEnv(&cfg)

	return model.NewConfig(cfg)
}

func applyFile(cfg *model.Config, f File) {
	if f.FuzzyThreshold != 0 {
		cfg.FuzzyThreshold = f.FuzzyThreshold
	}
	if f.PhoneticFallbackLow != 0 {
		cfg.PhoneticFallbackLow = f.PhoneticFallbackLow
	}
	if f.ConfidenceThreshold != 0 {
		cfg.ConfidenceThreshold = f.ConfidenceThreshold
	}
	if f.UsePhonetic != nil {
		cfg.UsePhonetic = *f.UsePhonetic
	}
	if f.UseParallel != nil {
		cfg.UseParallel = *f.UseParallel
	}
	if f.Workers != 0 {
		cfg.Workers = f.Workers
	}
	if f.MaxBlockSize != 0 {
		cfg.MaxBlockSize = f.MaxBlockSize
	}
	if f.AmbiguousYearPolicy == "pass" {
		cfg.AmbiguousYearPolicy = model.PassAmbiguousYear
	}
	cfg.UseSearchEnrichment = f.UseSearchEnrichment
}

func applyEnv(cfg *model.Config) {
	if v := os.Getenv(envFuzzyThreshold); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FuzzyThreshold = f
		}
	}
	if v := os.Getenv(envConfidenceMin); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ConfidenceThreshold = n
		}
	}
	if v := os.Getenv(envWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv(envUsePhonetic); v != "" {
		cfg.UsePhonetic = v == "1" || v == "true"
	}
	if v := os.Getenv(envUseParallel); v != "" {
		cfg.UseParallel = v == "1" || v == "true"
	}
}
