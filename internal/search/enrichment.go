// Package search provides an optional, off-by-default Meilisearch-backed
// enrichment pass over the no_address blocking bucket. It never changes
// which pairs the core pipeline emits — it only surfaces extra candidate
// suggestions for human review when a block has no postal address to key
// on at all.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// Config configures the Meilisearch connection and query shape.
type Config struct {
	Host          string
	APIKey        string
	IndexName     string
	Timeout       time.Duration
	MaxCandidates int
}

// Suggestion is a candidate record id Meilisearch considers similar to
// the query record, for a human reviewer's consideration — never fed back
// into the deterministic matcher.
type Suggestion struct {
	RecordID int
	Score    float64
}

// Enricher queries a Meilisearch index of normalized given/surname text
// for records similar to a no-address record, independent of the blocking
// and matching stages.
type Enricher struct {
	client    meilisearch.ServiceManager
	logger    *zap.Logger
	indexName string
	timeout   time.Duration
	maxHits   int
}

// NewEnricher connects to Meilisearch and verifies the server is healthy
// before returning, the same fail-fast construction the donor gazetteer
// searcher uses.
func NewEnricher(cfg Config, logger *zap.Logger) (*Enricher, error) {
	client := meilisearch.New(cfg.Host, meilisearch.WithAPIKey(cfg.APIKey))

	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("search: connect to meilisearch: %w", err)
	}

	maxHits := cfg.MaxCandidates
	if maxHits <= 0 {
		maxHits = 20
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Enricher{
		client:    client,
		logger:    logger,
		indexName: cfg.IndexName,
		timeout:   timeout,
		maxHits:   maxHits,
	}, nil
}

// Suggest queries the index for records whose indexed name text resembles
// query (typically "{given} {surname}" for a record with no postal
// address), returning ranked suggestions for diagnostic review.
func (e *Enricher) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	if query == "" {
		return nil, nil
	}

	index := e.client.Index(e.indexName)
	result, err := index.Search(query, &meilisearch.SearchRequest{
		Limit: int64(e.maxHits),
	})
	if err != nil {
		return nil, fmt.Errorf("search: query failed: %w", err)
	}

	suggestions := parseHits(result.Hits)

	e.logger.Debug("search: suggestions produced",
		zap.String("query", query),
		zap.Int("count", len(suggestions)),
	)
	return suggestions, nil
}

// parseHits converts raw Meilisearch hit maps into Suggestions, skipping
// any hit missing a numeric record_id — a malformed index document should
// not abort the whole suggestion batch.
func parseHits(hits []interface{}) []Suggestion {
	suggestions := make([]Suggestion, 0, len(hits))
	for _, hit := range hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		idFloat, ok := hitMap["record_id"].(float64)
		if !ok {
			continue
		}
		score := 0.0
		if s, ok := hitMap["_rankingScore"].(float64); ok {
			score = s
		}
		suggestions = append(suggestions, Suggestion{RecordID: int(idFloat), Score: score})
	}
	return suggestions
}
