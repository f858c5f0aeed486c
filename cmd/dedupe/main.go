// Command dedupe runs the person/address deduplication pipeline over a
// CSV dataset and exports the accepted matches.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	appconfig "github.com/ClaudioLutz/dublettenbereinigung/app/config"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/blocking"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/ingest"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/matching"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/model"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/normalize"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/runner"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/search"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/sink"
)

func main() {
	// 1. Load configuration (file + env, layered via viper for flags).
	loadFlags()
	cfg, err := appconfig.Load(viper.GetString("config"))
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// 2. Initialize logger.
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting dedup pipeline",
		zap.Float64("fuzzy_threshold", cfg.FuzzyThreshold),
		zap.Int("confidence_threshold", cfg.ConfidenceThreshold),
	)

	// 3. Ingest.
	inputPath := viper.GetString("input")
	f, err := os.Open(inputPath)
	if err != nil {
		logger.Fatal("failed to open input", zap.String("path", inputPath), zap.Error(err))
	}
	records, err := ingest.CSV(f)
	f.Close()
	if err != nil {
		logger.Fatal("failed to read input csv", zap.Error(err))
	}
	logger.Info("Loaded records", zap.Int("count", len(records)))

	// 4. Normalize once, hold in memory for the rest of the run.
	normalized := normalize.Records(records)
	idx := make(matching.Index, len(normalized))
	for _, n := range normalized {
		idx[n.ID] = n
	}

	// 5. Block.
	blocks := blocking.Blocks(normalized, cfg.MaxBlockSize)
	logger.Info("Assigned blocks", zap.Int("block_count", len(blocks)))

	// 6. Run the matcher.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	result := runner.Run(ctx, idx, blocks, cfg, logger)
	logger.Info("Matching complete",
		zap.Int("raw_match_count", len(result.Matches)),
		zap.Bool("incomplete", result.Incomplete),
		zap.Int("failed_blocks", result.FailedCount),
	)

	// 7. Apply confidence_threshold and export.
	accepted := filterByConfidence(result.Matches, cfg.ConfidenceThreshold)
	logger.Info("Matches above threshold", zap.Int("count", len(accepted)))

	outputPath := viper.GetString("output")
	out, err := os.Create(outputPath)
	if err != nil {
		logger.Fatal("failed to open output", zap.String("path", outputPath), zap.Error(err))
	}
	writer, err := sink.NewCSVWriter(out)
	if err != nil {
		logger.Fatal("failed to initialize csv writer", zap.Error(err))
	}

	for _, m := range accepted {
		if err := writer.Write(ctx, sink.Rows(m, idx)); err != nil {
			logger.Error("failed to write match", zap.Error(err))
		}
	}
	if err := writer.Close(); err != nil {
		logger.Error("failed to close csv writer", zap.Error(err))
	}

	// 8. Optional search-assisted enrichment over the no_address bucket
	// (off by default — never changes which pairs the deterministic
	// pipeline itself emits; purely diagnostic suggestions for review).
	if cfg.UseSearchEnrichment {
		runEnrichment(ctx, normalized, logger)
	}

	if viper.GetBool("serve") {
		serveHealth(logger)
	}
}

// runEnrichment queries a Meilisearch index (built offline by cmd/seedsearch)
// for name-text suggestions on every no_address record — one with neither a
// postal code nor a street, so blocking alone could not place it with
// anything — and writes the ranked suggestions to a CSV file for a human
// reviewer, entirely separate from the matcher's own output.
func runEnrichment(ctx context.Context, normalized []model.NormalizedRecord, logger *zap.Logger) {
	enricher, err := search.NewEnricher(search.Config{
		Host:          viper.GetString("meilisearch.host"),
		APIKey:        viper.GetString("meilisearch.api_key"),
		IndexName:     viper.GetString("meilisearch.index"),
		Timeout:       5 * time.Second,
		MaxCandidates: 20,
	}, logger)
	if err != nil {
		logger.Error("search enrichment unavailable, skipping", zap.Error(err))
		return
	}

	out, err := os.Create(viper.GetString("suggestions_output"))
	if err != nil {
		logger.Error("failed to open suggestions output", zap.Error(err))
		return
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{"record_id", "suggested_record_id", "score"}); err != nil {
		logger.Error("failed to write suggestions header", zap.Error(err))
		return
	}

	suggested := 0
	for _, r := range normalized {
		if r.PostalCode != "" || r.Street != "" {
			continue
		}
		query := r.GivenName + " " + r.Surname
		suggestions, err := enricher.Suggest(ctx, query)
		if err != nil {
			logger.Warn("suggestion query failed", zap.Int("record_id", r.ID), zap.Error(err))
			continue
		}
		for _, s := range suggestions {
			if s.RecordID == r.ID {
				continue
			}
			row := []string{
				strconv.Itoa(r.ID),
				strconv.Itoa(s.RecordID),
				strconv.FormatFloat(s.Score, 'f', 4, 64),
			}
			if err := w.Write(row); err != nil {
				logger.Error("failed to write suggestion row", zap.Error(err))
				continue
			}
			suggested++
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Error("failed to flush suggestions output", zap.Error(err))
	}
	logger.Info("Search enrichment complete", zap.Int("suggestions_written", suggested))
}

func filterByConfidence(matches []model.Match, threshold int) []model.Match {
	out := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if m.Confidence >= threshold {
			out = append(out, m)
		}
	}
	return out
}

// loadFlags layers CLI flags, environment variables, and defaults through
// viper, generalizing the donor's flag/env/file precedence chain from a
// fixed app.yaml lookup to user-supplied input/output/config paths.
func loadFlags() {
	flag.String("config", "config/dedupe.yaml", "path to the YAML config file")
	flag.String("input", "input.csv", "path to the input CSV")
	flag.String("output", "matches.csv", "path to the matches CSV")
	flag.Bool("serve", false, "serve a health endpoint after the run")
	flag.Parse()

	viper.SetDefault("config", "config/dedupe.yaml")
	viper.SetDefault("input", "input.csv")
	viper.SetDefault("output", "matches.csv")
	viper.SetDefault("serve", false)
	viper.SetDefault("suggestions_output", "suggestions.csv")
	viper.SetDefault("meilisearch.host", "http://localhost:7700")
	viper.SetDefault("meilisearch.api_key", "")
	viper.SetDefault("meilisearch.index", "dedupe_names")
	viper.SetEnvPrefix("dedupe")
	viper.AutomaticEnv()

	// Flags given on the command line win over environment and defaults.
	flag.Visit(func(f *flag.Flag) { viper.Set(f.Name, f.Value.String()) })
}

func initLogger() *zap.Logger {
	env := os.Getenv("APP_ENV")
	var zcfg zap.Config
	if env == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	return logger
}

// serveHealth exposes a minimal health endpoint for operators running the
// pipeline as a long-lived batch worker behind a scheduler. It carries no
// pipeline semantics of its own.
func serveHealth(logger *zap.Logger) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("Serving health endpoint", zap.String("port", port))
	if err := router.Run(fmt.Sprintf(":%s", port)); err != nil {
		logger.Fatal("health server failed", zap.Error(err))
	}
}
