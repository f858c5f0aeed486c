// Package runner drives the two-stage matcher over every block of a
// dataset. It is the only place in the pipeline that holds concurrency:
// blocks are processed in parallel by a bounded worker pool, while work
// inside a single block stays single-threaded (spec §5).
package runner

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/ClaudioLutz/dublettenbereinigung/internal/matching"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/model"
)

// sequentialThreshold is the block count at or below which the runner
// skips the worker pool: startup overhead would exceed the gain.
const sequentialThreshold = 10

// Result is the outcome of a full run: the deduplicated match set plus
// bookkeeping the caller needs to decide whether the run is trustworthy.
type Result struct {
	Matches     []model.Match
	Incomplete  bool // true if ctx was cancelled before all blocks ran
	FailedCount int  // blocks dropped due to a worker panic
}

// Run evaluates every block against idx and cfg, fanning work out across a
// worker pool sized cfg.Workers (0 means cores-1, floor 1). It falls back
// to sequential execution when len(blocks) <= sequentialThreshold. The
// normalized dataset (idx) is shared read-only with every worker and never
// cloned.
func Run(ctx context.Context, idx matching.Index, blocks []model.Block, cfg model.Config, logger *zap.Logger) Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !cfg.UseParallel || len(blocks) <= sequentialThreshold {
		return runSequential(ctx, idx, blocks, cfg, logger)
	}
	return runParallel(ctx, idx, blocks, cfg, logger)
}

func runSequential(ctx context.Context, idx matching.Index, blocks []model.Block, cfg model.Config, logger *zap.Logger) Result {
	collector := newCollector()
	var incomplete bool
	var failed int

	for _, b := range blocks {
		select {
		case <-ctx.Done():
			incomplete = true
		default:
		}
		if incomplete {
			break
		}

		matches, ok := safeEvaluate(idx, b, cfg, logger)
		if !ok {
			failed++
			continue
		}
		collector.add(matches)
	}

	return Result{Matches: collector.matches(), Incomplete: incomplete, FailedCount: failed}
}

func runParallel(ctx context.Context, idx matching.Index, blocks []model.Block, cfg model.Config, logger *zap.Logger) Result {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() - 1
	}
	if workers < 1 {
		workers = 1
	}

	work := make(chan model.Block, workers*2)
	results := make(chan []model.Match, workers*2)

	collector := newCollector()
	var failed int64
	var failedMu sync.Mutex

	var drainWG sync.WaitGroup
	drainWG.Add(1)
	go func() {
		defer drainWG.Done()
		for matches := range results {
			collector.add(matches)
		}
	}()

	var workerWG sync.WaitGroup
	for i := 0; i < workers; i++ {
		workerWG.Add(1)
		go func() {
			defer workerWG.Done()
			for b := range work {
				matches, ok := safeEvaluate(idx, b, cfg, logger)
				if !ok {
					failedMu.Lock()
					failed++
					failedMu.Unlock()
					continue
				}
				results <- matches
			}
		}()
	}

	var incomplete bool
feed:
	for _, b := range blocks {
		select {
		case <-ctx.Done():
			incomplete = true
			break feed
		case work <- b:
		}
	}
	close(work)

	workerWG.Wait()
	close(results)
	drainWG.Wait()

	return Result{Matches: collector.matches(), Incomplete: incomplete, FailedCount: int(failed)}
}

// safeEvaluate runs the matcher for one block, recovering a panic into a
// logged failure so one malformed block never aborts the whole run.
func safeEvaluate(idx matching.Index, b model.Block, cfg model.Config, logger *zap.Logger) (matches []model.Match, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("block evaluation panicked; dropping block",
				zap.String("blocking_key", b.Key),
				zap.Int("block_size", len(b.IDs)),
				zap.Any("panic", r),
			)
			ok = false
		}
	}()

	if len(b.IDs) == 0 {
		logger.Debug("block produced no candidates", zap.String("blocking_key", b.Key))
		return nil, true
	}

	return matching.Block(idx, b.IDs, cfg), true
}

// collector deduplicates matches by (id_a, id_b), keeping the
// higher-ranking match type when the same pair is produced more than once
// (spec §4.7). It is safe for concurrent use from multiple producers.
type collector struct {
	mu   sync.Mutex
	byID map[model.PairKey]model.Match
}

func newCollector() *collector {
	return &collector{byID: make(map[model.PairKey]model.Match)}
}

func (c *collector) add(batch []model.Match) {
	if len(batch) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range batch {
		key := model.NewPairKey(m.IDA, m.IDB)
		existing, seen := c.byID[key]
		if !seen || m.Type.Outranks(existing.Type) {
			c.byID[key] = m
		}
	}
}

func (c *collector) matches() []model.Match {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Match, 0, len(c.byID))
	for _, m := range c.byID {
		out = append(out, m)
	}
	return out
}
