package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ClaudioLutz/dublettenbereinigung/internal/matching"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/model"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/normalize"
)

func buildDataset(records ...model.Record) (matching.Index, []model.Block) {
	idx := make(matching.Index, len(records))
	ids := make([]int, 0, len(records))
	for _, r := range records {
		n := normalize.Record(r)
		idx[n.ID] = n
		ids = append(ids, n.ID)
	}
	return idx, []model.Block{{Key: "test", IDs: ids}}
}

func TestRun_SequentialProducesExpectedMatch(t *testing.T) {
	idx, blocks := buildDataset(
		model.Record{ID: 1, GivenName: "Max", Surname: "Mueller", BirthYear: 1980, HasBirthYear: true},
		model.Record{ID: 2, GivenName: "Max", Surname: "Mueller", BirthYear: 1980, HasBirthYear: true},
	)
	cfg := model.DefaultConfig()
	res := Run(context.Background(), idx, blocks, cfg, zap.NewNop())
	assert.False(t, res.Incomplete)
	assert.Equal(t, 0, res.FailedCount)
	assert.Len(t, res.Matches, 1)
	assert.Equal(t, model.MatchTypeExactNormal, res.Matches[0].Type)
}

func TestRun_ParallelPathUsedAboveSequentialThreshold(t *testing.T) {
	// Build more than sequentialThreshold blocks so Run takes the
	// worker-pool path; every block holds one exactly matching pair.
	idx := make(matching.Index)
	blocks := make([]model.Block, 0, 20)
	nextID := 1
	for i := 0; i < 20; i++ {
		a := model.Record{ID: nextID, GivenName: "Max", Surname: "Mueller", BirthYear: 1980, HasBirthYear: true}
		nextID++
		b := model.Record{ID: nextID, GivenName: "Max", Surname: "Mueller", BirthYear: 1980, HasBirthYear: true}
		nextID++
		na, nb := normalize.Record(a), normalize.Record(b)
		idx[na.ID] = na
		idx[nb.ID] = nb
		blocks = append(blocks, model.Block{Key: "blk", IDs: []int{na.ID, nb.ID}})
	}

	cfg := model.DefaultConfig()
	res := Run(context.Background(), idx, blocks, cfg, zap.NewNop())
	assert.False(t, res.Incomplete)
	assert.Equal(t, 0, res.FailedCount)
	assert.Len(t, res.Matches, 20)
}

func TestRun_CancellationReturnsPartialResultsWithIncompleteFlag(t *testing.T) {
	idx := make(matching.Index)
	blocks := make([]model.Block, 0, 20)
	nextID := 1
	for i := 0; i < 20; i++ {
		a := model.Record{ID: nextID, GivenName: "Max", Surname: "Mueller"}
		nextID++
		na := normalize.Record(a)
		idx[na.ID] = na
		blocks = append(blocks, model.Block{Key: "blk", IDs: []int{na.ID}})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already cancelled before Run starts

	cfg := model.DefaultConfig()
	res := Run(ctx, idx, blocks, cfg, zap.NewNop())
	assert.True(t, res.Incomplete)
}

func TestRun_EmptyBlockIsNotAFailure(t *testing.T) {
	idx := make(matching.Index)
	blocks := []model.Block{{Key: "empty", IDs: nil}}
	cfg := model.DefaultConfig()
	res := Run(context.Background(), idx, blocks, cfg, zap.NewNop())
	assert.Equal(t, 0, res.FailedCount)
	assert.Empty(t, res.Matches)
}

func TestCollector_HigherRankingTypeWinsOnDuplicatePair(t *testing.T) {
	c := newCollector()
	c.add([]model.Match{{IDA: 1, IDB: 2, Type: model.MatchTypeFuzzyNormal, Confidence: 80}})
	c.add([]model.Match{{IDA: 1, IDB: 2, Type: model.MatchTypeExactNormal, Confidence: 100}})
	matches := c.matches()
	assert.Len(t, matches, 1)
	assert.Equal(t, model.MatchTypeExactNormal, matches[0].Type)
}

func TestCollector_LowerRankingTypeDoesNotOverwrite(t *testing.T) {
	c := newCollector()
	c.add([]model.Match{{IDA: 1, IDB: 2, Type: model.MatchTypeExactNormal, Confidence: 100}})
	c.add([]model.Match{{IDA: 1, IDB: 2, Type: model.MatchTypeFuzzyNormal, Confidence: 80}})
	matches := c.matches()
	assert.Len(t, matches, 1)
	assert.Equal(t, model.MatchTypeExactNormal, matches[0].Type)
}
