// Package matching runs the two-stage matcher (spec §4.5) over a single
// block of records: Stage 1 exact matching, then Stage 2 fuzzy matching
// with an optional phonetic fallback band for pairs Stage 1 did not claim.
package matching

import (
	"github.com/ClaudioLutz/dublettenbereinigung/internal/model"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/rules"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/scoring"
)

// Index gives matching a read-only view of the normalized dataset keyed by
// record id. The block runner builds one Index once and shares it across
// every worker.
type Index map[int]model.NormalizedRecord

// Block evaluates every candidate pair in ids against the Rule Gate and
// then the two-stage matcher, returning the accepted matches (confidence
// already computed, pre-threshold filtering left to the caller). ids are
// not assumed sorted or deduplicated beyond what the blocker guarantees.
func Block(idx Index, ids []int, cfg model.Config) []model.Match {
	matches := make([]model.Match, 0)
	matchedInStage1 := make(map[model.PairKey]bool)

	// Stage 1: exact, in both orders.
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := orderByID(idx, ids[i], ids[j])
			if a.GivenName == "" || a.Surname == "" {
				continue
			}
			if b.GivenName == "" || b.Surname == "" {
				continue
			}
			if !rules.Gate(a, b, cfg.AmbiguousYearPolicy) {
				continue
			}
			mt, ok := stage1(a, b)
			if !ok {
				continue
			}
			key := model.NewPairKey(a.ID, b.ID)
			matchedInStage1[key] = true
			ratio := scoring.AddressRatio(a, b)
			conf := scoring.Confidence(mt, ratio, 0, 0)
			matches = append(matches, model.Match{IDA: key.A, IDB: key.B, Type: mt, Confidence: conf})
		}
	}

	// Stage 2: fuzzy + phonetic fallback, skipping anything Stage 1 claimed.
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := orderByID(idx, ids[i], ids[j])
			key := model.NewPairKey(a.ID, b.ID)
			if matchedInStage1[key] {
				continue
			}
			if !rules.Gate(a, b, cfg.AmbiguousYearPolicy) {
				continue
			}
			mt, scoreNormal, scoreSwapped, ok := stage2(a, b, cfg)
			if !ok {
				continue
			}
			ratio := scoring.AddressRatio(a, b)
			conf := scoring.Confidence(mt, ratio, scoreNormal, scoreSwapped)
			matches = append(matches, model.Match{IDA: key.A, IDB: key.B, Type: mt, Confidence: conf})
		}
	}

	return matches
}

// codeEqual reports whether two phonetic codes match. Two empty codes are
// not considered equal: the phonetic fallback requires both names to have
// actually encoded to something.
func codeEqual(a, b string) bool {
	return a != "" && a == b
}

// orderByID returns the two records with a.ID < b.ID, matching the
// id_a < id_b invariant every match must carry.
func orderByID(idx Index, x, y int) (model.NormalizedRecord, model.NormalizedRecord) {
	a, b := idx[x], idx[y]
	if a.ID > b.ID {
		a, b = b, a
	}
	return a, b
}

// stage1 checks direct and swapped exact equality of normalized names.
func stage1(a, b model.NormalizedRecord) (model.MatchType, bool) {
	if a.GivenName == b.GivenName && a.Surname == b.Surname {
		return model.MatchTypeExactNormal, true
	}
	if a.GivenName == b.Surname && a.Surname == b.GivenName {
		return model.MatchTypeExactSwapped, true
	}
	return model.MatchTypeUnknown, false
}

// stage2 computes the blended normal/swapped similarity, accepts above
// fuzzy_threshold, and falls back to phonetic equality in the band between
// phonetic_fallback_low and fuzzy_threshold.
func stage2(a, b model.NormalizedRecord, cfg model.Config) (model.MatchType, float64, float64, bool) {
	dg := sim(a.GivenName, b.GivenName)
	ds := sim(a.Surname, b.Surname)
	scoreNormal := (dg + ds) / 2

	swg := sim(a.GivenName, b.Surname)
	sws := sim(a.Surname, b.GivenName)
	scoreSwapped := (swg + sws) / 2

	best := scoreNormal
	bestIsSwapped := false
	if scoreSwapped > scoreNormal {
		best = scoreSwapped
		bestIsSwapped = true
	}

	if best >= cfg.FuzzyThreshold {
		if bestIsSwapped {
			return model.MatchTypeFuzzySwapped, scoreNormal, scoreSwapped, true
		}
		return model.MatchTypeFuzzyNormal, scoreNormal, scoreSwapped, true
	}

	if !cfg.UsePhonetic || best < cfg.PhoneticFallbackLow {
		return model.MatchTypeUnknown, 0, 0, false
	}

	pNormal := codeEqual(a.GivenPhonetic, b.GivenPhonetic) && codeEqual(a.SurnamePhonetic, b.SurnamePhonetic)
	pSwapped := codeEqual(a.GivenPhonetic, b.SurnamePhonetic) && codeEqual(a.SurnamePhonetic, b.GivenPhonetic)

	switch {
	case !pNormal && pSwapped:
		return model.MatchTypePhoneticAssistedSwapped, scoreNormal, scoreSwapped, true
	case pNormal:
		return model.MatchTypePhoneticAssistedNormal, scoreNormal, scoreSwapped, true
	default:
		return model.MatchTypeUnknown, 0, 0, false
	}
}
