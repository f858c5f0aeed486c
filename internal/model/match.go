package model

import "fmt"

// MatchType is the closed six-value outcome of the matcher. It is backed by
// an int8 and never compared as a string — a tagged enum, not a stringly
// typed field (see spec §9 Design Notes).
type MatchType int8

const (
	MatchTypeUnknown MatchType = iota
	MatchTypeExactNormal
	MatchTypeExactSwapped
	MatchTypeFuzzyNormal
	MatchTypeFuzzySwapped
	MatchTypePhoneticAssistedNormal
	MatchTypePhoneticAssistedSwapped
)

var matchTypeNames = [...]string{
	MatchTypeUnknown:                  "unknown",
	MatchTypeExactNormal:              "exact_normal",
	MatchTypeExactSwapped:             "exact_swapped",
	MatchTypeFuzzyNormal:              "fuzzy_normal",
	MatchTypeFuzzySwapped:             "fuzzy_swapped",
	MatchTypePhoneticAssistedNormal:   "phonetic_assisted_normal",
	MatchTypePhoneticAssistedSwapped:  "phonetic_assisted_swapped",
}

// String implements fmt.Stringer. Unknown values render as "unknown" rather
// than panicking, since this is used in log lines.
func (t MatchType) String() string {
	if int(t) < 0 || int(t) >= len(matchTypeNames) {
		return "unknown"
	}
	return matchTypeNames[t]
}

// Valid reports whether t is one of the six enumerated outcomes.
func (t MatchType) Valid() bool {
	return t >= MatchTypeExactNormal && t <= MatchTypePhoneticAssistedSwapped
}

// rank orders match types for the block runner's "higher-ranking type wins"
// tie-break (spec §4.7): exact_normal > exact_swapped > fuzzy_normal >
// fuzzy_swapped > phonetic_assisted_normal > phonetic_assisted_swapped.
var typeRank = map[MatchType]int{
	MatchTypeExactNormal:             6,
	MatchTypeExactSwapped:            5,
	MatchTypeFuzzyNormal:             4,
	MatchTypeFuzzySwapped:            3,
	MatchTypePhoneticAssistedNormal:  2,
	MatchTypePhoneticAssistedSwapped: 1,
}

// Outranks reports whether t should win over other when the same pair is
// produced by more than one stage or chunk.
func (t MatchType) Outranks(other MatchType) bool {
	return typeRank[t] > typeRank[other]
}

// PairKey identifies a match by its ordered record ids, used as a map key
// by the block runner's dedup collector.
type PairKey struct {
	A, B int
}

// NewPairKey builds a PairKey with a < b enforced, per spec §3's
// id_a < id_b invariant.
func NewPairKey(a, b int) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

// Match is a single accepted candidate pair with its outcome type and
// confidence score.
type Match struct {
	IDA        int
	IDB        int
	Type       MatchType
	Confidence int
}

// String renders a Match for logs, e.g. "3<->9 exact_normal (96)".
func (m Match) String() string {
	return fmt.Sprintf("%d<->%d %s (%d)", m.IDA, m.IDB, m.Type, m.Confidence)
}
