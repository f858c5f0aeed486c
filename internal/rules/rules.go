// Package rules implements the Rule Gate: the two hard pre-conditions a
// candidate pair must pass before any similarity scoring is attempted.
package rules

import (
	"strings"

	"github.com/ClaudioLutz/dublettenbereinigung/internal/model"
)

// Gate evaluates R1 (Secondary-Name) then R2 (Birth-Year) and reports
// whether the pair may proceed to the matcher. R1 runs first because it is
// cheaper (string comparisons only, no numeric bookkeeping).
func Gate(a, b model.NormalizedRecord, policy model.AmbiguousYearPolicy) bool {
	return secondaryNameRule(a, b) && birthYearRule(a, b, policy)
}

// secondaryNameRule is R1: both empty passes, both non-empty passes iff
// equal, and exactly one non-empty passes iff it is a suffix of the other
// record's surname — the compound-surname convention where secondary_name
// stores the trailing hyphenated component of a split surname, e.g.
// surname="rohner-stassek" / secondary_name="-stassek" on the sibling row.
func secondaryNameRule(a, b model.NormalizedRecord) bool {
	sa, sb := a.SecondaryName, b.SecondaryName
	switch {
	case sa == "" && sb == "":
		return true
	case sa != "" && sb != "":
		return sa == sb
	case sa != "":
		return strings.HasSuffix(b.Surname, sa)
	default:
		return strings.HasSuffix(a.Surname, sb)
	}
}

// birthYearRule is R2: both absent passes, both present passes iff equal,
// and exactly one present rejects unless the caller has opted into
// PassAmbiguousYear — the documented default is to reject as ambiguous.
func birthYearRule(a, b model.NormalizedRecord, policy model.AmbiguousYearPolicy) bool {
	switch {
	case !a.HasEffectiveYear && !b.HasEffectiveYear:
		return true
	case a.HasEffectiveYear && b.HasEffectiveYear:
		return a.EffectiveYear == b.EffectiveYear
	default:
		return policy == model.PassAmbiguousYear
	}
}
