// Package scoring computes the confidence_score for an accepted match and
// the address_ratio it is partly derived from.
package scoring

import "github.com/ClaudioLutz/dublettenbereinigung/internal/model"

// AddressRatio is the fraction of the four address fields {street,
// house_number, postal_code, city} that are equal after normalization, out
// of the fields that are non-empty in *both* records. Zero when neither
// record has any address field populated.
func AddressRatio(a, b model.NormalizedRecord) float64 {
	fieldsA := [4]string{a.Street, a.HouseNumber, a.PostalCode, a.City}
	fieldsB := [4]string{b.Street, b.HouseNumber, b.PostalCode, b.City}

	common := 0
	equal := 0
	for i := range fieldsA {
		if fieldsA[i] == "" || fieldsB[i] == "" {
			continue
		}
		common++
		if fieldsA[i] == fieldsB[i] {
			equal++
		}
	}
	if common == 0 {
		return 0.0
	}
	return float64(equal) / float64(common)
}

// Confidence computes the integer confidence score for an accepted match,
// per the per-type formula and interval in spec §4.6. scoreNormal and
// scoreSwapped are the Stage 2 blended similarity scores; for exact and
// phonetic-assisted types they are unused and may be zero.
func Confidence(matchType model.MatchType, addressRatio, scoreNormal, scoreSwapped float64) int {
	var raw float64
	switch matchType {
	case model.MatchTypeExactNormal:
		raw = clamp(90+10*addressRatio, 90, 100)
	case model.MatchTypeExactSwapped:
		raw = clamp(85+10*addressRatio, 85, 95)
	case model.MatchTypePhoneticAssistedNormal:
		raw = clamp(72+10*addressRatio, 72, 82)
	case model.MatchTypePhoneticAssistedSwapped:
		raw = clamp(70+10*addressRatio, 70, 80)
	case model.MatchTypeFuzzyNormal:
		raw = clamp(50*scoreNormal+30*addressRatio, 0, 95)
	case model.MatchTypeFuzzySwapped:
		raw = clamp(50*scoreSwapped+30*addressRatio-5, 0, 95)
	default:
		return 0
	}
	return int(raw)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
