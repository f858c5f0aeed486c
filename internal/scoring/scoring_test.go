package scoring

import (
	"testing"

	"github.com/ClaudioLutz/dublettenbereinigung/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAddressRatio_AllFourFieldsEqual(t *testing.T) {
	a := model.NormalizedRecord{Street: "hauptstrasse", HouseNumber: "1", PostalCode: "8000", City: "zuerich"}
	b := a
	assert.Equal(t, 1.0, AddressRatio(a, b))
}

func TestAddressRatio_NoCommonFieldsIsZero(t *testing.T) {
	a := model.NormalizedRecord{}
	b := model.NormalizedRecord{}
	assert.Equal(t, 0.0, AddressRatio(a, b))
}

func TestAddressRatio_PartialMatch(t *testing.T) {
	a := model.NormalizedRecord{Street: "hauptstrasse", PostalCode: "8000"}
	b := model.NormalizedRecord{Street: "hauptstrasse", PostalCode: "9000"}
	assert.Equal(t, 0.5, AddressRatio(a, b))
}

func TestConfidence_ExactNormalRange(t *testing.T) {
	c := Confidence(model.MatchTypeExactNormal, 1.0, 0, 0)
	assert.Equal(t, 100, c)
	c = Confidence(model.MatchTypeExactNormal, 0.0, 0, 0)
	assert.Equal(t, 90, c)
}

func TestConfidence_ExactSwappedRange(t *testing.T) {
	c := Confidence(model.MatchTypeExactSwapped, 1.0, 0, 0)
	assert.Equal(t, 95, c)
	c = Confidence(model.MatchTypeExactSwapped, 0.0, 0, 0)
	assert.Equal(t, 85, c)
}

func TestConfidence_PhoneticAssistedNormalRange(t *testing.T) {
	c := Confidence(model.MatchTypePhoneticAssistedNormal, 0.0, 0, 0)
	assert.Equal(t, 72, c)
	c = Confidence(model.MatchTypePhoneticAssistedNormal, 1.0, 0, 0)
	assert.Equal(t, 82, c)
}

func TestConfidence_FuzzyNormalCapsAt95(t *testing.T) {
	c := Confidence(model.MatchTypeFuzzyNormal, 1.0, 1.0, 0)
	assert.Equal(t, 95, c)
}

func TestConfidence_FuzzySwappedHasMinusFiveOffsetAndCaps(t *testing.T) {
	c := Confidence(model.MatchTypeFuzzySwapped, 0.0, 0.875, 0)
	// 50*0 (uses scoreSwapped, not scoreNormal) - should be clamped at 0 here
	assert.Equal(t, 0, c)

	c2 := Confidence(model.MatchTypeFuzzySwapped, 1.0, 0, 0.875)
	want := int(clamp(50*0.875+30*1.0-5, 0, 95))
	assert.Equal(t, want, c2)
}

func TestConfidence_BoundaryScenarioFuzzyNormal(t *testing.T) {
	// spec §8 boundary scenario 4: fuzzy score ~0.875, address_ratio from
	// shared postal code only (1 of 1 common field equal) -> ratio 1.0.
	// 50*0.875 + 30*1.0 = 73.75 -> floor 73, well under the 95 cap.
	c := Confidence(model.MatchTypeFuzzyNormal, 1.0, 0.875, 0)
	assert.Equal(t, 73, c)
}
