package rules

import (
	"testing"

	"github.com/ClaudioLutz/dublettenbereinigung/internal/model"
	"github.com/stretchr/testify/assert"
)

func rec(surname, secondary string, year int, hasYear bool) model.NormalizedRecord {
	return model.NormalizedRecord{
		Surname:          surname,
		SecondaryName:    secondary,
		EffectiveYear:    year,
		HasEffectiveYear: hasYear,
	}
}

func TestGate_BothSecondaryNamesEmptyAndYearsEqual(t *testing.T) {
	a := rec("mueller", "", 1980, true)
	b := rec("mueller", "", 1980, true)
	assert.True(t, Gate(a, b, model.RejectAmbiguousYear))
}

func TestGate_BothSecondaryNamesNonEmptyMustMatch(t *testing.T) {
	a := rec("mueller", "-schmidt", 1980, true)
	b := rec("mueller", "-schmidt", 1980, true)
	assert.True(t, Gate(a, b, model.RejectAmbiguousYear))

	b2 := rec("mueller", "-other", 1980, true)
	assert.False(t, Gate(a, b2, model.RejectAmbiguousYear))
}

func TestGate_CompoundSurnameSuffixConvention(t *testing.T) {
	a := rec("rohner-stassek", "", 0, false)
	b := rec("rohner", "-stassek", 0, false)
	assert.True(t, Gate(a, b, model.RejectAmbiguousYear))
}

func TestGate_SecondaryNameMismatchRejects(t *testing.T) {
	a := rec("rohner-stassek", "", 0, false)
	b := rec("rohner", "-notsuffix", 0, false)
	assert.False(t, Gate(a, b, model.RejectAmbiguousYear))
}

func TestGate_BothYearsAbsentPasses(t *testing.T) {
	a := rec("mueller", "", 0, false)
	b := rec("mueller", "", 0, false)
	assert.True(t, Gate(a, b, model.RejectAmbiguousYear))
}

func TestGate_YearsDifferReject(t *testing.T) {
	a := rec("mueller", "", 1980, true)
	b := rec("mueller", "", 1985, true)
	assert.False(t, Gate(a, b, model.RejectAmbiguousYear))
}

func TestGate_AmbiguousYearRejectedByDefault(t *testing.T) {
	a := rec("mueller", "", 1980, true)
	b := rec("mueller", "", 0, false)
	assert.False(t, Gate(a, b, model.RejectAmbiguousYear))
}

func TestGate_AmbiguousYearPassesUnderExplicitPolicy(t *testing.T) {
	a := rec("mueller", "", 1980, true)
	b := rec("mueller", "", 0, false)
	assert.True(t, Gate(a, b, model.PassAmbiguousYear))
}
