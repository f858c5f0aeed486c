package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_UmlautExpansion(t *testing.T) {
	assert.Equal(t, "mueller", String("Müller"))
	assert.Equal(t, "strasse", String("Straße"))
	assert.Equal(t, "baer", String("Bär"))
	assert.Equal(t, "schoen", String("Schön"))
}

func TestString_AccentFolding(t *testing.T) {
	assert.Equal(t, "jose", String("José"))
	assert.Equal(t, "francois", String("François"))
}

func TestString_WhitespaceCollapseAndFilter(t *testing.T) {
	assert.Equal(t, "anna maria", String("  Anna   Maria  "))
	assert.Equal(t, "max-mueller", String("Max-Müller!"))
}

func TestString_Idempotent(t *testing.T) {
	inputs := []string{"Müller", "José-García", "  Anna   Maria  ", "Straße 12"}
	for _, in := range inputs {
		once := String(in)
		twice := String(once)
		assert.Equal(t, once, twice, "normalize is not idempotent for %q", in)
	}
}

func TestPostalCode_DigitsOnly(t *testing.T) {
	assert.Equal(t, "80331", PostalCode("80331"))
	assert.Equal(t, "80331", PostalCode("D-80331"))
	assert.Equal(t, "", PostalCode("n/a"))
}

func TestHouseNumber_DigitsPlusLetterSuffix(t *testing.T) {
	assert.Equal(t, "12b", HouseNumber("12 B"))
	assert.Equal(t, "7", HouseNumber("7"))
	assert.Equal(t, "12a", HouseNumber("12a"))
}

func TestExtractYear(t *testing.T) {
	y, ok := ExtractYear("1985-04-12")
	assert.True(t, ok)
	assert.Equal(t, 1985, y)

	_, ok = ExtractYear("unknown")
	assert.False(t, ok)
}

func TestEffectiveYear_BirthDateTakesPrecedence(t *testing.T) {
	y, ok := EffectiveYear("1990-01-01", true, 1985, true)
	assert.True(t, ok)
	assert.Equal(t, 1990, y)
}

func TestEffectiveYear_FallsBackToBirthYear(t *testing.T) {
	y, ok := EffectiveYear("", false, 1985, true)
	assert.True(t, ok)
	assert.Equal(t, 1985, y)
}

func TestEffectiveYear_AbsentWhenNeitherPresent(t *testing.T) {
	_, ok := EffectiveYear("", false, 0, false)
	assert.False(t, ok)
}

func TestEffectiveYear_UnparseableBirthDateDoesNotFallBack(t *testing.T) {
	// birth_date present but unparseable must not fall through to
	// birth_year: precedence is a rule, not a best-effort fallback.
	_, ok := EffectiveYear("not-a-date", true, 1985, true)
	assert.False(t, ok)
}
