package phonetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode_Empty(t *testing.T) {
	assert.Equal(t, "", Encode(""))
	assert.Equal(t, "", Encode("---"))
}

func TestEncode_MeyerFamilyAllEqual(t *testing.T) {
	names := []string{"meyer", "maier", "mayer", "meier"}
	want := Encode(names[0])
	assert.NotEmpty(t, want)
	for _, n := range names[1:] {
		assert.Equal(t, want, Encode(n), "expected %q and %q to encode equally", names[0], n)
	}
}

func TestEncode_SchmidtSchmittEqual(t *testing.T) {
	assert.Equal(t, Encode("schmidt"), Encode("schmitt"))
}

func TestEncode_HyphenDroppedSingleToken(t *testing.T) {
	// A hyphenated compound surname encodes the same as its concatenation.
	assert.Equal(t, Encode("rohnerstassek"), Encode("rohner-stassek"))
}

func TestEncode_LeadingZeroKeptInteriorZeroDropped(t *testing.T) {
	// "anna": a(0) n(6) n(6) a(0) -> collapse adjacent dup -> 0,6,0 ->
	// strip non-leading zero -> "06"
	assert.Equal(t, "06", Encode("anna"))
}

func TestEncode_IsSymmetricEquivalenceRelation(t *testing.T) {
	// Equal names must encode identically; this is the "function of
	// normalized input" invariant from spec §8.
	assert.Equal(t, Encode("schmidt"), Encode("schmidt"))
	assert.True(t, Equal("meyer", "maier"))
	assert.True(t, Equal("maier", "meyer"))
}

func TestEncode_HIsTransparentForAdjacency(t *testing.T) {
	// "thomas" vs a hypothetical "tomas" differ only by the silent H and
	// must encode identically since H contributes no code.
	assert.Equal(t, Encode("tomas"), Encode("thomas"))
}

func TestEqual_EmptyCodesNeverMatch(t *testing.T) {
	assert.False(t, Equal("", ""))
	assert.False(t, Equal("", "meyer"))
}
