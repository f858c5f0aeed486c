package normalize

import (
	"testing"

	"github.com/ClaudioLutz/dublettenbereinigung/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRecord_AssemblesNormalizedFields(t *testing.T) {
	r := model.Record{
		ID:            7,
		GivenName:     "Max",
		Surname:       "Müller",
		Street:        "Hauptstraße",
		HouseNumber:   "12 B",
		PostalCode:    "D-80331",
		City:          "München",
		BirthDate:     "1985-04-12",
		HasBirthDate:  true,
	}

	n := normalizeAndCheck(t, r)
	assert.Equal(t, "max", n.GivenName)
	assert.Equal(t, "mueller", n.Surname)
	assert.Equal(t, "hauptstrasse", n.Street)
	assert.Equal(t, "12b", n.HouseNumber)
	assert.Equal(t, "80331", n.PostalCode)
	assert.Equal(t, "muenchen", n.City)
	assert.True(t, n.HasEffectiveYear)
	assert.Equal(t, 1985, n.EffectiveYear)
	assert.Equal(t, "80331|hauptstrasse", n.BlockingKey)
	assert.NotEmpty(t, n.GivenPhonetic)
	assert.NotEmpty(t, n.SurnamePhonetic)
}

func TestRecord_NoAddressFallsBackToPhoneticBlockingKey(t *testing.T) {
	r := model.Record{ID: 1, GivenName: "Anna", Surname: "Schmidt"}
	n := normalizeAndCheck(t, r)
	assert.Contains(t, n.BlockingKey, "phon|")
}

func normalizeAndCheck(t *testing.T, r model.Record) model.NormalizedRecord {
	t.Helper()
	return Record(r)
}

func TestRecords_PreservesOrderAndLength(t *testing.T) {
	in := []model.Record{
		{ID: 1, GivenName: "A"},
		{ID: 2, GivenName: "B"},
		{ID: 3, GivenName: "C"},
	}
	out := Records(in)
	assert.Len(t, out, 3)
	for i, r := range out {
		assert.Equal(t, in[i].ID, r.ID)
	}
}

func TestRecords_MatchesRecordOutputForRepeatedNames(t *testing.T) {
	in := []model.Record{
		{ID: 1, GivenName: "Max", Surname: "Müller", PostalCode: "8000"},
		{ID: 2, GivenName: "Max", Surname: "Müller", PostalCode: "9000"},
	}
	out := Records(in)
	for i, r := range out {
		want := Record(in[i])
		assert.Equal(t, want.GivenName, r.GivenName)
		assert.Equal(t, want.Surname, r.Surname)
		assert.Equal(t, want.GivenPhonetic, r.GivenPhonetic)
		assert.Equal(t, want.SurnamePhonetic, r.SurnamePhonetic)
	}
}
