package normalize

import (
	"github.com/ClaudioLutz/dublettenbereinigung/internal/blocking"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/memoize"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/model"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/phonetic"
)

// Record assembles a model.NormalizedRecord from a raw model.Record. This
// is the single place the pipeline computes normalized strings, phonetic
// codes, the effective birth year, and the blocking key — every downstream
// stage reads only the result (spec §3: records are immutable after
// normalization). It calls String/phonetic.Encode directly; Records, the
// batch entry point, wraps the same work with internal/memoize instead,
// since repeated given/surname spellings across a large corpus are exactly
// what a cache like that is for.
func Record(r model.Record) model.NormalizedRecord {
	return recordWith(r, rawStrings{}, rawPhonetics{})
}

// Records maps Record over a slice, preserving order, with given-name,
// surname, and their phonetic codes run through a shared memoize cache for
// the duration of the batch.
func Records(in []model.Record) []model.NormalizedRecord {
	norm := memoize.NewNormalizer(String, 0)
	phon := memoize.NewPhoneticEncoder(phonetic.Encode, 0)
	cache := memoizedStrings{norm: norm, phon: phon}

	out := make([]model.NormalizedRecord, len(in))
	for i, r := range in {
		out[i] = recordWith(r, cache, cache)
	}
	return out
}

// stringCache and phoneticCache let recordWith share the same normalization
// logic whether or not a memoize cache backs it.
type stringCache interface {
	String(s string) string
}

type phoneticCache interface {
	Encode(normalized string) string
}

type rawStrings struct{}

func (rawStrings) String(s string) string { return String(s) }

type rawPhonetics struct{}

func (rawPhonetics) Encode(normalized string) string { return phonetic.Encode(normalized) }

// memoizedStrings implements both stringCache and phoneticCache by
// delegating to a shared pair of internal/memoize caches.
type memoizedStrings struct {
	norm *memoize.Normalizer
	phon *memoize.PhoneticEncoder
}

func (m memoizedStrings) String(s string) string { return m.norm.String(s) }

func (m memoizedStrings) Encode(normalized string) string { return m.phon.Encode(normalized) }

func recordWith(r model.Record, norm stringCache, phon phoneticCache) model.NormalizedRecord {
	given := norm.String(r.GivenName)
	surname := norm.String(r.Surname)
	street := norm.String(r.Street)
	postal := PostalCode(r.PostalCode)

	givenPhon := phon.Encode(given)
	surnamePhon := phon.Encode(surname)

	year, hasYear := EffectiveYear(r.BirthDate, r.HasBirthDate, r.BirthYear, r.HasBirthYear)

	return model.NormalizedRecord{
		ID:            r.ID,
		GivenName:     given,
		Surname:       surname,
		SecondaryName: norm.String(r.SecondaryName),
		Street:        street,
		HouseNumber:   HouseNumber(r.HouseNumber),
		PostalCode:    postal,
		City:          norm.String(r.City),

		EffectiveYear:    year,
		HasEffectiveYear: hasYear,

		GivenPhonetic:   givenPhon,
		SurnamePhonetic: surnamePhon,

		BlockingKey: blocking.Key(postal, street, givenPhon, surnamePhon),
	}
}
