// Package model holds the data shapes shared by every stage of the
// deduplication pipeline: raw records, normalized records, blocks, matches
// and the pipeline configuration.
package model

// Record is a person/address tuple as it arrives from the ingestion
// collaborator. Every field is optional except ID — missing values are the
// zero value for their type (empty string, zero int), never a sentinel.
type Record struct {
	ID             int
	GivenName      string
	Surname        string
	SecondaryName  string
	Street         string
	HouseNumber    string
	PostalCode     string
	City           string
	BirthDate      string // raw date string, parsed for its year only
	BirthYear      int    // 0 means absent
	HasBirthDate   bool
	HasBirthYear   bool
}

// NormalizedRecord is derived from Record once at load time and is
// immutable thereafter. Every downstream stage reads only this type.
type NormalizedRecord struct {
	ID int

	GivenName     string
	Surname       string
	SecondaryName string
	Street        string
	HouseNumber   string
	PostalCode    string
	City          string

	// EffectiveYear is the Birth-Year rule's input: year(BirthDate) if
	// known, else BirthYear, else absent. See HasEffectiveYear.
	EffectiveYear    int
	HasEffectiveYear bool

	GivenPhonetic   string
	SurnamePhonetic string

	BlockingKey string
}

// Block is a group of record ids that share a blocking key. The backing
// dataset is never copied into a Block; only ids are held, per the memory
// budget in spec §5.
type Block struct {
	Key string
	IDs []int
}
