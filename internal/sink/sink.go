// Package sink exports accepted matches to their collaborator-facing
// export schema (spec §6): each match becomes two rows sharing a
// match_id, a position of A or B, and the full record fields. The core
// pipeline does not prescribe a sink — CSV, Redis, and MongoDB
// implementations are provided here, all behind the same Writer
// interface.
package sink

import (
	"context"
	"fmt"

	"github.com/ClaudioLutz/dublettenbereinigung/internal/model"
)

// Row is one exported line of the §6 schema: a match split into its A and
// B sides, each carrying that side's own normalized record fields.
type Row struct {
	MatchID    string
	Position   string // "A" or "B"
	RecordID   int
	MatchType  string
	Confidence int

	GivenName     string
	Surname       string
	SecondaryName string
	Street        string
	HouseNumber   string
	PostalCode    string
	City          string
}

// Writer accepts exported rows. Implementations are expected to be safe
// for sequential use by a single pipeline; the runner's match collector is
// already single-threaded by the time rows reach a Writer.
type Writer interface {
	Write(ctx context.Context, rows []Row) error
	Close() error
}

// Rows expands one match into its two-row export shape, looking up each
// side's normalized record from idx.
func Rows(m model.Match, idx map[int]model.NormalizedRecord) []Row {
	matchID := fmt.Sprintf("%d_%d", m.IDA, m.IDB)
	return []Row{
		rowFor(matchID, "A", m, idx[m.IDA]),
		rowFor(matchID, "B", m, idx[m.IDB]),
	}
}

func rowFor(matchID, position string, m model.Match, r model.NormalizedRecord) Row {
	return Row{
		MatchID:       matchID,
		Position:      position,
		RecordID:      r.ID,
		MatchType:     m.Type.String(),
		Confidence:    m.Confidence,
		GivenName:     r.GivenName,
		Surname:       r.Surname,
		SecondaryName: r.SecondaryName,
		Street:        r.Street,
		HouseNumber:   r.HouseNumber,
		PostalCode:    r.PostalCode,
		City:          r.City,
	}
}
