// Package ingest adapts a tabular CSV source into []model.Record. This is
// the "ingestion collaborator" the core pipeline deliberately treats as
// out of scope (spec §1 Non-goals): it binds column names to the record's
// semantic roles and nothing more.
package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/ClaudioLutz/dublettenbereinigung/internal/model"
)

// expected column headers, matched case-insensitively; order in the file
// does not matter.
const (
	colID            = "id"
	colGivenName     = "given_name"
	colSurname       = "surname"
	colSecondaryName = "secondary_name"
	colStreet        = "street"
	colHouseNumber   = "house_number"
	colPostalCode    = "postal_code"
	colCity          = "city"
	colBirthDate     = "birth_date"
	colBirthYear     = "birth_year"
)

// CSV reads a CSV file with a header row and returns one model.Record per
// data row. Missing values (empty cells) become the zero value for their
// field, never an error — malformed input degrades a single record, it
// never aborts the read (spec §7).
func CSV(r io.Reader) ([]model.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // short rows degrade to empty cells

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	cols := columnIndex(header)

	var records []model.Record
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue // malformed row: skip it, keep reading
			}
			return records, err
		}
		records = append(records, rowToRecord(cols, row, rowNum))
	}
	return records, nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func cell(cols map[string]int, row []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func rowToRecord(cols map[string]int, row []string, fallbackID int) model.Record {
	r := model.Record{
		ID:            fallbackID,
		GivenName:     cell(cols, row, colGivenName),
		Surname:       cell(cols, row, colSurname),
		SecondaryName: cell(cols, row, colSecondaryName),
		Street:        cell(cols, row, colStreet),
		HouseNumber:   cell(cols, row, colHouseNumber),
		PostalCode:    cell(cols, row, colPostalCode),
		City:          cell(cols, row, colCity),
		BirthDate:     cell(cols, row, colBirthDate),
	}

	if id := cell(cols, row, colID); id != "" {
		if n, err := strconv.Atoi(id); err == nil {
			r.ID = n
		}
	}
	r.HasBirthDate = r.BirthDate != ""

	if y := cell(cols, row, colBirthYear); y != "" {
		if n, err := strconv.Atoi(y); err == nil {
			r.BirthYear = n
			r.HasBirthYear = true
		}
	}

	return r
}
