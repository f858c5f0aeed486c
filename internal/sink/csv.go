package sink

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{
	"match_id", "position", "record_id", "match_type", "confidence_score",
	"given_name", "surname", "secondary_name", "street", "house_number",
	"postal_code", "city",
}

// CSVWriter writes the §6 export schema as a flat CSV, one row per side
// of every match. encoding/csv is used directly: the schema is a fixed
// flat row shape with no nesting, so no third-party CSV library adds
// anything over the standard library here.
type CSVWriter struct {
	w    *csv.Writer
	c    io.Closer
	done bool
}

// NewCSVWriter wraps an io.WriteCloser (typically an *os.File) and writes
// the header row immediately.
func NewCSVWriter(wc io.WriteCloser) (*CSVWriter, error) {
	w := csv.NewWriter(wc)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	return &CSVWriter{w: w, c: wc}, nil
}

// Write appends rows to the CSV, flushing after each batch.
func (cw *CSVWriter) Write(_ context.Context, rows []Row) error {
	for _, r := range rows {
		record := []string{
			r.MatchID,
			r.Position,
			strconv.Itoa(r.RecordID),
			r.MatchType,
			strconv.Itoa(r.Confidence),
			r.GivenName,
			r.Surname,
			r.SecondaryName,
			r.Street,
			r.HouseNumber,
			r.PostalCode,
			r.City,
		}
		if err := cw.w.Write(record); err != nil {
			return err
		}
	}
	cw.w.Flush()
	return cw.w.Error()
}

// Close flushes any buffered rows and closes the underlying writer.
func (cw *CSVWriter) Close() error {
	if cw.done {
		return nil
	}
	cw.done = true
	cw.w.Flush()
	if err := cw.w.Error(); err != nil {
		return err
	}
	return cw.c.Close()
}
