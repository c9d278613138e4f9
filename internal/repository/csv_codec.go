package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/givers/contactform/internal/model"
)

const utf8BOM = "\ufeff"

// ReadCSV parses a submission store. Columns are matched by header name, so
// their order on disk does not matter; a column missing from the header is
// backfilled with the empty string, and so is a row shorter than the header.
// A row longer than the header, or malformed quoting, yields ErrCorruptStore.
func ReadCSV(r io.Reader) ([]*model.Submission, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []*model.Submission{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorruptStore, err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	idx := columnIndexes(header)

	subs := []*model.Submission{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptStore, err)
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: expected %d fields, saw %d", ErrCorruptStore, line, len(header), len(rec))
		}
		subs = append(subs, &model.Submission{
			Timestamp: field(rec, idx[0]),
			Name:      field(rec, idx[1]),
			Email:     field(rec, idx[2]),
			Message:   field(rec, idx[3]),
		})
	}
	return subs, nil
}

// WriteCSV serializes subs with the fixed header row.
func WriteCSV(w io.Writer, subs []*model.Submission) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.Columns); err != nil {
		return err
	}
	for _, s := range subs {
		if err := cw.Write(s.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// columnIndexes returns, for each of model.Columns, its position in header or -1.
func columnIndexes(header []string) []int {
	idx := make([]int, len(model.Columns))
	for i, col := range model.Columns {
		idx[i] = -1
		for j, h := range header {
			if strings.TrimSpace(h) == col {
				idx[i] = j
				break
			}
		}
	}
	return idx
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
