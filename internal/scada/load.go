package scada

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LoadAll reads every row of a CSV table with a header row and parses it into
// records. Loading stops at the first failure and no records are returned in
// that case. An empty input yields no records.
func LoadAll(r io.Reader) ([]*Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("reading header: %w", err)}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var records []*Record
	for line := 1; ; line++ {
		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}

		row := make(map[string]string, len(header))
		for i, column := range header {
			row[column] = values[i]
		}

		record, err := ParseRecord(row)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Line = line
			}
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
