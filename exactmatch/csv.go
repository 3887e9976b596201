package exactmatch

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
)

// nssColumn is the header label the protocol reads identifiers from.
const nssColumn = "NSS"

// LoadIdentifiers reads a CSV stream, locates the column labelled NSS in
// the header row, and returns every non-empty value in that column.
func LoadIdentifiers(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading CSV header")
	}

	col := -1
	for i, name := range header {
		if name == nssColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, errors.Errorf("CSV header has no %q column", nssColumn)
	}

	var out []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading CSV row")
		}
		if col >= len(row) {
			continue
		}
		if row[col] == "" {
			continue
		}
		out = append(out, row[col])
	}
	return out, nil
}
