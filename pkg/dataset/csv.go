package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ledgersense-io/ledgersense-engine/pkg/apperrors"
)

// ReadCSV converts CSV input into a Dataset. The first record is the header
// row; blank fields become null cells, mirroring how spreadsheet exports
// encode missing values. Short records pad missing trailing columns with
// nulls so one ragged row cannot fail the whole file.
func ReadCSV(r io.Reader, name string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	ds := &Dataset{Name: name, Columns: make([]Column, len(header))}
	for i, h := range header {
		ds.Columns[i].Name = strings.TrimSpace(h)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		for i := range ds.Columns {
			cell := Null()
			if i < len(record) && strings.TrimSpace(record[i]) != "" {
				cell = Text(record[i])
			}
			ds.Columns[i].Cells = append(ds.Columns[i].Cells, cell)
		}
	}

	if ds.IsEmpty() {
		return nil, apperrors.ErrEmptyDataset
	}
	return ds, nil
}
