package dataset

import (
	"encoding/json"
	"fmt"
)

// UnmarshalJSON decodes one JSON value into a cell: null → null cell, number
// → numeric cell (kept at source precision via json.Number), string → text
// cell. Other JSON types are rejected so malformed payloads fail loudly at
// the boundary instead of polluting profiles.
func (c *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Null()
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*c = Cell{value: num.String()}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Text(s)
		return nil
	}

	return fmt.Errorf("cell value must be null, a number, or a string, got %s", data)
}

// MarshalJSON renders null cells as JSON null and everything else as a string.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.isNull {
		return []byte("null"), nil
	}
	return json.Marshal(c.value)
}

// ColumnInput is the JSON shape of one column in an analysis request.
type ColumnInput struct {
	Name   string `json:"name"`
	Values []Cell `json:"values"`
}

// Request is the JSON analysis request body.
type Request struct {
	Dataset string        `json:"dataset,omitempty"`
	Columns []ColumnInput `json:"columns"`
}

// ToDataset converts a decoded request into a Dataset.
func (r *Request) ToDataset() *Dataset {
	ds := &Dataset{Name: r.Dataset, Columns: make([]Column, 0, len(r.Columns))}
	for _, col := range r.Columns {
		ds.Columns = append(ds.Columns, Column{Name: col.Name, Cells: col.Values})
	}
	return ds
}
