// Package testhelpers provides synthetic column and dataset builders for
// pipeline tests.
package testhelpers

import (
	"fmt"

	"github.com/ledgersense-io/ledgersense-engine/pkg/dataset"
)

// TextColumn builds a column from string values. Blank strings become null
// cells, mirroring how CSV exports encode missing values.
func TextColumn(name string, values ...string) dataset.Column {
	cells := make([]dataset.Cell, 0, len(values))
	for _, v := range values {
		if v == "" {
			cells = append(cells, dataset.Null())
		} else {
			cells = append(cells, dataset.Text(v))
		}
	}
	return dataset.Column{Name: name, Cells: cells}
}

// NumberColumn builds a numeric column from float values.
func NumberColumn(name string, values ...float64) dataset.Column {
	cells := make([]dataset.Cell, 0, len(values))
	for _, v := range values {
		cells = append(cells, dataset.Number(v))
	}
	return dataset.Column{Name: name, Cells: cells}
}

// AllNullColumn builds a column of the given length holding only nulls.
func AllNullColumn(name string, rows int) dataset.Column {
	cells := make([]dataset.Cell, rows)
	for i := range cells {
		cells[i] = dataset.Null()
	}
	return dataset.Column{Name: name, Cells: cells}
}

// AccountNumbers builds n distinct 10-digit account number strings.
func AccountNumbers(n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = fmt.Sprintf("%010d", 1000000001+i)
	}
	return values
}

// TransactionIDs builds n distinct fixed-length alphanumeric transaction IDs.
func TransactionIDs(n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = fmt.Sprintf("TXN%09d", 100000001+i)
	}
	return values
}

// PersonNames cycles through a small pool of person names, giving a column
// with realistic low uniqueness.
func PersonNames(n int) []string {
	pool := []string{
		"Amit Sharma", "Priya Patel", "Rahul Verma", "Sneha Iyer", "Vikram Singh",
		"Anita Desai", "Rajesh Kumar", "Kavita Nair", "Suresh Menon", "Deepa Joshi",
	}
	values := make([]string, n)
	for i := range values {
		values[i] = pool[i%len(pool)]
	}
	return values
}

// Emails builds n distinct email addresses.
func Emails(n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = fmt.Sprintf("user%04d@example.com", i+1)
	}
	return values
}

// NewDataset assembles columns into a named dataset.
func NewDataset(name string, columns ...dataset.Column) *dataset.Dataset {
	return &dataset.Dataset{Name: name, Columns: columns}
}
