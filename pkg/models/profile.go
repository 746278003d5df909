package models

import "slices"

// ============================================================================
// Data Types
// ============================================================================

// DataType identifies the detected value type of a column.
type DataType string

const (
	DataTypeNumeric      DataType = "numeric"
	DataTypeDecimal      DataType = "decimal"
	DataTypeDate         DataType = "date"
	DataTypeText         DataType = "text"
	DataTypeAlphanumeric DataType = "alphanumeric"
)

// ValidDataTypes contains all valid data type values.
var ValidDataTypes = []DataType{
	DataTypeNumeric,
	DataTypeDecimal,
	DataTypeDate,
	DataTypeText,
	DataTypeAlphanumeric,
}

// IsValidDataType checks if the given data type is valid.
func IsValidDataType(d DataType) bool {
	return slices.Contains(ValidDataTypes, d)
}

// IsNumeric returns true for numeric and decimal columns.
func (d DataType) IsNumeric() bool {
	return d == DataTypeNumeric || d == DataTypeDecimal
}

// IsTextLike returns true for columns whose values keep a meaningful
// character length (text and alphanumeric codes).
func (d DataType) IsTextLike() bool {
	return d == DataTypeText || d == DataTypeAlphanumeric
}

// ============================================================================
// Column Profile (Stage 1 Output)
// ============================================================================

// ColumnProfile holds the structural and statistical facts collected for one
// column. It is produced once per column per analysis run, never mutated
// afterwards, and never shared across runs.
type ColumnProfile struct {
	ColumnName string `json:"column_name"`

	// Keywords are the tokenized fragments of the normalized column name.
	Keywords []string `json:"keywords,omitempty"`

	DataType DataType `json:"data_type"`

	// Counts and ratios over the full column
	TotalRecords         int     `json:"total_records"`
	NonNullCount         int     `json:"non_null_count"`
	NullPercentage       float64 `json:"null_percentage"`
	EmptyPercentage      float64 `json:"empty_percentage"`
	UniqueCount          int     `json:"unique_count"`
	UniquenessPercentage float64 `json:"uniqueness_percentage"`

	Patterns ValuePatterns `json:"patterns"`
}

// ValuePatterns carries the pattern-level facts detected from a column's
// values. Ratio fields are computed over a bounded sample of the first 100
// non-null values; length statistics cover the full column for text-like
// types. Optional fields stay nil when a fact does not apply to the column's
// data type.
type ValuePatterns struct {
	// Character-shape ratios over the sample, with booleans at the 0.9
	// threshold used by identifier eligibility.
	OnlyDigits        bool    `json:"only_digits"`
	DigitRatio        float64 `json:"digit_ratio"`
	Alphanumeric      bool    `json:"alphanumeric"`
	AlphanumericRatio float64 `json:"alphanumeric_ratio"`

	// Length statistics (text-like columns only, rune counts)
	MinLength    *int     `json:"min_length,omitempty"`
	MaxLength    *int     `json:"max_length,omitempty"`
	AvgLength    *float64 `json:"avg_length,omitempty"`
	LengthStdDev *float64 `json:"length_stddev,omitempty"`

	FixedLength      bool `json:"fixed_length"`
	FixedLengthValue *int `json:"fixed_length_value,omitempty"`
	NearFixedLength  bool `json:"near_fixed_length"`
	TypicalLength    *int `json:"typical_length,omitempty"`

	// Low-cardinality detection (uniqueness below 20%)
	LowCardinality bool     `json:"low_cardinality"`
	DistinctValues []string `json:"distinct_values,omitempty"`

	// Date columns
	DateFormat string `json:"date_format,omitempty"`

	// Numeric columns
	MinValue    *float64 `json:"min_value,omitempty"`
	MaxValue    *float64 `json:"max_value,omitempty"`
	MeanValue   *float64 `json:"mean_value,omitempty"`
	MedianValue *float64 `json:"median_value,omitempty"`
	HasNegative bool     `json:"has_negative"`
	HasZero     bool     `json:"has_zero"`
	HasPositive bool     `json:"has_positive"`
}

// HasStableLength returns true when the column's values share one length or
// vary by less than one character, the shape identifier columns show.
func (p *ColumnProfile) HasStableLength() bool {
	return p.Patterns.FixedLength || p.Patterns.NearFixedLength
}

// HasStrictPattern returns true when the sampled values are digit-only or
// strictly alphanumeric at the 0.9 ratio threshold.
func (p *ColumnProfile) HasStrictPattern() bool {
	return p.Patterns.OnlyDigits || p.Patterns.Alphanumeric
}
