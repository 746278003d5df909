package models

import "testing"

func TestDataTypePredicates(t *testing.T) {
	tests := []struct {
		dt         DataType
		isNumeric  bool
		isTextLike bool
	}{
		{DataTypeNumeric, true, false},
		{DataTypeDecimal, true, false},
		{DataTypeDate, false, false},
		{DataTypeText, false, true},
		{DataTypeAlphanumeric, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.dt), func(t *testing.T) {
			if got := tt.dt.IsNumeric(); got != tt.isNumeric {
				t.Errorf("IsNumeric() = %v, want %v", got, tt.isNumeric)
			}
			if got := tt.dt.IsTextLike(); got != tt.isTextLike {
				t.Errorf("IsTextLike() = %v, want %v", got, tt.isTextLike)
			}
		})
	}
}

func TestHasStableLength(t *testing.T) {
	fixed := 10
	tests := []struct {
		name    string
		profile ColumnProfile
		want    bool
	}{
		{
			name:    "fixed length",
			profile: ColumnProfile{Patterns: ValuePatterns{FixedLength: true, FixedLengthValue: &fixed}},
			want:    true,
		},
		{
			name:    "near fixed length",
			profile: ColumnProfile{Patterns: ValuePatterns{NearFixedLength: true}},
			want:    true,
		},
		{
			name:    "varied lengths",
			profile: ColumnProfile{},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.HasStableLength(); got != tt.want {
				t.Errorf("HasStableLength() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasStrictPattern(t *testing.T) {
	tests := []struct {
		name    string
		profile ColumnProfile
		want    bool
	}{
		{
			name:    "digit only",
			profile: ColumnProfile{Patterns: ValuePatterns{OnlyDigits: true, DigitRatio: 1.0}},
			want:    true,
		},
		{
			name:    "alphanumeric",
			profile: ColumnProfile{Patterns: ValuePatterns{Alphanumeric: true, AlphanumericRatio: 0.95}},
			want:    true,
		},
		{
			name:    "free text",
			profile: ColumnProfile{Patterns: ValuePatterns{DigitRatio: 0.1, AlphanumericRatio: 0.4}},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.HasStrictPattern(); got != tt.want {
				t.Errorf("HasStrictPattern() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConceptMatchIsUnknown(t *testing.T) {
	if !UnknownMatch().IsUnknown() {
		t.Error("UnknownMatch().IsUnknown() = false, want true")
	}
	var nilMatch *ConceptMatch
	if !nilMatch.IsUnknown() {
		t.Error("nil match IsUnknown() = false, want true")
	}
	m := &ConceptMatch{ConceptKey: ConceptAccountNumber, MatchScore: 105}
	if m.IsUnknown() {
		t.Error("account_number match IsUnknown() = true, want false")
	}
}
