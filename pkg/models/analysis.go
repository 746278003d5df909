package models

import "time"

// ============================================================================
// Identifier Eligibility (Stage 2 Output)
// ============================================================================

// IdentifierEligibility records whether a column is structurally allowed to
// act as a unique identifier, independent of which concept it matches. The
// reason always names the first failed check (or confirms all passed).
type IdentifierEligibility struct {
	IsEligible       bool    `json:"is_eligible"`
	Reason           string  `json:"reason"`
	UniquenessPct    float64 `json:"uniqueness_pct"`
	HasFixedLength   bool    `json:"has_fixed_length"`
	HasStrictPattern bool    `json:"has_strict_pattern"`
	IsDescriptive    bool    `json:"is_descriptive"`
	IsContact        bool    `json:"is_contact"`
}

// ============================================================================
// Concept Match (Stage 3 Output)
// ============================================================================

// ConceptMatch is the winning registry concept for a column, or the unknown
// placeholder. MatchScore is the raw post-gate score and stays unclamped;
// only the final confidence is clamped to [0, 100].
type ConceptMatch struct {
	ConceptKey   ConceptKey `json:"concept_key"`
	DisplayLabel string     `json:"display_label,omitempty"`
	Domain       Domain     `json:"domain,omitempty"`
	MatchScore   float64    `json:"match_score"`
	IsIdentifier bool       `json:"is_identifier"`
}

// IsUnknown reports whether no concept reached the minimum match score.
func (m *ConceptMatch) IsUnknown() bool {
	return m == nil || m.ConceptKey == ConceptUnknown
}

// UnknownMatch returns the placeholder match for unclassified columns.
func UnknownMatch() *ConceptMatch {
	return &ConceptMatch{ConceptKey: ConceptUnknown, MatchScore: 0}
}

// ============================================================================
// Business Rules (Stage 5 Output)
// ============================================================================

// BusinessRuleSet is the structured rule portion derived for a column.
type BusinessRuleSet struct {
	Unique        bool     `json:"unique"`
	Mandatory     bool     `json:"mandatory"`
	PrimaryKey    bool     `json:"primary_key"`
	ForeignKey    bool     `json:"foreign_key"`
	Format        string   `json:"format,omitempty"`
	AllowedValues []string `json:"allowed_values,omitempty"`
}

// ColumnBusinessRules is the full rule derivation for a column: the rule set
// plus the explanatory text surfaced to reviewers. CatalogSection is set when
// the external description catalogue matched the column name.
type ColumnBusinessRules struct {
	BusinessMeaning string          `json:"business_meaning"`
	Rules           BusinessRuleSet `json:"rules"`
	WhyRuleExists   string          `json:"why_rule_exists,omitempty"`
	ViolationImpact string          `json:"violation_impact,omitempty"`
	WorkflowRole    string          `json:"workflow_role"`
	CatalogSection  string          `json:"catalog_section,omitempty"`
}

// ============================================================================
// Per-Column Result
// ============================================================================

// ColumnAnalysis is the unit returned to callers for each input column:
// profile, eligibility, match, clamped confidence, and derived rules. Created
// and discarded within a single analysis call.
type ColumnAnalysis struct {
	ColumnName  string                 `json:"column_name"`
	Profile     *ColumnProfile         `json:"profile"`
	Eligibility *IdentifierEligibility `json:"identifier_eligibility"`
	Match       *ConceptMatch          `json:"concept_match"`
	Confidence  float64                `json:"confidence"`
	Rules       *ColumnBusinessRules   `json:"business_rules"`
}

// ============================================================================
// Dataset Summary (Stage 6 Output)
// ============================================================================

// DatasetSummary aggregates the per-column results of one dataset.
type DatasetSummary struct {
	TotalColumns       int            `json:"total_columns"`
	IdentifiedColumns  int            `json:"identified_columns"`
	IdentificationRate float64        `json:"identification_rate"`
	AverageConfidence  float64        `json:"average_confidence"`
	DomainDistribution map[Domain]int `json:"domain_distribution"`
	IdentifierCount    int            `json:"identifier_count"`
}

// ============================================================================
// Analysis Report (API Envelope)
// ============================================================================

// AnalysisReport is the envelope returned by the analysis service: the
// ordered per-column results, the summary, and run metadata.
type AnalysisReport struct {
	AnalysisID      string            `json:"analysis_id"`
	Dataset         string            `json:"dataset,omitempty"`
	RowCount        int               `json:"row_count"`
	RegistryVersion string            `json:"registry_version"`
	Columns         []*ColumnAnalysis `json:"columns_analysis"`
	Summary         *DatasetSummary   `json:"summary"`
	AnalyzedAt      time.Time         `json:"analyzed_at"`
	DurationMs      int64             `json:"duration_ms"`
}
