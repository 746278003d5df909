package models

import (
	"slices"
	"strings"
)

// ============================================================================
// Domains
// ============================================================================

// Domain is the banking sub-area a concept belongs to.
type Domain string

const (
	DomainCustomer    Domain = "Customer"
	DomainAccount     Domain = "Account"
	DomainLoan        Domain = "Loan"
	DomainTransaction Domain = "Transaction"
)

// ValidDomains contains all valid domain values.
var ValidDomains = []Domain{
	DomainCustomer,
	DomainAccount,
	DomainLoan,
	DomainTransaction,
}

// IsValidDomain checks if the given domain is valid.
func IsValidDomain(d Domain) bool {
	return slices.Contains(ValidDomains, d)
}

// ============================================================================
// Uniqueness Classes
// ============================================================================

// UniquenessClass is the uniqueness band a concept expects of its columns.
// Matching rewards observed uniqueness percentages against fixed thresholds
// per class.
type UniquenessClass string

const (
	UniquenessVeryHigh UniquenessClass = "very_high"
	UniquenessHigh     UniquenessClass = "high"
	UniquenessLow      UniquenessClass = "low"
	UniquenessVeryLow  UniquenessClass = "very_low"
)

// ValidUniquenessClasses contains all valid uniqueness class values.
var ValidUniquenessClasses = []UniquenessClass{
	UniquenessVeryHigh,
	UniquenessHigh,
	UniquenessLow,
	UniquenessVeryLow,
}

// IsValidUniquenessClass checks if the given class is valid.
func IsValidUniquenessClass(c UniquenessClass) bool {
	return slices.Contains(ValidUniquenessClasses, c)
}

// ============================================================================
// Concept Keys
// ============================================================================

// ConceptKey names a banking concept in the registry.
type ConceptKey string

// ConceptUnknown is the reserved key reported when no registry concept
// reaches the minimum match score. It never appears in the registry itself.
const ConceptUnknown ConceptKey = "unknown"

// Well-known concept keys shipped in the embedded registry.
const (
	ConceptCustomerID        ConceptKey = "customer_id"
	ConceptCustomerName      ConceptKey = "customer_name"
	ConceptDateOfBirth       ConceptKey = "date_of_birth"
	ConceptPAN               ConceptKey = "pan"
	ConceptPhoneNumber       ConceptKey = "phone_number"
	ConceptAccountNumber     ConceptKey = "account_number"
	ConceptAccountType       ConceptKey = "account_type"
	ConceptAccountStatus     ConceptKey = "account_status"
	ConceptCurrentBalance    ConceptKey = "current_balance"
	ConceptBranchCode        ConceptKey = "branch_code"
	ConceptLoanID            ConceptKey = "loan_id"
	ConceptLoanAmount        ConceptKey = "loan_amount"
	ConceptInterestRate      ConceptKey = "interest_rate"
	ConceptEMIAmount         ConceptKey = "emi_amount"
	ConceptCollateralType    ConceptKey = "collateral_type"
	ConceptTransactionID     ConceptKey = "transaction_id"
	ConceptTransactionDate   ConceptKey = "transaction_date"
	ConceptTransactionAmount ConceptKey = "transaction_amount"
	ConceptDebit             ConceptKey = "debit"
	ConceptCredit            ConceptKey = "credit"
	ConceptTransactionType   ConceptKey = "transaction_type"
)

// ============================================================================
// Concept Definitions (Registry Entries)
// ============================================================================

// ConceptDefinition is one registry entry: the name patterns, expected data
// shape, and business-rule template for a single banking concept. Definitions
// are loaded once at startup and read-only for the process lifetime.
type ConceptDefinition struct {
	Key          ConceptKey   `json:"concept_key" yaml:"key"`
	Domain       Domain       `json:"domain" yaml:"domain"`
	NamePatterns []string     `json:"name_patterns" yaml:"name_patterns"`
	IsIdentifier bool         `json:"is_identifier" yaml:"is_identifier"`
	DataPatterns DataPatterns `json:"data_patterns" yaml:"data_patterns"`
	Rules        RuleTemplate `json:"business_rules" yaml:"business_rules"`

	// WorkflowRole carries bespoke role text for concepts that drive core
	// banking workflows; concepts without one fall back to a per-domain
	// generic role line in the rule deriver.
	WorkflowRole string `json:"workflow_role,omitempty" yaml:"workflow_role"`
}

// DataPatterns describes the data shape a concept expects of its columns.
type DataPatterns struct {
	Types       []DataType       `json:"types" yaml:"types"`
	Uniqueness  UniquenessClass  `json:"uniqueness,omitempty" yaml:"uniqueness"`
	Length      *LengthSpec      `json:"length,omitempty" yaml:"length"`
	Cardinality *CardinalitySpec `json:"cardinality,omitempty" yaml:"cardinality"`
	Nullable    bool             `json:"nullable" yaml:"nullable"`
}

// LengthSpec is either an exact expected length or an inclusive min/max range.
type LengthSpec struct {
	Exact int `json:"exact,omitempty" yaml:"exact"`
	Min   int `json:"min,omitempty" yaml:"min"`
	Max   int `json:"max,omitempty" yaml:"max"`
}

// IsExact returns true when the spec pins one exact length.
func (l *LengthSpec) IsExact() bool {
	return l != nil && l.Exact > 0
}

// CardinalitySpec bounds the distinct-value count a concept expects.
type CardinalitySpec struct {
	Max int `json:"max" yaml:"max"`
}

// RuleTemplate is the business-rule template attached to a concept. The rule
// deriver copies it per column, downgrading primary_key when the column is
// not identifier-eligible.
type RuleTemplate struct {
	Unique          bool     `json:"unique" yaml:"unique"`
	Mandatory       bool     `json:"mandatory" yaml:"mandatory"`
	PrimaryKey      bool     `json:"primary_key" yaml:"primary_key"`
	ForeignKey      bool     `json:"foreign_key" yaml:"foreign_key"`
	Format          string   `json:"format,omitempty" yaml:"format"`
	AllowedValues   []string `json:"allowed_values,omitempty" yaml:"allowed_values"`
	Reason          string   `json:"reason" yaml:"reason"`
	ViolationImpact string   `json:"violation_impact" yaml:"violation_impact"`
}

// ExpectsType reports whether the definition's expected type set contains t.
func (d *ConceptDefinition) ExpectsType(t DataType) bool {
	return slices.Contains(d.DataPatterns.Types, t)
}

// DisplayLabel renders the human-facing label, e.g. "Account - Account Number".
func (d *ConceptDefinition) DisplayLabel() string {
	words := strings.Split(string(d.Key), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return string(d.Domain) + " - " + strings.Join(words, " ")
}
