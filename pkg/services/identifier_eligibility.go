package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ledgersense-io/ledgersense-engine/pkg/models"
)

// identifierUniquenessPct is the minimum uniqueness percentage a column must
// show before any identifier concept can be trusted for it.
const identifierUniquenessPct = 95.0

// descriptiveKeywords mark free-text columns that describe a record rather
// than identify it.
var descriptiveKeywords = []string{
	"name", "city", "description", "remarks", "note", "comment", "address", "street",
}

// contactKeywords mark contact channels. A contact column is never a primary
// key regardless of how unique it happens to be.
var contactKeywords = []string{"phone", "mobile", "email", "contact"}

// eligibilityRule is one ordered eligibility check: the first rule whose
// predicate fails determines the reported reason.
type eligibilityRule struct {
	name      string
	predicate func(e *models.IdentifierEligibility) bool
	reason    func(e *models.IdentifierEligibility) string
}

var eligibilityRules = []eligibilityRule{
	{
		name:      "not descriptive",
		predicate: func(e *models.IdentifierEligibility) bool { return !e.IsDescriptive },
		reason:    func(*models.IdentifierEligibility) string { return "descriptive name" },
	},
	{
		name:      "not contact",
		predicate: func(e *models.IdentifierEligibility) bool { return !e.IsContact },
		reason: func(*models.IdentifierEligibility) string {
			return "contact field, never primary key"
		},
	},
	{
		name: "uniqueness threshold",
		predicate: func(e *models.IdentifierEligibility) bool {
			return e.UniquenessPct >= identifierUniquenessPct
		},
		reason: func(e *models.IdentifierEligibility) string {
			return fmt.Sprintf("uniqueness %.2f%% below the %.0f%% identifier threshold",
				e.UniquenessPct, identifierUniquenessPct)
		},
	},
	{
		name: "stable length or strict pattern",
		predicate: func(e *models.IdentifierEligibility) bool {
			return e.HasFixedLength || e.HasStrictPattern
		},
		reason: func(*models.IdentifierEligibility) string {
			return "no fixed length or strict pattern"
		},
	},
}

// IdentifierEligibilityService decides whether a column is structurally
// allowed to act as a unique identifier, independent of which concept it
// might match.
type IdentifierEligibilityService interface {
	Check(columnName string, profile *models.ColumnProfile) *models.IdentifierEligibility
}

type identifierEligibilityService struct {
	logger *zap.Logger
}

// NewIdentifierEligibilityService creates a new identifier eligibility service.
func NewIdentifierEligibilityService(logger *zap.Logger) IdentifierEligibilityService {
	return &identifierEligibilityService{logger: logger.Named("identifier-eligibility")}
}

// Check evaluates the ordered eligibility rules against the column. Rules
// short-circuit: the first failing rule supplies the reason. The descriptive
// and contact flags are always populated because the concept matcher's gate
// consumes them even when an earlier rule already decided the outcome.
func (s *identifierEligibilityService) Check(columnName string, profile *models.ColumnProfile) *models.IdentifierEligibility {
	normalized := normalizeColumnName(columnName)

	eligibility := &models.IdentifierEligibility{
		UniquenessPct:    profile.UniquenessPercentage,
		HasFixedLength:   profile.HasStableLength(),
		HasStrictPattern: profile.HasStrictPattern(),
		IsDescriptive:    containsAny(normalized, descriptiveKeywords),
		IsContact:        containsAny(normalized, contactKeywords),
	}

	for _, rule := range eligibilityRules {
		if !rule.predicate(eligibility) {
			eligibility.Reason = rule.reason(eligibility)
			s.logger.Debug("Column not identifier-eligible",
				zap.String("column", columnName),
				zap.String("failed_rule", rule.name),
				zap.String("reason", eligibility.Reason))
			return eligibility
		}
	}

	eligibility.IsEligible = true
	eligibility.Reason = "meets all identifier criteria"
	return eligibility
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
