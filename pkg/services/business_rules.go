package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ledgersense-io/ledgersense-engine/pkg/catalog"
	"github.com/ledgersense-io/ledgersense-engine/pkg/models"
	"github.com/ledgersense-io/ledgersense-engine/pkg/registry"
)

// genericDomainRoles supplies the workflow-role line for concepts without
// bespoke role text in the registry.
var genericDomainRoles = map[models.Domain]string{
	models.DomainCustomer:    "Customer domain - supports customer onboarding, servicing, and compliance workflows",
	models.DomainAccount:     "Account domain - supports account servicing, balance management, and reporting workflows",
	models.DomainLoan:        "Loan domain - supports loan origination, servicing, and recovery workflows",
	models.DomainTransaction: "Transaction domain - supports transaction processing, reconciliation, and audit workflows",
}

// BusinessRuleService derives the business-rule explanation for a column from
// its matched concept, optionally enriched by the description catalogue.
type BusinessRuleService interface {
	Derive(
		ctx context.Context,
		match *models.ConceptMatch,
		profile *models.ColumnProfile,
		eligibility *models.IdentifierEligibility,
	) *models.ColumnBusinessRules
}

type businessRuleService struct {
	registry      *registry.Registry
	catalog       catalog.DescriptionCatalog
	lookupTimeout time.Duration
	logger        *zap.Logger
}

// NewBusinessRuleService creates a new business rule service. The catalog is
// optional; pass nil to derive rules from the registry alone.
func NewBusinessRuleService(
	reg *registry.Registry,
	cat catalog.DescriptionCatalog,
	lookupTimeout time.Duration,
	logger *zap.Logger,
) BusinessRuleService {
	return &businessRuleService{
		registry:      reg,
		catalog:       cat,
		lookupTimeout: lookupTimeout,
		logger:        logger.Named("business-rules"),
	}
}

// Derive copies the matched concept's rule template, downgrades primary_key
// for ineligible columns, and fills in the explanatory text. A catalogue
// description, when one matches, becomes the business meaning verbatim; a
// failed or slow lookup degrades silently to registry-only text.
func (s *businessRuleService) Derive(
	ctx context.Context,
	match *models.ConceptMatch,
	profile *models.ColumnProfile,
	eligibility *models.IdentifierEligibility,
) *models.ColumnBusinessRules {
	description, section := s.lookupDescription(ctx, profile.ColumnName)

	if match.IsUnknown() {
		return s.deriveUnknown(profile, description, section)
	}

	def, ok := s.registry.Get(match.ConceptKey)
	if !ok {
		// A match the registry cannot resolve should be impossible; treat it
		// like unknown rather than failing the column.
		s.logger.Warn("Matched concept missing from registry",
			zap.String("concept", string(match.ConceptKey)))
		return s.deriveUnknown(profile, description, section)
	}

	rules := models.BusinessRuleSet{
		Unique:        def.Rules.Unique,
		Mandatory:     def.Rules.Mandatory,
		PrimaryKey:    def.Rules.PrimaryKey && eligibility.IsEligible,
		ForeignKey:    def.Rules.ForeignKey,
		Format:        def.Rules.Format,
		AllowedValues: def.Rules.AllowedValues,
	}

	meaning := fmt.Sprintf("%s: %s", def.DisplayLabel(), def.Rules.Reason)
	if description != "" {
		meaning = description
	}

	role := def.WorkflowRole
	if role == "" {
		role = genericDomainRoles[def.Domain]
	}

	return &models.ColumnBusinessRules{
		BusinessMeaning: meaning,
		Rules:           rules,
		WhyRuleExists:   def.Rules.Reason,
		ViolationImpact: def.Rules.ViolationImpact,
		WorkflowRole:    role,
		CatalogSection:  section,
	}
}

// deriveUnknown produces the low-confidence guidance for columns no concept
// claimed.
func (s *businessRuleService) deriveUnknown(profile *models.ColumnProfile, description, section string) *models.ColumnBusinessRules {
	meaning := fmt.Sprintf(
		"The %s column contains data relevant to banking operations. Exact business meaning requires domain expert review.",
		profile.ColumnName)
	if description != "" {
		meaning = description
	}

	return &models.ColumnBusinessRules{
		BusinessMeaning: meaning,
		Rules: models.BusinessRuleSet{
			Format: "Based on data type: " + string(profile.DataType),
		},
		WhyRuleExists:   "Column purpose not clearly identified. Manual review recommended.",
		ViolationImpact: "Impact cannot be determined without proper identification.",
		WorkflowRole:    "Unclassified - requires domain expert review before use in banking workflows",
		CatalogSection:  section,
	}
}

// lookupDescription consults the description catalogue under a bounded
// timeout. Misses and failures both mean "no enrichment available".
func (s *businessRuleService) lookupDescription(ctx context.Context, columnName string) (string, string) {
	if s.catalog == nil {
		return "", ""
	}

	lookupCtx := ctx
	if s.lookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
	}

	entry, ok, err := s.catalog.Lookup(lookupCtx, columnName)
	if err != nil {
		s.logger.Debug("Description lookup failed",
			zap.String("column", columnName),
			zap.Error(err))
		return "", ""
	}
	if !ok {
		return "", ""
	}
	return entry.Description, entry.Section
}
