package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ledgersense-io/ledgersense-engine/pkg/catalog"
	"github.com/ledgersense-io/ledgersense-engine/pkg/models"
	"github.com/ledgersense-io/ledgersense-engine/pkg/registry"
)

// stubCatalog drives the deriver's catalogue branches without the embedded
// artifact.
type stubCatalog struct {
	entry *catalog.ColumnDescription
	err   error
}

func (s *stubCatalog) Lookup(ctx context.Context, columnName string) (*catalog.ColumnDescription, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	if s.entry == nil {
		return nil, false, nil
	}
	return s.entry, true, nil
}

func newTestDeriver(t *testing.T, cat catalog.DescriptionCatalog) BusinessRuleService {
	t.Helper()
	reg, err := registry.Load()
	if err != nil {
		t.Fatalf("failed to load embedded registry: %v", err)
	}
	return NewBusinessRuleService(reg, cat, time.Second, zap.NewNop())
}

func accountNumberMatch() *models.ConceptMatch {
	return &models.ConceptMatch{
		ConceptKey:   models.ConceptAccountNumber,
		Domain:       models.DomainAccount,
		MatchScore:   105,
		IsIdentifier: true,
	}
}

func TestDeriveIdentifierConcept(t *testing.T) {
	svc := newTestDeriver(t, nil)
	profile := &models.ColumnProfile{ColumnName: "account_number", DataType: models.DataTypeNumeric}

	rules := svc.Derive(context.Background(), accountNumberMatch(), profile, eligible())

	if !rules.Rules.Unique || !rules.Rules.Mandatory || !rules.Rules.PrimaryKey {
		t.Errorf("rules = %+v, want unique/mandatory/primary_key all true", rules.Rules)
	}
	if rules.WhyRuleExists == "" || rules.ViolationImpact == "" {
		t.Error("rationale and violation impact must be filled")
	}
	// account_number carries bespoke workflow-role text in the registry.
	if rules.WorkflowRole == "" || rules.WorkflowRole == genericDomainRoles[models.DomainAccount] {
		t.Errorf("WorkflowRole = %q, want the bespoke account role", rules.WorkflowRole)
	}
}

func TestDerivePrimaryKeyDowngradedWhenIneligible(t *testing.T) {
	svc := newTestDeriver(t, nil)
	profile := &models.ColumnProfile{ColumnName: "account_number", DataType: models.DataTypeNumeric}

	rules := svc.Derive(context.Background(), accountNumberMatch(), profile, ineligible())

	if rules.Rules.PrimaryKey {
		t.Error("primary_key must be downgraded to false for ineligible columns")
	}
	if !rules.Rules.Unique {
		t.Error("the other rule flags keep the template values")
	}
}

func TestDeriveGenericDomainRole(t *testing.T) {
	svc := newTestDeriver(t, nil)

	// current_balance has no bespoke workflow role; the per-domain generic
	// line applies.
	match := &models.ConceptMatch{ConceptKey: models.ConceptCurrentBalance, Domain: models.DomainAccount}
	profile := &models.ColumnProfile{ColumnName: "balance", DataType: models.DataTypeDecimal}

	rules := svc.Derive(context.Background(), match, profile, ineligible())

	if rules.WorkflowRole != genericDomainRoles[models.DomainAccount] {
		t.Errorf("WorkflowRole = %q, want the generic Account role", rules.WorkflowRole)
	}
}

func TestDeriveCatalogDescriptionUsedVerbatim(t *testing.T) {
	entry := &catalog.ColumnDescription{
		Name:        "account_number",
		Section:     "Customer & Account",
		Description: "Unique account identifier assigned to customer for all banking transactions and operations",
	}
	svc := newTestDeriver(t, &stubCatalog{entry: entry})
	profile := &models.ColumnProfile{ColumnName: "account_number", DataType: models.DataTypeNumeric}

	rules := svc.Derive(context.Background(), accountNumberMatch(), profile, eligible())

	if rules.BusinessMeaning != entry.Description {
		t.Errorf("BusinessMeaning = %q, want the catalogue description verbatim", rules.BusinessMeaning)
	}
	if rules.CatalogSection != entry.Section {
		t.Errorf("CatalogSection = %q, want %q", rules.CatalogSection, entry.Section)
	}
}

func TestDeriveCatalogFailureDegradesSilently(t *testing.T) {
	svc := newTestDeriver(t, &stubCatalog{err: errors.New("catalog offline")})
	profile := &models.ColumnProfile{ColumnName: "account_number", DataType: models.DataTypeNumeric}

	rules := svc.Derive(context.Background(), accountNumberMatch(), profile, eligible())

	if rules.BusinessMeaning == "" {
		t.Error("a failed lookup must still produce registry-derived meaning")
	}
	if rules.CatalogSection != "" {
		t.Errorf("CatalogSection = %q, want empty after lookup failure", rules.CatalogSection)
	}
}

func TestDeriveUnknownConcept(t *testing.T) {
	svc := newTestDeriver(t, nil)
	profile := &models.ColumnProfile{ColumnName: "mystery", DataType: models.DataTypeText}

	rules := svc.Derive(context.Background(), models.UnknownMatch(), profile, ineligible())

	if rules.Rules.PrimaryKey || rules.Rules.Unique || rules.Rules.Mandatory {
		t.Error("unknown columns carry no rule obligations")
	}
	if rules.Rules.Format != "Based on data type: text" {
		t.Errorf("Format = %q", rules.Rules.Format)
	}
	if want := "Column purpose not clearly identified. Manual review recommended."; rules.WhyRuleExists != want {
		t.Errorf("WhyRuleExists = %q", rules.WhyRuleExists)
	}
	if rules.BusinessMeaning == "" {
		t.Error("unknown columns still get guidance text")
	}
}

func TestDeriveUnknownUsesCatalogDescription(t *testing.T) {
	entry := &catalog.ColumnDescription{
		Name:        "kyc_status",
		Section:     "Location & Identity",
		Description: "Know Your Customer verification status (Pending/Verified/Rejected) for regulatory compliance",
	}
	svc := newTestDeriver(t, &stubCatalog{entry: entry})
	profile := &models.ColumnProfile{ColumnName: "kyc_status", DataType: models.DataTypeText}

	rules := svc.Derive(context.Background(), models.UnknownMatch(), profile, ineligible())

	if rules.BusinessMeaning != entry.Description {
		t.Errorf("BusinessMeaning = %q, want the catalogue description", rules.BusinessMeaning)
	}
	if rules.CatalogSection != entry.Section {
		t.Errorf("CatalogSection = %q", rules.CatalogSection)
	}
}
