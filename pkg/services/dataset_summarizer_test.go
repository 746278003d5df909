package services

import (
	"testing"

	"go.uber.org/zap"

	"github.com/ledgersense-io/ledgersense-engine/pkg/models"
)

func newTestSummarizer() DatasetSummarizerService {
	return NewDatasetSummarizerService(zap.NewNop())
}

func column(key models.ConceptKey, domain models.Domain, confidence float64, isIdentifier, isEligible bool) *models.ColumnAnalysis {
	return &models.ColumnAnalysis{
		Match: &models.ConceptMatch{
			ConceptKey:   key,
			Domain:       domain,
			IsIdentifier: isIdentifier,
		},
		Eligibility: &models.IdentifierEligibility{IsEligible: isEligible},
		Confidence:  confidence,
	}
}

func TestSummarizeMixedDataset(t *testing.T) {
	svc := newTestSummarizer()

	columns := []*models.ColumnAnalysis{
		column(models.ConceptAccountNumber, models.DomainAccount, 100, true, true),
		column(models.ConceptCustomerName, models.DomainCustomer, 80, false, false),
		column(models.ConceptLoanAmount, models.DomainLoan, 60, false, false),
		// Matched identifier concept on an ineligible column: identified but
		// not counted as an identifier.
		column(models.ConceptLoanID, models.DomainLoan, 30, true, false),
		column(models.ConceptUnknown, "", 0, false, false),
	}

	summary := svc.Summarize(columns)

	if summary.TotalColumns != 5 {
		t.Errorf("TotalColumns = %d, want 5", summary.TotalColumns)
	}
	if summary.IdentifiedColumns != 4 {
		t.Errorf("IdentifiedColumns = %d, want 4", summary.IdentifiedColumns)
	}
	if summary.IdentificationRate != 80 {
		t.Errorf("IdentificationRate = %v, want 80", summary.IdentificationRate)
	}
	if summary.AverageConfidence != 67.5 {
		t.Errorf("AverageConfidence = %v, want 67.5", summary.AverageConfidence)
	}
	if summary.IdentifierCount != 1 {
		t.Errorf("IdentifierCount = %d, want 1", summary.IdentifierCount)
	}
	if summary.DomainDistribution[models.DomainLoan] != 2 {
		t.Errorf("DomainDistribution = %v, want 2 Loan columns", summary.DomainDistribution)
	}
	if _, hasUnknown := summary.DomainDistribution[""]; hasUnknown {
		t.Error("unknown columns must not appear in the domain distribution")
	}
}

func TestSummarizeEmptyList(t *testing.T) {
	svc := newTestSummarizer()

	summary := svc.Summarize(nil)

	if summary.TotalColumns != 0 || summary.IdentificationRate != 0 || summary.AverageConfidence != 0 {
		t.Errorf("empty list should produce zeroed summary, got %+v", summary)
	}
}

func TestSummarizeAllUnknown(t *testing.T) {
	svc := newTestSummarizer()

	columns := []*models.ColumnAnalysis{
		column(models.ConceptUnknown, "", 0, false, false),
		column(models.ConceptUnknown, "", 0, false, false),
	}

	summary := svc.Summarize(columns)

	if summary.IdentifiedColumns != 0 {
		t.Errorf("IdentifiedColumns = %d, want 0", summary.IdentifiedColumns)
	}
	if summary.IdentificationRate != 0 || summary.AverageConfidence != 0 {
		t.Errorf("rates should be zero, got %+v", summary)
	}
}
