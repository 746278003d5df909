package services

import (
	"go.uber.org/zap"

	"github.com/ledgersense-io/ledgersense-engine/pkg/models"
)

// DatasetSummarizerService aggregates per-column results into dataset-level
// statistics.
type DatasetSummarizerService interface {
	Summarize(columns []*models.ColumnAnalysis) *models.DatasetSummary
}

type datasetSummarizerService struct {
	logger *zap.Logger
}

// NewDatasetSummarizerService creates a new dataset summarizer service.
func NewDatasetSummarizerService(logger *zap.Logger) DatasetSummarizerService {
	return &datasetSummarizerService{logger: logger.Named("dataset-summarizer")}
}

// Summarize makes a single pass over the column results: identified counts,
// domain distribution of identified columns, eligible identifier counts, and
// the average of the non-zero confidences.
func (s *datasetSummarizerService) Summarize(columns []*models.ColumnAnalysis) *models.DatasetSummary {
	summary := &models.DatasetSummary{
		TotalColumns:       len(columns),
		DomainDistribution: make(map[models.Domain]int),
	}

	confidenceSum := 0.0
	confidenceCount := 0
	for _, col := range columns {
		if col.Match.IsUnknown() {
			continue
		}
		summary.IdentifiedColumns++
		summary.DomainDistribution[col.Match.Domain]++
		if col.Match.IsIdentifier && col.Eligibility.IsEligible {
			summary.IdentifierCount++
		}
		if col.Confidence > 0 {
			confidenceSum += col.Confidence
			confidenceCount++
		}
	}

	if summary.TotalColumns > 0 {
		summary.IdentificationRate = round1(float64(summary.IdentifiedColumns) / float64(summary.TotalColumns) * 100)
	}
	if confidenceCount > 0 {
		summary.AverageConfidence = round1(confidenceSum / float64(confidenceCount))
	}

	s.logger.Debug("Summarized dataset",
		zap.Int("total_columns", summary.TotalColumns),
		zap.Int("identified_columns", summary.IdentifiedColumns),
		zap.Float64("identification_rate", summary.IdentificationRate))

	return summary
}
