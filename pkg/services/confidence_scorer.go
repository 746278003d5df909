package services

import (
	"go.uber.org/zap"

	"github.com/ledgersense-io/ledgersense-engine/pkg/models"
)

// Confidence adjustments layered on top of the raw match score.
const (
	confidenceNoNulls            = 5.0
	confidenceUniquenessVeryHigh = 8.0 // > 99.5%
	confidenceUniquenessHigh     = 5.0 // > 99%
	confidenceFixedLength        = 5.0
	confidenceNearFixedLength    = 3.0
	confidenceDigitPattern       = 3.0
	confidenceEligibleIdentifier = 10.0

	// borderlineConfidence marks the level below which an otherwise
	// identifier-eligible column is treated as a borderline signal and
	// damped.
	borderlineConfidence = 60.0
	borderlineDampening  = 0.8
	maxConfidence        = 100.0
)

// ConfidenceScorerService converts a concept match plus profile and
// eligibility signals into the final 0-100 confidence.
type ConfidenceScorerService interface {
	Score(match *models.ConceptMatch, profile *models.ColumnProfile, eligibility *models.IdentifierEligibility) float64
}

type confidenceScorerService struct {
	logger *zap.Logger
}

// NewConfidenceScorerService creates a new confidence scorer service.
func NewConfidenceScorerService(logger *zap.Logger) ConfidenceScorerService {
	return &confidenceScorerService{logger: logger.Named("confidence-scorer")}
}

// Score starts from the raw match score, applies data-quality bonuses, the
// identifier gate re-check, and the borderline dampener, then clamps to
// [0, 100]. Unknown matches are always exactly 0.
func (s *confidenceScorerService) Score(
	match *models.ConceptMatch,
	profile *models.ColumnProfile,
	eligibility *models.IdentifierEligibility,
) float64 {
	if match.IsUnknown() {
		return 0
	}

	confidence := match.MatchScore

	if profile.NullPercentage == 0 {
		confidence += confidenceNoNulls
	}
	if profile.UniquenessPercentage > 99.5 {
		confidence += confidenceUniquenessVeryHigh
	} else if profile.UniquenessPercentage > 99 {
		confidence += confidenceUniquenessHigh
	}
	if profile.Patterns.FixedLength {
		confidence += confidenceFixedLength
	} else if profile.Patterns.NearFixedLength {
		confidence += confidenceNearFixedLength
	}
	if profile.Patterns.OnlyDigits &&
		(profile.DataType == models.DataTypeNumeric || profile.DataType == models.DataTypeAlphanumeric) {
		confidence += confidenceDigitPattern
	}
	if eligibility.IsEligible && match.IsIdentifier {
		confidence += confidenceEligibleIdentifier
	}

	// Mirror of the matcher's gate: an identifier concept on a contact or
	// descriptive column carries no trust whatsoever.
	if match.IsIdentifier && (eligibility.IsContact || eligibility.IsDescriptive) {
		return 0
	}

	if confidence < borderlineConfidence && eligibility.IsEligible {
		confidence *= borderlineDampening
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return round1(confidence)
}
