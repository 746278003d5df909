package services

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/ledgersense-io/ledgersense-engine/pkg/models"
	"github.com/ledgersense-io/ledgersense-engine/pkg/registry"
)

// Concept matching weights. The raw score a definition can accumulate is
// unbounded above 100 on purpose: scores stay unclamped through matching and
// the eligibility gate so close races between concepts are decided on full
// evidence, and only the final confidence is clamped.
const (
	scoreNameExact     = 50.0
	scoreNameSubstring = 40.0

	scoreTypeMatch      = 20.0
	scoreTypeCompatible = 15.0

	scoreUniquenessVeryHighTop = 25.0 // >= 99.5%
	scoreUniquenessVeryHigh    = 20.0 // >= 99%
	scoreUniquenessHigh        = 15.0 // >= 95%
	scoreUniquenessLow         = 15.0 // < 50%
	scoreUniquenessVeryLow     = 15.0 // < 20%

	scoreLengthExact    = 15.0
	scoreLengthNear     = 10.0
	scoreLengthInRange  = 10.0
	scoreLengthFullSpan = 5.0

	scoreCardinalityWithin = 10.0
	scoreCardinalityNear   = 5.0

	scoreNullableWithNulls   = 5.0
	scoreNonNullableClean    = 10.0
	scoreNonNullableTolerant = 3.0

	scoreIdentifierConsistency = 5.0

	// minimumMatchScore is the floor a definition must reach post-gate to
	// avoid the unknown classification.
	minimumMatchScore = 25.0

	// ineligibleIdentifierPenalty damps identifier concepts matched on
	// columns that fail the structural eligibility checks.
	ineligibleIdentifierPenalty = 0.3

	// nullTolerancePct is the null percentage a non-nullable definition
	// still partially rewards.
	nullTolerancePct = 5.0

	// lengthNearTolerance is how far off an exact-length expectation a
	// column's fixed/typical length may be and still earn partial credit.
	lengthNearTolerance = 2

	// cardinalityNearFactor stretches a definition's max cardinality for
	// partial credit.
	cardinalityNearFactor = 1.5
)

// ConceptMatcherService scores every registry concept against a column and
// selects the best match, or reports unknown when nothing reaches the
// minimum score.
type ConceptMatcherService interface {
	Match(columnName string, profile *models.ColumnProfile, eligibility *models.IdentifierEligibility) *models.ConceptMatch
}

type conceptMatcherService struct {
	registry *registry.Registry
	logger   *zap.Logger
}

// NewConceptMatcherService creates a new concept matcher service backed by
// the given registry.
func NewConceptMatcherService(reg *registry.Registry, logger *zap.Logger) ConceptMatcherService {
	return &conceptMatcherService{
		registry: reg,
		logger:   logger.Named("concept-matcher"),
	}
}

// Match accumulates weighted signals per definition, applies the identifier
// eligibility gate, and keeps the highest-scoring definition. Ties keep the
// first definition in registry order.
func (s *conceptMatcherService) Match(
	columnName string,
	profile *models.ColumnProfile,
	eligibility *models.IdentifierEligibility,
) *models.ConceptMatch {
	normalized := normalizeColumnName(columnName)

	var best *models.ConceptDefinition
	bestScore := 0.0

	for _, def := range s.registry.Definitions() {
		score := s.scoreDefinition(def, normalized, profile)
		score = applyEligibilityGate(score, def, eligibility)

		if best == nil || score > bestScore {
			best = def
			bestScore = score
		}
	}

	if best == nil || bestScore < minimumMatchScore {
		s.logger.Debug("No concept reached the minimum match score",
			zap.String("column", columnName),
			zap.Float64("best_score", bestScore))
		return models.UnknownMatch()
	}

	s.logger.Debug("Matched concept",
		zap.String("column", columnName),
		zap.String("concept", string(best.Key)),
		zap.Float64("score", bestScore))

	return &models.ConceptMatch{
		ConceptKey:   best.Key,
		DisplayLabel: best.DisplayLabel(),
		Domain:       best.Domain,
		MatchScore:   bestScore,
		IsIdentifier: best.IsIdentifier,
	}
}

// scoreDefinition sums the independent weighted signals for one definition.
// The data-evidence signals (type, uniqueness, length, cardinality) require
// at least one non-null value: an all-null column offers no data evidence,
// so only the name and nullability signals can score for it.
func (s *conceptMatcherService) scoreDefinition(
	def *models.ConceptDefinition,
	normalizedName string,
	profile *models.ColumnProfile,
) float64 {
	score := scoreNameSignal(def, normalizedName)
	score += scoreNullabilitySignal(def, profile)

	if profile.NonNullCount == 0 {
		return score
	}

	score += scoreTypeSignal(def, profile)
	score += scoreUniquenessSignal(def, profile)
	score += scoreLengthSignal(def, profile)
	score += scoreCardinalitySignal(def, profile)

	if profile.HasStableLength() && def.IsIdentifier {
		score += scoreIdentifierConsistency
	}
	return score
}

// scoreNameSignal rewards the first name pattern that matches, in definition
// order: exact equality beats substring containment in either direction.
func scoreNameSignal(def *models.ConceptDefinition, normalizedName string) float64 {
	for _, pattern := range def.NamePatterns {
		if normalizedName == pattern {
			return scoreNameExact
		}
		if strings.Contains(normalizedName, pattern) || strings.Contains(pattern, normalizedName) {
			return scoreNameSubstring
		}
	}
	return 0
}

func scoreTypeSignal(def *models.ConceptDefinition, profile *models.ColumnProfile) float64 {
	if def.ExpectsType(profile.DataType) {
		return scoreTypeMatch
	}
	// numeric and decimal are close enough to earn partial credit.
	if profile.DataType.IsNumeric() {
		for _, t := range def.DataPatterns.Types {
			if t.IsNumeric() {
				return scoreTypeCompatible
			}
		}
	}
	return 0
}

func scoreUniquenessSignal(def *models.ConceptDefinition, profile *models.ColumnProfile) float64 {
	pct := profile.UniquenessPercentage
	switch def.DataPatterns.Uniqueness {
	case models.UniquenessVeryHigh:
		if pct >= 99.5 {
			return scoreUniquenessVeryHighTop
		}
		if pct >= 99 {
			return scoreUniquenessVeryHigh
		}
	case models.UniquenessHigh:
		if pct >= 95 {
			return scoreUniquenessHigh
		}
	case models.UniquenessLow:
		if pct < 50 {
			return scoreUniquenessLow
		}
	case models.UniquenessVeryLow:
		if pct < 20 {
			return scoreUniquenessVeryLow
		}
	}
	return 0
}

func scoreLengthSignal(def *models.ConceptDefinition, profile *models.ColumnProfile) float64 {
	spec := def.DataPatterns.Length
	if spec == nil {
		return 0
	}

	p := &profile.Patterns
	if spec.IsExact() {
		if p.FixedLength && p.FixedLengthValue != nil && *p.FixedLengthValue == spec.Exact {
			return scoreLengthExact
		}
		if observed, ok := observedLength(p); ok && intAbs(observed-spec.Exact) <= lengthNearTolerance {
			return scoreLengthNear
		}
		return 0
	}

	if p.AvgLength == nil {
		return 0
	}
	score := 0.0
	if *p.AvgLength >= float64(spec.Min) && *p.AvgLength <= float64(spec.Max) {
		score += scoreLengthInRange
		if p.MinLength != nil && p.MaxLength != nil &&
			*p.MinLength >= spec.Min && *p.MaxLength <= spec.Max {
			score += scoreLengthFullSpan
		}
	}
	return score
}

// observedLength returns the column's single characteristic length when it
// has one: the fixed length, or the typical length for near-fixed columns.
func observedLength(p *models.ValuePatterns) (int, bool) {
	if p.FixedLengthValue != nil {
		return *p.FixedLengthValue, true
	}
	if p.TypicalLength != nil {
		return *p.TypicalLength, true
	}
	return 0, false
}

func scoreCardinalitySignal(def *models.ConceptDefinition, profile *models.ColumnProfile) float64 {
	spec := def.DataPatterns.Cardinality
	if spec == nil {
		return 0
	}
	distinct := float64(profile.UniqueCount)
	if distinct <= float64(spec.Max) {
		return scoreCardinalityWithin
	}
	if distinct <= float64(spec.Max)*cardinalityNearFactor {
		return scoreCardinalityNear
	}
	return 0
}

func scoreNullabilitySignal(def *models.ConceptDefinition, profile *models.ColumnProfile) float64 {
	nullPct := profile.NullPercentage
	if def.DataPatterns.Nullable {
		if nullPct > 0 {
			return scoreNullableWithNulls
		}
		return 0
	}
	if nullPct == 0 {
		return scoreNonNullableClean
	}
	if nullPct < nullTolerancePct {
		return scoreNonNullableTolerant
	}
	return 0
}

// applyEligibilityGate suppresses identifier concepts on columns that fail
// the structural eligibility checks: contact and descriptive columns are
// forced to zero outright, anything else ineligible is damped. The damped
// score stays unclamped so the two-stage clamp behavior is preserved.
func applyEligibilityGate(score float64, def *models.ConceptDefinition, eligibility *models.IdentifierEligibility) float64 {
	if !def.IsIdentifier || eligibility.IsEligible {
		return score
	}
	if eligibility.IsContact || eligibility.IsDescriptive {
		return 0
	}
	return score * ineligibleIdentifierPenalty
}

func intAbs(v int) int {
	return int(math.Abs(float64(v)))
}
