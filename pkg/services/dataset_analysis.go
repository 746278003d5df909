package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ledgersense-io/ledgersense-engine/pkg/apperrors"
	"github.com/ledgersense-io/ledgersense-engine/pkg/dataset"
	"github.com/ledgersense-io/ledgersense-engine/pkg/models"
	"github.com/ledgersense-io/ledgersense-engine/pkg/registry"
)

// DatasetAnalysisService runs the full per-column pipeline over a dataset and
// aggregates the summary. Columns are independent, so the per-column work
// fans out across a bounded worker pool; results land by index so output
// order always equals input order. Every call is self-contained: the only
// state shared between concurrent analyses is the read-only registry and
// catalogue.
type DatasetAnalysisService interface {
	AnalyzeDataset(ctx context.Context, ds *dataset.Dataset) (*models.AnalysisReport, error)
}

type datasetAnalysisService struct {
	registry   *registry.Registry
	profiler   ColumnProfilerService
	checker    IdentifierEligibilityService
	matcher    ConceptMatcherService
	scorer     ConfidenceScorerService
	deriver    BusinessRuleService
	summarizer DatasetSummarizerService
	workers    int
	logger     *zap.Logger
}

// NewDatasetAnalysisService creates a new dataset analysis service wiring the
// six pipeline stages together. workers bounds per-column concurrency;
// values below 1 run the pipeline sequentially.
func NewDatasetAnalysisService(
	reg *registry.Registry,
	profiler ColumnProfilerService,
	checker IdentifierEligibilityService,
	matcher ConceptMatcherService,
	scorer ConfidenceScorerService,
	deriver BusinessRuleService,
	summarizer DatasetSummarizerService,
	workers int,
	logger *zap.Logger,
) DatasetAnalysisService {
	if workers < 1 {
		workers = 1
	}
	return &datasetAnalysisService{
		registry:   reg,
		profiler:   profiler,
		checker:    checker,
		matcher:    matcher,
		scorer:     scorer,
		deriver:    deriver,
		summarizer: summarizer,
		workers:    workers,
		logger:     logger.Named("dataset-analysis"),
	}
}

// AnalyzeDataset validates the dataset, analyzes every column, and returns
// the report. An empty dataset is the only fatal condition; individual
// columns never fail the run.
func (s *datasetAnalysisService) AnalyzeDataset(ctx context.Context, ds *dataset.Dataset) (*models.AnalysisReport, error) {
	if ds.IsEmpty() {
		return nil, apperrors.ErrEmptyDataset
	}

	start := time.Now()
	s.logger.Info("Starting dataset analysis",
		zap.String("dataset", ds.Name),
		zap.Int("columns", len(ds.Columns)),
		zap.Int("rows", ds.RowCount()))

	columns := make([]*models.ColumnAnalysis, len(ds.Columns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, col := range ds.Columns {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			columns[i] = s.analyzeColumn(gctx, col)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &models.AnalysisReport{
		AnalysisID:      uuid.New().String(),
		Dataset:         ds.Name,
		RowCount:        ds.RowCount(),
		RegistryVersion: s.registry.Version(),
		Columns:         columns,
		Summary:         s.summarizer.Summarize(columns),
		AnalyzedAt:      time.Now().UTC(),
		DurationMs:      time.Since(start).Milliseconds(),
	}

	s.logger.Info("Dataset analysis complete",
		zap.String("dataset", ds.Name),
		zap.String("analysis_id", report.AnalysisID),
		zap.Int("identified_columns", report.Summary.IdentifiedColumns),
		zap.Int64("duration_ms", report.DurationMs))

	return report, nil
}

// analyzeColumn runs the fixed six-stage pipeline for one column.
func (s *datasetAnalysisService) analyzeColumn(ctx context.Context, col dataset.Column) *models.ColumnAnalysis {
	profile := s.profiler.Profile(col.Name, col.Cells)
	eligibility := s.checker.Check(col.Name, profile)
	match := s.matcher.Match(col.Name, profile, eligibility)
	confidence := s.scorer.Score(match, profile, eligibility)
	rules := s.deriver.Derive(ctx, match, profile, eligibility)

	return &models.ColumnAnalysis{
		ColumnName:  col.Name,
		Profile:     profile,
		Eligibility: eligibility,
		Match:       match,
		Confidence:  confidence,
		Rules:       rules,
	}
}
