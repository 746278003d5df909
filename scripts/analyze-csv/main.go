// analyze-csv runs the column analysis pipeline over a local CSV file and
// prints the resulting report as JSON. It uses the registry and catalogue
// embedded in the binary, so no server or configuration is required.
//
// Usage: go run ./scripts/analyze-csv [-pretty] [-workers N] <file.csv>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ledgersense-io/ledgersense-engine/pkg/catalog"
	"github.com/ledgersense-io/ledgersense-engine/pkg/dataset"
	"github.com/ledgersense-io/ledgersense-engine/pkg/registry"
	"github.com/ledgersense-io/ledgersense-engine/pkg/services"
)

func main() {
	pretty := flag.Bool("pretty", false, "indent the JSON output")
	workers := flag.Int("workers", 4, "columns analyzed concurrently")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: analyze-csv [-pretty] [-workers N] <file.csv>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	if err := run(path, *pretty, *workers); err != nil {
		fmt.Fprintf(os.Stderr, "analyze-csv: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, pretty bool, workers int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ds, err := dataset.ReadCSV(file, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	reg, err := registry.Load()
	if err != nil {
		return fmt.Errorf("failed to load concept registry: %w", err)
	}
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load description catalogue: %w", err)
	}

	logger := zap.NewNop()
	analysis := services.NewDatasetAnalysisService(
		reg,
		services.NewColumnProfilerService(logger),
		services.NewIdentifierEligibilityService(logger),
		services.NewConceptMatcherService(reg, logger),
		services.NewConfidenceScorerService(logger),
		services.NewBusinessRuleService(reg, cat, 2*time.Second, logger),
		services.NewDatasetSummarizerService(logger),
		workers,
		logger,
	)

	report, err := analysis.AnalyzeDataset(context.Background(), ds)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}
