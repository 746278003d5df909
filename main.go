package main

import (
	"log"
	"net/http"

	"github.com/go-chi/cors"

	"github.com/ledgersense-io/ledgersense-engine/pkg/catalog"
	"github.com/ledgersense-io/ledgersense-engine/pkg/config"
	"github.com/ledgersense-io/ledgersense-engine/pkg/handlers"
	"github.com/ledgersense-io/ledgersense-engine/pkg/logging"
	"github.com/ledgersense-io/ledgersense-engine/pkg/middleware"
	"github.com/ledgersense-io/ledgersense-engine/pkg/registry"
	"github.com/ledgersense-io/ledgersense-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Log startup configuration
	log.Printf("Configuration loaded:")
	log.Printf("  Environment: %s", cfg.Env)
	log.Printf("  Analysis workers: %d", cfg.Analysis.Workers)
	log.Printf("  Upload cap: %d MB", cfg.Upload.MaxFileSizeMB)

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Load the concept registry (embedded unless a path is configured)
	reg, err := loadRegistry(cfg)
	if err != nil {
		log.Fatalf("Failed to load concept registry: %v", err)
	}
	log.Printf("  Concept registry: version %s, %d concepts", reg.Version(), reg.Len())

	// Load the column description catalogue
	cat, err := loadCatalog(cfg)
	if err != nil {
		log.Fatalf("Failed to load description catalogue: %v", err)
	}

	// Wire the analysis pipeline
	analysisService := services.NewDatasetAnalysisService(
		reg,
		services.NewColumnProfilerService(logger),
		services.NewIdentifierEligibilityService(logger),
		services.NewConceptMatcherService(reg, logger),
		services.NewConfidenceScorerService(logger),
		services.NewBusinessRuleService(reg, cat, cfg.Analysis.DescriptionTimeout(), logger),
		services.NewDatasetSummarizerService(logger),
		cfg.Analysis.Workers,
		logger,
	)

	mux := http.NewServeMux()

	// Register handlers
	healthHandler := handlers.NewHealthHandler(cfg, logger)
	healthHandler.RegisterRoutes(mux)

	analyzeHandler := handlers.NewAnalyzeHandler(analysisService, cfg.Upload.MaxFileSizeBytes(), logger)
	analyzeHandler.RegisterRoutes(mux)

	conceptsHandler := handlers.NewConceptsHandler(reg, logger)
	conceptsHandler.RegisterRoutes(mux)

	// Middleware chain: request ID, request logging, CORS
	var handler http.Handler = mux
	handler = middleware.RequestLogger(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})(handler)

	addr := cfg.BindAddr + ":" + cfg.Port
	log.Printf("Starting ledgersense-engine on %s (version: %s)", addr, cfg.Version)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// loadRegistry prefers a configured registry file over the embedded artifact.
func loadRegistry(cfg *config.Config) (*registry.Registry, error) {
	if cfg.Registry.Path != "" {
		return registry.LoadFile(cfg.Registry.Path)
	}
	return registry.Load()
}

// loadCatalog prefers a configured catalogue file over the embedded artifact.
func loadCatalog(cfg *config.Config) (catalog.DescriptionCatalog, error) {
	if cfg.Catalog.Path != "" {
		return catalog.LoadFile(cfg.Catalog.Path)
	}
	return catalog.Load()
}
