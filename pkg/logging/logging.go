package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// New builds the process-wide logger. Production environments get the JSON
// encoder at info level; everything else gets the human-readable development
// encoder at debug level so local runs show per-column analysis detail.
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
