package config

import (
	"fmt"

	"github.com/Harshitk-cp/caes/internal/domain"
	"go.uber.org/zap"
)

// NewLogger builds a JSON production logger at level, or a console
// development logger when development is set.
func NewLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	return cfg.Build()
}

// Thresholds returns the proof-standard thresholds from the environment.
func Thresholds() domain.Thresholds {
	return domain.Thresholds{
		ClearAndConvincingAlpha: ClearAndConvincingAlpha(),
		ClearAndConvincingBeta:  ClearAndConvincingBeta(),
		ReasonableDoubtAlpha:    ReasonableDoubtAlpha(),
		ReasonableDoubtBeta:     ReasonableDoubtBeta(),
		ReasonableDoubtGamma:    ReasonableDoubtGamma(),
	}
}

// StandardRegistry builds the registry of built-in standards with the
// configured thresholds and default standard.
func StandardRegistry() (*domain.StandardRegistry, error) {
	registry := domain.NewStandardRegistry(Thresholds())
	if err := registry.SetDefault(DefaultProofStandard()); err != nil {
		return nil, fmt.Errorf("DEFAULT_PROOF_STANDARD: %w", err)
	}
	return registry, nil
}
