package service

import (
	"context"
	"fmt"
	"strings"

	"pagepulse/internal/modules/analysis/domain"
	analysisout "pagepulse/internal/modules/analysis/port/out"
	"pagepulse/internal/platform/clock"
	"pagepulse/internal/platform/id"
)

// AnalysisService runs one audit end to end: provider call, then validation
// into a typed Result. History placement (prepend vs replace) is the
// caller's choice and lives in the usecase layer.
type AnalysisService struct {
	clock    clock.Clock
	idGen    id.Generator
	provider analysisout.AuditProvider
}

func NewAnalysisService(clock clock.Clock, idGen id.Generator, provider analysisout.AuditProvider) *AnalysisService {
	return &AnalysisService{clock: clock, idGen: idGen, provider: provider}
}

func (s *AnalysisService) Analyze(ctx context.Context, url string, strategy domain.Strategy) (domain.Result, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return domain.Result{}, fmt.Errorf("url is required")
	}
	if err := strategy.Validate(); err != nil {
		return domain.Result{}, err
	}
	raw, err := s.provider.Audit(ctx, url, strategy)
	if err != nil {
		return domain.Result{}, fmt.Errorf("audit %s: %w", url, err)
	}
	result, err := domain.BuildResult(s.idGen.New(), url, strategy, raw, s.clock.Now())
	if err != nil {
		return domain.Result{}, fmt.Errorf("audit %s: %w", url, err)
	}
	return result, nil
}
