package domain_test

import (
	"errors"
	"testing"
	"time"

	"pagepulse/internal/modules/analysis/domain"
)

func fullPayload() domain.RawAudit {
	score := 0.93
	return domain.RawAudit{
		Score: &score,
		Audits: map[string]string{
			domain.AuditFirstContentfulPaint:   "1.1 s",
			domain.AuditLargestContentfulPaint: "1.8 s",
			domain.AuditInteractive:            "2.0 s",
			domain.AuditTotalBlockingTime:      "50 ms",
			domain.AuditCumulativeLayoutShift:  "0.02",
		},
	}
}

func TestBuildResultExtractsAllMetricsAndScalesScore(t *testing.T) {
	t.Parallel()
	capturedAt := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)
	result, err := domain.BuildResult("run-1", "https://example.com", domain.StrategyMobile, fullPayload(), capturedAt)
	if err != nil {
		t.Fatalf("build result: %v", err)
	}
	want := domain.Metrics{FCP: 1.1, LCP: 1.8, TTI: 2.0, TBT: 50, CLS: 0.02}
	if result.Metrics != want {
		t.Fatalf("metrics = %+v, want %+v", result.Metrics, want)
	}
	if result.Score != 93 {
		t.Fatalf("score = %v, want 93 (0-100 scale)", result.Score)
	}
	if domain.ClassifyScore(result.Score) != domain.GradeGood {
		t.Fatalf("score 93 should classify good")
	}
	if grades := result.Metrics.Grades(); grades != (domain.GradedMetrics{
		FCP: domain.GradeGood, LCP: domain.GradeGood, TTI: domain.GradeGood,
		TBT: domain.GradeGood, CLS: domain.GradeGood,
	}) {
		t.Fatalf("all five metrics should grade good, got %+v", grades)
	}
	if result.Date != domain.FormatDate(capturedAt) {
		t.Fatalf("date = %q", result.Date)
	}
}

func TestBuildResultFailsOnMissingScore(t *testing.T) {
	t.Parallel()
	raw := fullPayload()
	raw.Score = nil
	if _, err := domain.BuildResult("run-1", "https://example.com", domain.StrategyMobile, raw, time.Now()); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("missing score should be malformed response, got %v", err)
	}
}

func TestBuildResultFailsOnMissingAudit(t *testing.T) {
	t.Parallel()
	for _, auditID := range []string{
		domain.AuditFirstContentfulPaint,
		domain.AuditLargestContentfulPaint,
		domain.AuditInteractive,
		domain.AuditTotalBlockingTime,
		domain.AuditCumulativeLayoutShift,
	} {
		raw := fullPayload()
		delete(raw.Audits, auditID)
		if _, err := domain.BuildResult("run-1", "https://example.com", domain.StrategyMobile, raw, time.Now()); !errors.Is(err, domain.ErrMalformedResponse) {
			t.Fatalf("missing %s should be malformed response, got %v", auditID, err)
		}
	}
}

func TestBuildResultFailsOnUnparseableDisplayValue(t *testing.T) {
	t.Parallel()
	raw := fullPayload()
	raw.Audits[domain.AuditTotalBlockingTime] = "n/a"
	_, err := domain.BuildResult("run-1", "https://example.com", domain.StrategyMobile, raw, time.Now())
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("unparseable metric should surface as malformed response, got %v", err)
	}
}

func TestBuildResultRejectsUnknownStrategy(t *testing.T) {
	t.Parallel()
	if _, err := domain.BuildResult("run-1", "https://example.com", "tablet", fullPayload(), time.Now()); err == nil {
		t.Fatalf("unknown strategy should fail")
	}
}
