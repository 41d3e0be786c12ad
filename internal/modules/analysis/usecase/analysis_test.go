package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"pagepulse/internal/modules/analysis/domain"
	"pagepulse/internal/modules/analysis/dto"
	analysisin "pagepulse/internal/modules/analysis/port/in"
	"pagepulse/internal/modules/analysis/service"
	"pagepulse/internal/modules/analysis/usecase"
	historyadapter "pagepulse/internal/modules/history/adapter/out"
	historydomain "pagepulse/internal/modules/history/domain"
	historyservice "pagepulse/internal/modules/history/service"
	historyusecase "pagepulse/internal/modules/history/usecase"
	"pagepulse/internal/platform/clock"
	"pagepulse/internal/platform/id"
	"pagepulse/internal/platform/tx"
)

type fakeProvider struct {
	calls   int
	lastURL string
	raw     domain.RawAudit
	err     error
}

func (f *fakeProvider) Audit(_ context.Context, url string, _ domain.Strategy) (domain.RawAudit, error) {
	f.calls++
	f.lastURL = url
	if f.err != nil {
		return domain.RawAudit{}, f.err
	}
	return f.raw, nil
}

func payloadWithScore(score float64) domain.RawAudit {
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

func newPipeline(t *testing.T, provider *fakeProvider) analysisin.Usecase {
	t.Helper()
	dataDir := t.TempDir()
	projector, err := historyadapter.NewSQLiteRunProjector(filepath.Join(dataDir, "pagepulse.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	t.Cleanup(func() { _ = projector.Close() })
	history := historyusecase.NewInteractor(historyservice.NewHistoryService(
		historyadapter.NewFileBlobStore(filepath.Join(dataDir, "pageSpeedResults.json")),
		projector,
		historyadapter.NewMarkdownReportWriter(),
		tx.NoopManager{},
	))
	return usecase.NewInteractor(service.NewAnalysisService(clock.SystemClock{}, id.RandomHex{}, provider), history)
}

func TestAnalyzePrependsGradedResult(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{raw: payloadWithScore(0.93)}
	uc := newPipeline(t, provider)

	list, err := uc.Analyze(context.Background(), dto.AnalyzeInput{URL: "https://example.com", Strategy: "mobile"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one record, got %d", len(list))
	}
	head := list[0]
	if head.Score != 93 {
		t.Fatalf("score = %v, want 93", head.Score)
	}
	if head.FCP != 1.1 || head.LCP != 1.8 || head.TTI != 2.0 || head.TBT != 50 || head.CLS != 0.02 {
		t.Fatalf("metrics mismatch: %+v", head)
	}

	provider.raw = payloadWithScore(0.41)
	list, err = uc.Analyze(context.Background(), dto.AnalyzeInput{URL: "https://other.example", Strategy: "desktop"})
	if err != nil {
		t.Fatalf("second analyze: %v", err)
	}
	if len(list) != 2 || list[0].URL != "https://other.example" || list[1].URL != "https://example.com" {
		t.Fatalf("new record should be at index 0: %+v", list)
	}
}

func TestRerunReplacesSlotInPlaceWithSameTarget(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{raw: payloadWithScore(0.93)}
	uc := newPipeline(t, provider)

	for _, url := range []string{"https://c.example", "https://b.example", "https://a.example"} {
		if _, err := uc.Analyze(context.Background(), dto.AnalyzeInput{URL: url, Strategy: "mobile"}); err != nil {
			t.Fatalf("analyze %s: %v", url, err)
		}
	}

	// history is [a b c]; re-run the middle slot with a worse measurement
	provider.raw = payloadWithScore(0.38)
	list, err := uc.Rerun(context.Background(), dto.RerunInput{Index: 1})
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if provider.lastURL != "https://b.example" {
		t.Fatalf("rerun should re-audit the slot's url, got %s", provider.lastURL)
	}
	if list[0].URL != "https://a.example" || list[1].URL != "https://b.example" || list[2].URL != "https://c.example" {
		t.Fatalf("rerun must not move slots: %+v", list)
	}
	if list[1].Score != 38 {
		t.Fatalf("replaced slot score = %v, want 38 on the same 0-100 scale", list[1].Score)
	}
	if list[0].Score != 93 || list[2].Score != 93 {
		t.Fatalf("untouched slots must keep their values")
	}
}

func TestRerunWithStaleIndexFails(t *testing.T) {
	t.Parallel()
	uc := newPipeline(t, &fakeProvider{raw: payloadWithScore(0.9)})
	_, err := uc.Rerun(context.Background(), dto.RerunInput{Index: 3})
	if !errors.Is(err, historydomain.ErrIndexOutOfRange) {
		t.Fatalf("expected index out of range, got %v", err)
	}
}

func TestProviderFailureLeavesHistoryUnchanged(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{raw: payloadWithScore(0.93)}
	uc := newPipeline(t, provider)
	if _, err := uc.Analyze(context.Background(), dto.AnalyzeInput{URL: "https://example.com", Strategy: "mobile"}); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	provider.err = domain.ErrProviderRequest
	if _, err := uc.Analyze(context.Background(), dto.AnalyzeInput{URL: "https://down.example", Strategy: "mobile"}); !errors.Is(err, domain.ErrProviderRequest) {
		t.Fatalf("expected provider request failure, got %v", err)
	}
	list, err := uc.History(context.Background())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(list) != 1 || list[0].URL != "https://example.com" {
		t.Fatalf("failed analyze must not commit a record: %+v", list)
	}
}

func TestMalformedResponseCommitsNoPartialRecord(t *testing.T) {
	t.Parallel()
	raw := payloadWithScore(0.93)
	delete(raw.Audits, domain.AuditInteractive)
	provider := &fakeProvider{raw: raw}
	uc := newPipeline(t, provider)

	if _, err := uc.Analyze(context.Background(), dto.AnalyzeInput{URL: "https://example.com", Strategy: "mobile"}); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected malformed response, got %v", err)
	}
	list, err := uc.History(context.Background())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("no partial record may be committed, got %+v", list)
	}
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	t.Parallel()
	uc := newPipeline(t, &fakeProvider{raw: payloadWithScore(0.9)})
	if _, err := uc.Analyze(context.Background(), dto.AnalyzeInput{URL: "", Strategy: "mobile"}); err == nil {
		t.Fatalf("empty url should fail")
	}
	if _, err := uc.Analyze(context.Background(), dto.AnalyzeInput{URL: "https://example.com", Strategy: "tablet"}); err == nil {
		t.Fatalf("unknown strategy should fail")
	}
}
