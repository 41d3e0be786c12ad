package bootstrap_test

import (
	"context"
	"errors"
	"testing"

	"pagepulse/internal/bootstrap"
	"pagepulse/internal/platform/config"
	apperrors "pagepulse/internal/platform/errors"
)

func TestHistoryCommandsWorkWithoutAPIKey(t *testing.T) {
	t.Parallel()
	cfg := config.Config{
		DataDir:        t.TempDir(),
		Provider:       config.ProviderPageSpeed,
		Endpoint:       config.DefaultEndpoint,
		TimeoutSeconds: 1,
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		t.Fatalf("new app without api key: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	runs, err := app.HistoryCLI.List(context.Background())
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected empty history, got %d runs", len(runs))
	}

	// Only the audit itself needs the credential.
	if _, err := app.AnalysisCLI.Analyze(context.Background(), "https://example.com", "mobile"); !errors.Is(err, apperrors.ErrMissingAPIKey) {
		t.Fatalf("expected missing api key from analyze, got %v", err)
	}
}
