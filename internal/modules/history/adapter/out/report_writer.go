package out

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"pagepulse/internal/modules/history/domain"
	historyout "pagepulse/internal/modules/history/port/out"
	"pagepulse/internal/platform/markdown"
	"pagepulse/internal/platform/slug"
)

// MarkdownReportWriter renders one run as a markdown note with YAML
// frontmatter, suitable for dropping into a knowledge base.
type MarkdownReportWriter struct{}

func NewMarkdownReportWriter() historyout.ReportWriter {
	return &MarkdownReportWriter{}
}

func (w *MarkdownReportWriter) Write(_ context.Context, dir string, position int, record domain.Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	name := fmt.Sprintf("%03d-%s-%s.md", position, slug.Make(hostOf(record.URL)), record.Strategy)
	path := filepath.Join(dir, name)

	meta := map[string]any{
		"id":          record.ID,
		"url":         record.URL,
		"strategy":    record.Strategy,
		"captured_at": record.Date,
		"score":       record.Score,
		"position":    position,
	}
	body := fmt.Sprintf(
		"# Performance audit: %s\n\n| Metric | Value |\n|---|---|\n| Score | %.0f |\n| FCP | %.2f s |\n| LCP | %.2f s |\n| TTI | %.2f s |\n| TBT | %.0f ms |\n| CLS | %.3f |\n",
		record.URL,
		record.Score,
		record.Metrics.FCP,
		record.Metrics.LCP,
		record.Metrics.TTI,
		record.Metrics.TBT,
		record.Metrics.CLS,
	)
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
