package app_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"pagepulse/internal/modules/analysis/dto"
	"pagepulse/internal/ui/app"
	historyview "pagepulse/internal/ui/views/history"
)

type stubAnalysis struct{ runs []dto.ResultOutput }

func (s stubAnalysis) Analyze(context.Context, dto.AnalyzeInput) ([]dto.ResultOutput, error) {
	return s.runs, nil
}

func (s stubAnalysis) Rerun(context.Context, dto.RerunInput) ([]dto.ResultOutput, error) {
	return s.runs, nil
}

func (s stubAnalysis) History(context.Context) ([]dto.ResultOutput, error) {
	return s.runs, nil
}

func (s stubAnalysis) ClearHistory(context.Context) error { return nil }

type stubExport struct{}

func (stubExport) Export(context.Context, string) ([]string, error) { return nil, nil }

func step(t *testing.T, m tea.Model, msg tea.Msg) (app.Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(app.Model)
	if !ok {
		t.Fatalf("update returned %T", next)
	}
	return model, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// One audit at a time: the Analyze tab must not start a new audit while a
// re-run triggered from the History tab is still in flight, or the re-run
// would land on a shifted slot.
func TestEnterOnAnalyzeTabHeldWhileRerunInFlight(t *testing.T) {
	t.Parallel()
	runs := []dto.ResultOutput{{ID: "a", URL: "https://a.example", Strategy: "mobile", Score: 90}}
	model := app.NewModel(stubAnalysis{runs: runs}, stubExport{})

	model, _ = step(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})
	model, _ = step(t, model, historyview.RunsLoadedMsg{Results: runs})
	model, _ = step(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model, cmd := step(t, model, keyRunes("r"))
	if cmd == nil {
		t.Fatalf("pressing r with a selected run should start a re-run")
	}

	model, _ = step(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model, _ = step(t, model, keyRunes("https://b.example"))
	model, cmd = step(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("enter should be held back while the re-run is in flight")
	}
	if !strings.Contains(model.View(), "an audit is already running") {
		t.Fatalf("status should report the running audit")
	}
}

func TestRerunHeldWhileAnalyzeInFlight(t *testing.T) {
	t.Parallel()
	runs := []dto.ResultOutput{{ID: "a", URL: "https://a.example", Strategy: "mobile", Score: 90}}
	model := app.NewModel(stubAnalysis{runs: runs}, stubExport{})

	model, _ = step(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})
	model, _ = step(t, model, historyview.RunsLoadedMsg{Results: runs})
	model, _ = step(t, model, keyRunes("https://b.example"))
	model, cmd := step(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter with a URL should start an audit")
	}

	model, _ = step(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model, cmd = step(t, model, keyRunes("r"))
	if cmd != nil {
		t.Fatalf("r should be held back while an audit is in flight")
	}
	if !strings.Contains(model.View(), "an audit is already running") {
		t.Fatalf("status should report the running audit")
	}
}
