package analyze

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pagepulse/internal/modules/analysis/domain"
	"pagepulse/internal/modules/analysis/dto"
	"pagepulse/internal/ui/components"
	"pagepulse/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AnalyzePort interface {
	Analyze(ctx context.Context, input dto.AnalyzeInput) ([]dto.ResultOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// AnalyzedMsg carries the refreshed run list after an audit finishes. It
// bubbles up to the app model so the History tab can pick up the new list.
type AnalyzedMsg struct {
	Results []dto.ResultOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     AnalyzePort
	input    textinput.Model
	strategy domain.Strategy
	spinner  spinner.Model
	busy     bool
	latest   dto.ResultOutput
	hasRun   bool
	errLine  string
	width    int
	height   int
}

func New(port AnalyzePort) Model {
	ti := textinput.New()
	ti.Placeholder = "https://example.com"
	ti.CharLimit = 512
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:     port,
		input:    ti,
		strategy: domain.StrategyMobile,
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Busy reports whether an audit is in flight. The app model checks this to
// avoid overlapping requests.
func (m Model) Busy() bool { return m.busy }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = min(m.width-10, 72)

	case AnalyzedMsg:
		m.busy = false
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
			return m, nil
		}
		m.errLine = ""
		if len(msg.Results) > 0 {
			m.latest = msg.Results[0]
			m.hasRun = true
		}
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.busy {
			return m, tea.Batch(cmds...)
		}
		switch msg.String() {
		case "enter":
			url := strings.TrimSpace(m.input.Value())
			if url == "" {
				m.errLine = "enter a URL first"
				return m, nil
			}
			m.busy = true
			m.errLine = ""
			return m, tea.Batch(m.spinner.Tick, m.analyzeCmd(url, m.strategy))
		case "ctrl+s":
			if m.strategy == domain.StrategyMobile {
				m.strategy = domain.StrategyDesktop
			} else {
				m.strategy = domain.StrategyMobile
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Analyze a page") + "\n\n")
	sb.WriteString(theme.Muted.Render("url:      ") + m.input.View() + "\n")
	sb.WriteString(theme.Muted.Render("strategy: ") + m.renderStrategy() + theme.Muted.Render("   (ctrl+s to switch)") + "\n\n")

	switch {
	case m.busy:
		sb.WriteString(m.spinner.View() + " Auditing…\n")
	case m.errLine != "":
		sb.WriteString(theme.Bad.Render("✗ "+m.errLine) + "\n")
	case m.hasRun:
		sb.WriteString(m.renderResult())
	default:
		sb.WriteString(theme.Muted.Render("enter: run audit") + "\n")
	}

	card := theme.Pane.Width(max(m.width-4, 20)).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, card)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderStrategy() string {
	mobile := " mobile "
	desktop := " desktop "
	if m.strategy == domain.StrategyMobile {
		return theme.Hot.Render(mobile) + theme.Muted.Render(desktop)
	}
	return theme.Muted.Render(mobile) + theme.Hot.Render(desktop)
}

func (m Model) renderResult() string {
	r := m.latest
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(r.URL) + theme.Muted.Render("  "+r.Strategy+"  "+r.Date) + "\n\n")
	sb.WriteString(fmt.Sprintf("%s%s\n\n", theme.Muted.Render("score: "), components.Score(r.Score)))
	sb.WriteString(theme.Muted.Render("FCP: ") + components.Metric(r.FCP, "s", domain.BandFCP) + "\n")
	sb.WriteString(theme.Muted.Render("LCP: ") + components.Metric(r.LCP, "s", domain.BandLCP) + "\n")
	sb.WriteString(theme.Muted.Render("TTI: ") + components.Metric(r.TTI, "s", domain.BandTTI) + "\n")
	sb.WriteString(theme.Muted.Render("TBT: ") + components.Metric(r.TBT, "ms", domain.BandTBT) + "\n")
	sb.WriteString(theme.Muted.Render("CLS: ") + components.Metric(r.CLS, "", domain.BandCLS) + "\n")
	return sb.String()
}

func (m Model) analyzeCmd(url string, strategy domain.Strategy) tea.Cmd {
	return func() tea.Msg {
		results, err := m.port.Analyze(context.Background(), dto.AnalyzeInput{URL: url, Strategy: string(strategy)})
		return AnalyzedMsg{Results: results, Err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
