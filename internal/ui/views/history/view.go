package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pagepulse/internal/modules/analysis/domain"
	"pagepulse/internal/modules/analysis/dto"
	"pagepulse/internal/ui/components"
	"pagepulse/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type HistoryPort interface {
	History(ctx context.Context) ([]dto.ResultOutput, error)
	Rerun(ctx context.Context, input dto.RerunInput) ([]dto.ResultOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type RunsLoadedMsg struct {
	Results []dto.ResultOutput
	Err     error
}

// RerunDoneMsg carries the refreshed list after a slot was re-audited. It
// bubbles up to the app model for status reporting.
type RerunDoneMsg struct {
	Results []dto.ResultOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type runItem struct {
	position int
	run      dto.ResultOutput
}

func (i runItem) Title() string { return i.run.URL }
func (i runItem) Description() string {
	return fmt.Sprintf("%s  %s  score %.0f", i.run.Date, i.run.Strategy, i.run.Score)
}
func (i runItem) FilterValue() string { return i.run.URL }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    HistoryPort
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	runs    []dto.ResultOutput
	loading bool
	busy    bool
	width   int
	height  int
}

func New(port HistoryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadRunsCmd(), m.spinner.Tick)
}

// Busy reports whether a re-run audit is in flight.
func (m Model) Busy() bool { return m.busy }

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// SelectedIndex returns the history position of the current selection.
func (m Model) SelectedIndex() (int, bool) {
	if item, ok := m.list.SelectedItem().(runItem); ok {
		return item.position, true
	}
	return 0, false
}

// SetRuns replaces the displayed list. The app model calls this when the
// Analyze tab produced a new run.
func (m *Model) SetRuns(runs []dto.ResultOutput) tea.Cmd {
	m.runs = runs
	m.loading = false
	items := make([]list.Item, len(runs))
	for i, r := range runs {
		items[i] = runItem{position: i, run: r}
	}
	cmd := m.list.SetItems(items)
	m.refreshDetail()
	return cmd
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case RunsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "History — " + msg.Err.Error()
			return m, nil
		}
		cmds = append(cmds, m.SetRuns(msg.Results))

	case RerunDoneMsg:
		m.busy = false
		if msg.Err == nil {
			cmds = append(cmds, m.SetRuns(msg.Results))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.busy || m.Filtering() {
			break
		}
		if msg.String() == "r" {
			if idx, ok := m.SelectedIndex(); ok {
				m.busy = true
				return m, tea.Batch(m.spinner.Tick, m.rerunCmd(idx))
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.refreshDetail()
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading history…")
	}
	if len(m.runs) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No runs yet. Analyze a page first."))
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m *Model) refreshDetail() {
	item, ok := m.list.SelectedItem().(runItem)
	if !ok {
		m.detail.SetContent(theme.Muted.Render("Select a run to see details"))
		return
	}
	r := item.run
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(r.URL) + "\n\n")
	sb.WriteString(theme.Muted.Render("when:     ") + r.Date + "\n")
	sb.WriteString(theme.Muted.Render("strategy: ") + r.Strategy + "\n")
	sb.WriteString(theme.Muted.Render("score:    ") + components.Score(r.Score) + "\n\n")
	sb.WriteString(theme.Muted.Render("FCP: ") + components.Metric(r.FCP, "s", domain.BandFCP) + "\n")
	sb.WriteString(theme.Muted.Render("LCP: ") + components.Metric(r.LCP, "s", domain.BandLCP) + "\n")
	sb.WriteString(theme.Muted.Render("TTI: ") + components.Metric(r.TTI, "s", domain.BandTTI) + "\n")
	sb.WriteString(theme.Muted.Render("TBT: ") + components.Metric(r.TBT, "ms", domain.BandTBT) + "\n")
	sb.WriteString(theme.Muted.Render("CLS: ") + components.Metric(r.CLS, "", domain.BandCLS) + "\n")
	if m.busy {
		sb.WriteString("\n" + m.spinner.View() + " Re-running…\n")
	} else {
		sb.WriteString("\n" + theme.Muted.Render("r: re-run this slot"))
	}
	m.detail.SetContent(sb.String())
}

func (m Model) loadRunsCmd() tea.Cmd {
	return func() tea.Msg {
		runs, err := m.port.History(context.Background())
		return RunsLoadedMsg{Results: runs, Err: err}
	}
}

func (m Model) rerunCmd(index int) tea.Cmd {
	return func() tea.Msg {
		runs, err := m.port.Rerun(context.Background(), dto.RerunInput{Index: index})
		return RerunDoneMsg{Results: runs, Err: err}
	}
}
