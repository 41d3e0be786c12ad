package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pagepulse/internal/modules/analysis/dto"
	"pagepulse/internal/ui/components"
	"pagepulse/internal/ui/theme"
	analyzeview "pagepulse/internal/ui/views/analyze"
	historyview "pagepulse/internal/ui/views/history"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type analysisPort interface {
	Analyze(ctx context.Context, input dto.AnalyzeInput) ([]dto.ResultOutput, error)
	Rerun(ctx context.Context, input dto.RerunInput) ([]dto.ResultOutput, error)
	History(ctx context.Context) ([]dto.ResultOutput, error)
	ClearHistory(ctx context.Context) error
}

type exportPort interface {
	Export(ctx context.Context, dir string) ([]string, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabAnalyze tabID = iota
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Analyze", "History"}

// ─── async messages ───────────────────────────────────────────────────────────

type historyClearedMsg struct{ err error }

type historyExportedMsg struct {
	files []string
	err   error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Rerun   key.Binding
	Clear   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run audit")),
		Rerun:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-run slot")),
		Clear:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x x", "clear history")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Rerun, k.Clear},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, and the command palette. All business logic is delegated to port
// interfaces; all rendering is delegated to sub-views.
type Model struct {
	analysis analysisPort
	export   exportPort

	analyzeView analyzeview.Model
	historyView historyview.Model

	activeTab    tabID
	keys         keyMap
	help         help.Model
	showHelp     bool
	palette      components.Palette
	confirmClear bool
	status       string
	width        int
	height       int
}

func NewModel(analysis analysisPort, export exportPort) Model {
	return Model{
		analysis:    analysis,
		export:      export,
		analyzeView: analyzeview.New(analysis),
		historyView: historyview.New(analysis),
		activeTab:   tabAnalyze,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.analyzeView.Init(), m.historyView.Init())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	// AnalyzedMsg is produced by the Analyze view but bubbles up through the
	// top level so the History tab picks up the refreshed list.
	case analyzeview.AnalyzedMsg:
		if msg.Err != nil {
			m.status = "analyze failed: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("audit stored (%d runs)", len(msg.Results))
			cmds = append(cmds, m.historyView.SetRuns(msg.Results))
		}
		var cmd tea.Cmd
		m.analyzeView, cmd = m.analyzeView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	// The initial history load finishes while the Analyze tab is active, so
	// it must be routed to the History view explicitly.
	case historyview.RunsLoadedMsg:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd

	case historyview.RerunDoneMsg:
		if msg.Err != nil {
			m.status = "re-run failed: " + msg.Err.Error()
		} else {
			m.status = "slot re-run stored"
		}
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case historyClearedMsg:
		if msg.err != nil {
			m.status = "clear failed: " + msg.err.Error()
		} else {
			m.status = "history cleared"
			cmds = append(cmds, m.historyView.SetRuns(nil))
		}
		return m, tea.Batch(cmds...)

	case historyExportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("exported %d reports", len(msg.files))
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield everything to the History list while its filter is typing.
		if m.activeTab == tabHistory && m.historyView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		}

		// Rune keys belong to the URL input on the Analyze tab. Enter is
		// held back while a re-run started from the History tab is still in
		// flight, or the replaced index could go stale under the new audit.
		if m.activeTab == tabAnalyze {
			if msg.String() == "enter" && m.historyView.Busy() {
				m.status = "an audit is already running"
				return m, nil
			}
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			if m.analyzeView.Busy() {
				m.status = "an audit is already running"
				return m, nil
			}
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "x":
			if m.activeTab != tabHistory {
				break
			}
			// Destructive, so x must be pressed twice in a row.
			if !m.confirmClear {
				m.confirmClear = true
				m.status = "press x again to clear history"
				return m, nil
			}
			m.confirmClear = false
			return m, m.clearHistoryCmd()
		}
		if msg.String() != "x" && m.confirmClear {
			m.confirmClear = false
			m.status = "clear cancelled"
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabAnalyze:
		m.analyzeView, tabCmd = m.analyzeView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabAnalyze:
		return m.analyzeView.View()
	case tabHistory:
		return m.historyView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "pagepulse  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.analyzeView.Busy() || m.historyView.Busy() {
		left = theme.Hot.Render("● auditing") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "analyze":
		if len(parts) < 2 {
			m.status = "usage: analyze <url> [mobile|desktop]"
			return m, nil
		}
		if m.analyzeView.Busy() || m.historyView.Busy() {
			m.status = "an audit is already running"
			return m, nil
		}
		strategy := "mobile"
		if len(parts) >= 3 {
			strategy = parts[2]
		}
		m.activeTab = tabAnalyze
		m.status = "auditing " + parts[1]
		return m, m.paletteAnalyzeCmd(parts[1], strategy)

	case "rerun":
		if m.analyzeView.Busy() || m.historyView.Busy() {
			m.status = "an audit is already running"
			return m, nil
		}
		index, ok := m.historyView.SelectedIndex()
		if len(parts) >= 2 {
			i, err := strconv.Atoi(parts[1])
			if err != nil {
				m.status = "invalid index"
				return m, nil
			}
			index, ok = i, true
		}
		if !ok {
			m.status = "no run selected"
			return m, nil
		}
		m.activeTab = tabHistory
		return m, m.paletteRerunCmd(index)

	case "history:clear":
		return m, m.clearHistoryCmd()

	case "history:export":
		if len(parts) < 2 {
			m.status = "usage: history:export <dir>"
			return m, nil
		}
		return m, m.exportHistoryCmd(parts[1])

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.analyzeView, _ = m.analyzeView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) paletteAnalyzeCmd(url, strategy string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.analysis.Analyze(context.Background(), dto.AnalyzeInput{URL: url, Strategy: strategy})
		return analyzeview.AnalyzedMsg{Results: results, Err: err}
	}
}

func (m Model) paletteRerunCmd(index int) tea.Cmd {
	return func() tea.Msg {
		results, err := m.analysis.Rerun(context.Background(), dto.RerunInput{Index: index})
		return historyview.RerunDoneMsg{Results: results, Err: err}
	}
}

func (m Model) clearHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		return historyClearedMsg{err: m.analysis.ClearHistory(context.Background())}
	}
}

func (m Model) exportHistoryCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		files, err := m.export.Export(context.Background(), dir)
		return historyExportedMsg{files: files, err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
