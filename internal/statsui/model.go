// Package statsui provides the Bubble Tea campaign report browser.
package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/astrotally/internal/model"
	"github.com/verte-zerg/astrotally/internal/render"
	"github.com/verte-zerg/astrotally/internal/stats"
)

const (
	tabReport = iota
	tabFilters
	tabSessions
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Options wires the browser to analysis and export.
type Options struct {
	Analyze       func() (model.CampaignResult, error)
	Export        func(rows []string) error
	CSVPath       string
	TargetSeconds float64
}

// Model implements the Bubble Tea report browser.
type Model struct {
	opts Options

	result   model.CampaignResult
	progress model.Progress
	errMsg   string
	status   string

	tabs        []string
	activeTab   int
	viewports   []viewport.Model
	filterTable table.Model

	width  int
	height int
}

// NewModel runs the first analysis and constructs the browser.
func NewModel(opts Options) *Model {
	m := &Model{
		opts: opts,
		tabs: []string{"Report", "Filters", "Sessions"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.filterTable = table.New(table.WithStyles(filterTableStyles()))
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.refresh()
			return m, nil
		case "e":
			m.exportCSV()
			return m, nil
		case "g", "home":
			if m.activeTab == tabFilters {
				m.filterTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabFilters {
				m.filterTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.activeTab == tabFilters {
				m.filterTable, cmd = m.filterTable.Update(msg)
				return m, cmd
			}
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// refresh replaces the current result with a fresh analysis run.
func (m *Model) refresh() {
	m.status = ""
	result, err := m.opts.Analyze()
	if err != nil {
		m.errMsg = fmt.Sprintf("Please select a valid directory: %v", err)
		m.result = model.CampaignResult{}
	} else {
		m.errMsg = ""
		m.result = result
	}
	m.progress = stats.CampaignProgress(m.result, m.opts.TargetSeconds)
	m.filterTable.SetColumns(filterColumns())
	m.filterTable.SetRows(filterRows(m.result))
	m.renderTabContents()
}

func (m *Model) exportCSV() {
	if len(m.result.CSVRows) == 0 {
		m.status = "Nothing to export; run an analysis first."
		return
	}
	if err := m.opts.Export(m.result.CSVRows); err != nil {
		m.errMsg = err.Error()
		m.status = ""
		return
	}
	m.errMsg = ""
	m.status = fmt.Sprintf("CSV file saved successfully: %s", m.opts.CSVPath)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	headerHeight = tabsHeight + 1
	footerHeight = 3
	if m.errMsg != "" || m.status != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.filterTable.SetWidth(m.width)
	m.filterTable.SetHeight(bodyHeight)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := (m.activeTab + delta + count) % count
	m.activeTab = next
	if m.activeTab == tabFilters {
		m.filterTable.Focus()
	} else {
		m.filterTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	summary := fmt.Sprintf("Root: %s  Sessions: %d  Lights: %d  Flats: %d",
		m.result.Root, len(m.result.Sessions), m.result.Lights.Count, m.result.Flats.Count)
	return padLines(m.renderTabs(), m.width) + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderBody() string {
	if m.activeTab == tabFilters {
		if len(m.filterTable.Rows()) == 0 {
			return "No frames found."
		}
		return tableMutedStyle.Render(m.filterTable.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderFooter() string {
	barWidth := render.BarWidth(m.width)
	lines := []string{
		render.ProgressBar(m.progress, barWidth, true) + fmt.Sprintf(" %3d%%", m.progress.Clamped),
		truncateLine(stats.ProgressText(m.progress), m.width),
		headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Rescan: r  Export CSV: e  Quit: q"),
	}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(truncateLine(m.errMsg, m.width)))
	} else if m.status != "" {
		lines = append(lines, statusStyle.Render(truncateLine(m.status, m.width)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTabContents() {
	m.viewports[tabReport].SetContent(renderReport(m.result.Segments))
	m.viewports[tabSessions].SetContent(renderSessions(m.result.Sessions))
}

func renderReport(segments []model.Segment) string {
	if len(segments) == 0 {
		return "No report available."
	}
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, render.StyleFor(seg.Emphasis).Render(seg.Text))
	}
	return strings.Join(lines, "\n")
}

func renderSessions(sessions []model.SessionResult) string {
	var buf bytes.Buffer
	if err := stats.RenderSessions(&buf, sessions); err != nil {
		return fmt.Sprintf("Failed to render sessions: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func filterColumns() []table.Column {
	return []table.Column{
		{Title: "Kind", Width: 6},
		{Title: "Filter", Width: 12},
		{Title: "Time", Width: 24},
		{Title: "Count", Width: 7},
	}
}

func filterRows(result model.CampaignResult) []table.Row {
	rows := make([]table.Row, 0, len(result.Lights.Filters)+len(result.Flats.Filters))
	for _, f := range stats.FiltersByTime(result.Lights.Filters) {
		rows = append(rows, table.Row{"Light", f.Filter, stats.FormatTime(f.TimeSeconds), fmt.Sprintf("%d", f.Count)})
	}
	for _, f := range stats.FiltersByTime(result.Flats.Filters) {
		rows = append(rows, table.Row{"Flat", f.Filter, "", fmt.Sprintf("%d", f.Count)})
	}
	return rows
}

func filterTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A"))
	return styles
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
