// Package tui is the interactive front end: a menu over the same pipeline
// the batch commands run, with a table preview of the ranked results.
package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/LGsekara1/CGPA-gen/internal/config"
	"github.com/LGsekara1/CGPA-gen/internal/pipeline"
	"github.com/LGsekara1/CGPA-gen/internal/roster"
)

const (
	WHITE       = lipgloss.Color("#FFFFFF")
	BLUE        = lipgloss.Color("#0043a8")
	GREY        = lipgloss.Color("#626262")
	GREEN       = lipgloss.Color("#50FA7B")
	LIGHT_GREEN = lipgloss.Color("#B9FBC0")
	RED         = lipgloss.Color("#FF5555")
	YELLOW      = lipgloss.Color("#F1FA8C")
	LIGHT_BLUE  = lipgloss.Color("#8BE9FD")
	TURQUOISE   = lipgloss.Color("#98F5E1")
	SILVER      = lipgloss.Color("#A9B2D8")
)

type ViewType int

const (
	LoadingView ViewType = iota
	MenuView
	SemesterPickView
	LookupInputView
	ResultsView
	LookupView
	ErrorView
)

// runMode is what the semester picker feeds into.
type runMode int

const (
	modeSemesterReport runMode = iota
	modeLookup
)

type EnvLoadedMsg struct {
	Env   *pipeline.Env
	Files []string
	Error error
}

type SemesterReportMsg struct {
	Report *pipeline.SemesterReport
	Error  error
}

type CumulativeReportMsg struct {
	Report *pipeline.CumulativeReport
	Error  error
}

type LookupMsg struct {
	Breakdown *pipeline.Breakdown
	Error     error
}

type LoadingState struct {
	Reason     string
	HelpText   string
	BottomText string
}

const (
	menuSemester = iota
	menuCumulative
	menuLookup
	menuQuit
)

var menuItems = []string{
	"Semester report (SGPA)",
	"Cumulative report (CGPA)",
	"Student lookup",
	"Quit",
}

type model struct {
	width  int
	height int

	currentView  ViewType
	appConfig    config.Config
	env          *pipeline.Env
	configFiles  []string
	menuIndex    int
	semIndex     int
	mode         runMode
	lookupInput  string
	lookupSem    string
	spinner      spinner.Model
	loadingState LoadingState

	resultTable  table.Model
	resultTitle  string
	createdPaths []string
	lookupTable  table.Model
	breakdown    *pipeline.Breakdown
	err          error
}

func NewModel(cfg config.Config) model {
	s := spinner.New()
	s.Style = lipgloss.NewStyle().Foreground(BLUE)
	s.Spinner = spinner.Points

	return model{
		currentView: LoadingView,
		appConfig:   cfg,
		spinner:     s,
		loadingState: LoadingState{
			Reason:     "📂 Loading configuration, please wait",
			HelpText:   "Reading the grade table, student database and semester configs",
			BottomText: "• Q: Cancel and quit",
		},
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		env, err := pipeline.LoadEnv(m.appConfig, zap.NewNop())
		if err != nil {
			return EnvLoadedMsg{Error: err}
		}
		files, err := env.SemesterConfigs()
		if err != nil {
			return EnvLoadedMsg{Error: err}
		}
		return EnvLoadedMsg{Env: env, Files: files}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EnvLoadedMsg:
		if msg.Error != nil {
			m.err = msg.Error
			m.currentView = ErrorView
		} else {
			m.env = msg.Env
			m.configFiles = msg.Files
			m.currentView = MenuView
		}

	case SemesterReportMsg:
		if msg.Error != nil {
			m.err = msg.Error
			m.currentView = ErrorView
		} else {
			m.setSemesterTable(msg.Report)
			m.currentView = ResultsView
		}

	case CumulativeReportMsg:
		if msg.Error != nil {
			m.err = msg.Error
			m.currentView = ErrorView
		} else {
			m.setCumulativeTable(msg.Report)
			m.currentView = ResultsView
		}

	case LookupMsg:
		if msg.Error != nil {
			m.err = msg.Error
			m.currentView = ErrorView
		} else {
			m.setLookupTable(msg.Breakdown)
			m.currentView = LookupView
		}

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentView {
	case LoadingView:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	case MenuView:
		return m.handleMenuKeys(msg)
	case SemesterPickView:
		return m.handleSemesterPickKeys(msg)
	case LookupInputView:
		return m.handleLookupInputKeys(msg)
	case ResultsView:
		return m.handleResultsKeys(msg)
	case LookupView:
		return m.handleLookupViewKeys(msg)
	case ErrorView:
		return m.handleErrorKeys(msg)
	default:
		return m, nil
	}
}

func (m model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}

	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}

	case "enter":
		switch m.menuIndex {
		case menuSemester:
			m.mode = modeSemesterReport
			m.semIndex = 0
			m.currentView = SemesterPickView
		case menuCumulative:
			m.setLoadingState("🧮 Computing CGPAs, please wait", "Accumulating every semester with result sheets", "• Q: Cancel and quit")
			m.currentView = LoadingView
			env := m.env
			return m, tea.Batch(
				m.spinner.Tick,
				func() tea.Msg {
					rep, err := env.CumulativeReport()
					return CumulativeReportMsg{Report: rep, Error: err}
				},
			)
		case menuLookup:
			m.mode = modeLookup
			m.semIndex = 0
			m.currentView = SemesterPickView
		case menuQuit:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) handleSemesterPickKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		m.currentView = MenuView

	case "up", "k":
		if m.semIndex > 0 {
			m.semIndex--
		}

	case "down", "j":
		if m.semIndex < len(m.configFiles)-1 {
			m.semIndex++
		}

	case "enter":
		if len(m.configFiles) == 0 {
			return m, nil
		}
		chosen := m.configFiles[m.semIndex]
		if m.mode == modeLookup {
			m.lookupSem = semesterLabel(chosen)
			m.lookupInput = ""
			m.currentView = LookupInputView
			return m, nil
		}
		m.setLoadingState(
			fmt.Sprintf("🧮 Computing SGPAs for %s...", semesterLabel(chosen)),
			"Extracting result sheets and ranking the batch",
			"• Q: Cancel and quit",
		)
		m.currentView = LoadingView
		env := m.env
		return m, tea.Batch(
			m.spinner.Tick,
			func() tea.Msg {
				rep, err := env.SemesterReport(chosen)
				return SemesterReportMsg{Report: rep, Error: err}
			},
		)
	}
	return m, nil
}

func (m model) handleLookupInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.currentView = SemesterPickView

	case "backspace":
		if len(m.lookupInput) > 0 {
			m.lookupInput = m.lookupInput[:len(m.lookupInput)-1]
		}

	case "enter":
		idx, err := roster.CleanIndex(m.lookupInput)
		if err != nil {
			return m, nil
		}
		m.setLoadingState(
			fmt.Sprintf("🔎 Looking up %d in %s...", idx, m.lookupSem),
			"Extracting the student's module results",
			"• Q: Cancel and quit",
		)
		m.currentView = LoadingView
		env := m.env
		semRef := m.lookupSem
		return m, tea.Batch(
			m.spinner.Tick,
			func() tea.Msg {
				b, err := env.Lookup(idx, semRef)
				return LookupMsg{Breakdown: b, Error: err}
			},
		)

	default:
		if len(msg.String()) == 1 && msg.String() >= "0" && msg.String() <= "9" {
			m.lookupInput += msg.String()
		}
	}
	return m, nil
}

func (m model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "enter":
		m.currentView = MenuView
	case "up", "k", "down", "j":
		var cmd tea.Cmd
		m.resultTable, cmd = m.resultTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleLookupViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "enter":
		m.currentView = MenuView
	case "up", "k", "down", "j":
		var cmd tea.Cmd
		m.lookupTable, cmd = m.lookupTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleErrorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "enter":
		if m.env != nil {
			m.currentView = MenuView
		} else {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *model) setLoadingState(reason, helpText, bottomText string) {
	m.loadingState = LoadingState{
		Reason:     reason,
		HelpText:   helpText,
		BottomText: bottomText,
	}
}

func (m *model) setSemesterTable(rep *pipeline.SemesterReport) {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Index", Width: 10},
		{Title: "Name", Width: 32},
		{Title: "SGPA", Width: 6},
		{Title: "Max", Width: 6},
		{Title: "Rank (4.2)", Width: 10},
	}

	var rows []table.Row
	for _, s := range rep.Standings {
		name := "Unknown"
		if st, ok := m.env.Roster[s.Index]; ok {
			name = st.Name
		}
		rows = append(rows, table.Row{
			strconv.Itoa(s.Rank),
			indexLabel(m.env.Roster, s.Index),
			name,
			fmt.Sprintf("%.2f", s.GPA40),
			fmt.Sprintf("%.2f", s.MaxGPA),
			strconv.Itoa(s.Rank42),
		})
	}

	m.resultTable = newTable(columns, rows)
	m.resultTitle = fmt.Sprintf("📊 Ranked Results - %s", rep.Config.Name)
	m.createdPaths = rep.Paths
}

func (m *model) setCumulativeTable(rep *pipeline.CumulativeReport) {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Index", Width: 10},
		{Title: "Name", Width: 32},
	}
	for _, name := range rep.Semesters {
		columns = append(columns, table.Column{Title: name, Width: 8})
	}
	columns = append(columns,
		table.Column{Title: "CGPA", Width: 6},
		table.Column{Title: "Rank (4.2)", Width: 10},
	)

	var rows []table.Row
	for _, s := range rep.Standings {
		name := "Unknown"
		if st, ok := m.env.Roster[s.Index]; ok {
			name = st.Name
		}
		row := table.Row{
			strconv.Itoa(s.Rank),
			indexLabel(m.env.Roster, s.Index),
			name,
		}
		for k := range rep.Semesters {
			if s.Present[k] {
				row = append(row, fmt.Sprintf("%.2f", s.SGPA40[k]))
			} else {
				row = append(row, "-")
			}
		}
		row = append(row, fmt.Sprintf("%.2f", s.CGPA40), strconv.Itoa(s.Rank42))
		rows = append(rows, row)
	}

	m.resultTable = newTable(columns, rows)
	m.resultTitle = "📊 Ranked Results - Cumulative"
	m.createdPaths = []string{rep.Path}
}

func (m *model) setLookupTable(b *pipeline.Breakdown) {
	columns := []table.Column{
		{Title: "Module", Width: 10},
		{Title: "Grade", Width: 6},
		{Title: "Credits", Width: 8},
		{Title: "Points", Width: 7},
		{Title: "Weighted", Width: 9},
	}

	var rows []table.Row
	for _, row := range b.Rows {
		if row.Counted {
			rows = append(rows, table.Row{
				row.Module,
				row.Grade,
				fmt.Sprintf("%g", row.Credits),
				fmt.Sprintf("%.1f", row.Points),
				fmt.Sprintf("%.2f", row.Weighted),
			})
		} else {
			rows = append(rows, table.Row{row.Module, row.Grade, fmt.Sprintf("%g", row.Credits), "N/A", "Ignored"})
		}
	}

	m.lookupTable = newTable(columns, rows)
	m.breakdown = b
}

func newTable(columns []table.Column, rows []table.Row) table.Model {
	tableHeight := min(max(len(rows)+1, 5), 15)

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(tableHeight),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(BLUE).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(WHITE).
		Background(BLUE).
		Bold(true)
	tbl.SetStyles(s)
	return tbl
}

func indexLabel(ros roster.Roster, idx int) string {
	if s, ok := ros[idx]; ok && s.Index != "" {
		return s.Index
	}
	return strconv.Itoa(idx)
}

func semesterLabel(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func (m model) View() string {
	switch m.currentView {
	case LoadingView:
		return m.renderLoading()
	case MenuView:
		return m.renderMenu()
	case SemesterPickView:
		return m.renderSemesterPick()
	case LookupInputView:
		return m.renderLookupInput()
	case ResultsView:
		return m.renderResults()
	case LookupView:
		return m.renderLookup()
	case ErrorView:
		return m.renderError()
	default:
		return "Unknown view"
	}
}

func (m model) renderLoading() string {
	reasonStyle := lipgloss.NewStyle().
		Foreground(WHITE).
		Bold(true).
		MarginBottom(1)

	helpStyle := lipgloss.NewStyle().
		Foreground(GREY).
		MarginTop(1)

	content := lipgloss.JoinVertical(lipgloss.Center,
		reasonStyle.Render(m.loadingState.Reason),
		m.spinner.View(),
		helpStyle.Render(m.loadingState.HelpText),
		helpStyle.Render(m.loadingState.BottomText),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m model) renderMenu() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(LIGHT_BLUE).
		MarginBottom(1)

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(WHITE).
		Background(BLUE).
		Padding(0, 1)

	normalStyle := lipgloss.NewStyle().
		Foreground(SILVER).
		Padding(0, 1)

	infoStyle := lipgloss.NewStyle().
		Foreground(TURQUOISE).
		MarginBottom(1)

	helpStyle := lipgloss.NewStyle().
		Foreground(GREY).
		MarginTop(1)

	title := titleStyle.Render("University GPA Analysis System")
	info := infoStyle.Render(fmt.Sprintf("%d students | %d semester configs", len(m.env.Roster), len(m.configFiles)))

	var items []string
	for i, item := range menuItems {
		if i == m.menuIndex {
			items = append(items, selectedStyle.Render(fmt.Sprintf("→ %s", item)))
		} else {
			items = append(items, normalStyle.Render(fmt.Sprintf("  %s", item)))
		}
	}

	helpText := helpStyle.Render("• ↑/↓: Navigate • Enter: Select • Q: Quit")

	content := lipgloss.JoinVertical(lipgloss.Center, title, info, strings.Join(items, "\n"), helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m model) renderSemesterPick() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(LIGHT_BLUE).
		MarginBottom(1)

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(WHITE).
		Background(BLUE).
		Padding(0, 1)

	normalStyle := lipgloss.NewStyle().
		Foreground(SILVER).
		Padding(0, 1)

	helpStyle := lipgloss.NewStyle().
		Foreground(GREY).
		MarginTop(1)

	title := titleStyle.Render("📚 Select a semester")

	if len(m.configFiles) == 0 {
		noneStyle := lipgloss.NewStyle().Foreground(YELLOW)
		content := lipgloss.JoinVertical(lipgloss.Center,
			title,
			noneStyle.Render("No semester configuration files found."),
			helpStyle.Render("• Esc: Back • Q: Quit"),
		)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	var items []string
	for i, f := range m.configFiles {
		label := semesterLabel(f)
		if i == m.semIndex {
			items = append(items, selectedStyle.Render(fmt.Sprintf("→ %s", label)))
		} else {
			items = append(items, normalStyle.Render(fmt.Sprintf("  %s", label)))
		}
	}

	helpText := helpStyle.Render("• ↑/↓: Navigate • Enter: Select • Esc: Back • Q: Quit")

	content := lipgloss.JoinVertical(lipgloss.Center, title, strings.Join(items, "\n"), helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m model) renderLookupInput() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(LIGHT_BLUE).
		MarginBottom(1)

	labelStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(WHITE)

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BLUE).
		Padding(0, 1).
		Width(30)

	helpStyle := lipgloss.NewStyle().
		Foreground(GREY).
		MarginTop(1)

	title := titleStyle.Render(fmt.Sprintf("🔎 Student lookup - %s", m.lookupSem))
	label := labelStyle.Render("Index number:")
	input := inputStyle.Render(m.lookupInput + "│")
	helpText := helpStyle.Render("• Enter: Look up • Esc: Back • Ctrl+C: Quit")

	content := lipgloss.JoinVertical(lipgloss.Center, title, label, input, helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m model) renderResults() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(LIGHT_BLUE).
		MarginBottom(1)

	createdStyle := lipgloss.NewStyle().
		Foreground(LIGHT_GREEN).
		MarginTop(1)

	helpStyle := lipgloss.NewStyle().
		Foreground(GREY).
		MarginTop(1)

	var created []string
	for _, p := range m.createdPaths {
		created = append(created, fmt.Sprintf("✅ Created %s", p))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		headerStyle.Render(m.resultTitle),
		m.resultTable.View(),
		createdStyle.Render(strings.Join(created, "\n")),
		helpStyle.Render("• ↑/↓: Navigate • Esc/Enter: Menu • Q: Quit"),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m model) renderLookup() string {
	if m.breakdown == nil {
		return m.renderMenu()
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(LIGHT_BLUE).
		MarginBottom(1)

	statsStyle := lipgloss.NewStyle().
		Foreground(WHITE).
		MarginTop(1)

	sgpaStyle := lipgloss.NewStyle().Foreground(LIGHT_GREEN).Bold(true)

	helpStyle := lipgloss.NewStyle().
		Foreground(GREY).
		MarginTop(1)

	b := m.breakdown
	title := headerStyle.Render(fmt.Sprintf("📄 %s (%d) - %s", b.Name, b.Index, b.Semester))
	totals := fmt.Sprintf("Credits: %g | Weighted points: %.2f | SGPA: %s",
		b.TotalCredits, b.TotalWeighted, sgpaStyle.Render(fmt.Sprintf("%.2f", b.SGPA)))

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		m.lookupTable.View(),
		statsStyle.Render(totals),
		helpStyle.Render("• ↑/↓: Navigate • Esc/Enter: Menu • Q: Quit"),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m model) renderError() string {
	errorStyle := lipgloss.NewStyle().
		Foreground(RED)

	helpStyle := lipgloss.NewStyle().
		Foreground(GREY).
		MarginTop(1)

	statusText := "❓ An unknown error occurred!"
	if m.err != nil {
		statusText = fmt.Sprintf("❌ Error: %s", m.err.Error())
	}

	helpText := "• Esc/Enter: Menu • Q: Quit"
	if m.env == nil {
		helpText = "• Esc/Enter/Q: Quit"
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		errorStyle.Render(statusText),
		helpStyle.Render(helpText),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Run starts the interactive session.
func Run(cfg config.Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
