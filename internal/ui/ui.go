package ui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/nissyi-gh/daytrack/internal/app"
	"github.com/nissyi-gh/daytrack/internal/filter"
	"github.com/nissyi-gh/daytrack/internal/lifecycle"
	"github.com/nissyi-gh/daytrack/internal/model"
	"github.com/nissyi-gh/daytrack/internal/report"
)

type appState int

const (
	stateList appState = iota
	stateAdd
)

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	detailStyle  = lipgloss.NewStyle().
			Padding(0, 2).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241"))
	descBoxStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241"))
)

type extraKeyMap struct {
	Add        key.Binding
	Pending    key.Binding
	InProgress key.Binding
	Complete   key.Binding
	Category   key.Binding
	Priority   key.Binding
	Status     key.Binding
	ClearAll   key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Copy       key.Binding
	Reload     key.Binding
}

func newExtraKeyMap() extraKeyMap {
	return extraKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a/n", "add"),
		),
		Pending: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pending"),
		),
		InProgress: key.NewBinding(
			key.WithKeys("i", "s"),
			key.WithHelp("i/s", "start"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c", "x"),
			key.WithHelp("c/x", "complete"),
		),
		Category: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "category filter"),
		),
		Priority: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "priority filter"),
		),
		Status: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "status filter"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "clear filters"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy report"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

func (k extraKeyMap) short() []key.Binding {
	return []key.Binding{k.Add, k.InProgress, k.Complete, k.Category, k.Priority, k.Status, k.NextPage}
}

func (k extraKeyMap) full() []key.Binding {
	return []key.Binding{k.Add, k.Pending, k.InProgress, k.Complete, k.Category, k.Priority, k.Status, k.ClearAll, k.PrevPage, k.NextPage, k.Copy, k.Reload}
}

// Model is the top-level BubbleTea model for the tracker TUI.
type Model struct {
	state   appState
	list    list.Model
	form    addForm
	tracker *app.Tracker
	app     app.State
	keys    extraKeyMap
	copy    func(string) error
	notice  string
	err     error
	width   int
	height  int
}

type stateLoadedMsg app.State
type errMsg struct{ error }

// NewModel creates a new TUI model backed by t.
func NewModel(t *app.Tracker) Model {
	keys := newExtraKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Daily Activity Tracker"
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full

	return Model{
		state:   stateList,
		list:    l,
		form:    newAddForm(),
		tracker: t,
		keys:    keys,
		copy:    clipboard.WriteAll,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadState
}

func (m Model) loadState() tea.Msg {
	st, err := m.tracker.Start()
	if err != nil {
		return errMsg{err}
	}
	return stateLoadedMsg(st)
}

// setState stores st and refreshes the list with the visible page.
func (m *Model) setState(st app.State) tea.Cmd {
	m.app = st
	now := m.tracker.Now()
	rows := st.Visible()
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = TaskItem{Row: r, Now: now}
	}
	selected := m.list.Index()
	cmd := m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(min(selected, len(items)-1))
	}
	return cmd
}

func (m Model) selectedRow() (app.Row, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return app.Row{}, false
	}
	return item.Row, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		contentWidth := msg.Width - h
		leftWidth := contentWidth * 55 / 100
		m.list.SetSize(leftWidth, max(msg.Height-v-2, 0))
		m.form.SetWidth(max(contentWidth-16, 20))
		return m, nil

	case stateLoadedMsg:
		m.err = nil
		return m, m.setState(app.State(msg))

	case errMsg:
		m.err = msg.error
		return m, nil
	}

	switch m.state {
	case stateList:
		return m.updateList(msg)
	case stateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

// nextFilter advances a single-valued selection through options, wrapping
// back to All.
func nextFilter(current []string, options []string) []string {
	cur := filter.All
	if len(current) == 1 {
		cur = current[0]
	}
	i := slices.Index(options, cur)
	return []string{options[(i+1)%len(options)]}
}

func (m Model) setStatus(status model.Status) (tea.Model, tea.Cmd) {
	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}
	if !slices.Contains(lifecycle.Options(row.Task.Status, m.tracker.Store().Policy()), status) {
		m.err = fmt.Errorf("cannot move %q from %s to %s", row.Task.Name, row.Task.Status, status)
		return m, nil
	}
	st, err := m.tracker.SetStatus(m.app, row.Index, status)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.notice = fmt.Sprintf("%q → %s", row.Task.Name, status)
	return m, m.setState(st)
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Add):
			m.state = stateAdd
			m.err = nil
			m.notice = ""
			return m, m.form.Open(m.tracker.Now())
		case key.Matches(keyMsg, m.keys.Pending):
			return m.setStatus(model.StatusPending)
		case key.Matches(keyMsg, m.keys.InProgress):
			return m.setStatus(model.StatusInProgress)
		case key.Matches(keyMsg, m.keys.Complete):
			return m.setStatus(model.StatusCompleted)
		case key.Matches(keyMsg, m.keys.Category, m.keys.Priority, m.keys.Status):
			cats, pris, stats := filter.Options(m.app.Tasks)
			c := m.app.Criteria
			switch {
			case key.Matches(keyMsg, m.keys.Category):
				c.Categories = nextFilter(c.Categories, cats)
			case key.Matches(keyMsg, m.keys.Priority):
				c.Priorities = nextFilter(c.Priorities, pris)
			default:
				c.Statuses = nextFilter(c.Statuses, stats)
			}
			m.list.Select(0)
			return m, m.setState(m.app.WithFilter(c))
		case key.Matches(keyMsg, m.keys.ClearAll):
			m.list.Select(0)
			return m, m.setState(m.app.WithFilter(filter.None()))
		case key.Matches(keyMsg, m.keys.PrevPage):
			m.list.Select(0)
			return m, m.setState(m.app.PrevPage())
		case key.Matches(keyMsg, m.keys.NextPage):
			m.list.Select(0)
			return m, m.setState(m.app.NextPage())
		case key.Matches(keyMsg, m.keys.Reload):
			st, err := m.tracker.Reload(m.app)
			if err != nil {
				m.err = err
				return m, nil
			}
			return m, m.setState(st)
		case key.Matches(keyMsg, m.keys.Copy):
			if err := m.copy(report.Render(m.app, m.tracker.Now())); err != nil {
				m.err = fmt.Errorf("copy to clipboard: %w", err)
				return m, nil
			}
			m.notice = "Report copied to clipboard"
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.state = stateList
			m.err = nil
			return m, nil
		case "enter", "ctrl+s":
			if keyMsg.String() == "enter" && m.form.focus == fieldDescription {
				break
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	n, err := m.form.Submission(m.tracker.Now())
	if err != nil {
		m.err = err
		return m, nil
	}
	st, err := m.tracker.Submit(m.app, n)
	if errors.Is(err, app.ErrEmptyName) {
		m.err = errors.New("Task name is required!")
		return m, nil
	}
	if err != nil {
		m.err = err
		return m, nil
	}
	m.state = stateList
	m.err = nil
	m.notice = "Task added successfully!"
	cmd := m.setState(st.GoToPage(st.Pager.Total()))
	m.list.Select(len(m.list.Items()) - 1)
	return m, cmd
}

func describeSet(set []string) string {
	if len(set) == 0 || slices.Contains(set, filter.All) {
		return filter.All
	}
	return strings.Join(set, ",")
}

func (m Model) renderPager() string {
	p := m.app.Pager
	prev, next := "‹", "›"
	if !p.HasPrev() {
		prev = statusStyle.Render(prev)
	}
	if !p.HasNext() {
		next = statusStyle.Render(next)
	}
	total := max(p.Total(), 1)
	c := m.app.Criteria
	return fmt.Sprintf("%s Page %d of %d %s   %s",
		prev, p.Page, total, next,
		statusStyle.Render(fmt.Sprintf("category: %s · priority: %s · status: %s",
			describeSet(c.Categories), describeSet(c.Priorities), describeSet(c.Statuses))),
	)
}

func (m Model) renderDetail() string {
	row, ok := m.selectedRow()
	if !ok {
		return statusStyle.Render("No tasks. Press a to add one.")
	}
	t := row.Task
	now := m.tracker.Now()

	color := lipgloss.NewStyle().Foreground(priorityColor(t.Priority))
	descContent := statusStyle.Render("(no description)")
	if t.Description != "" {
		descContent = t.Description
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(t.Name),
		fmt.Sprintf("Category: %s | Priority: %s", t.Category, color.Render(string(t.Priority))),
		fmt.Sprintf("Due: %s | Created: %s (%s)",
			t.DueDate.Format(model.DateLayout), t.CreatedAt.Format("2006-01-02 15:04"), humanize.Time(t.CreatedAt)),
	}
	if t.ScheduledStart != nil {
		lines = append(lines, "Starts: "+t.ScheduledStart.Format("2006-01-02 15:04"))
	}
	switch t.Status {
	case model.StatusCompleted:
		if t.CompletedAt != nil {
			lines = append(lines,
				"✅ Completed at: "+t.CompletedAt.Format("2006-01-02 15:04"),
				fmt.Sprintf("⏱️ Time spent: %.1f min", t.TimeSpent))
		}
	case model.StatusInProgress:
		if t.StartedAt != nil {
			lines = append(lines,
				"🚀 Started at: "+t.StartedAt.Format("2006-01-02 15:04"),
				fmt.Sprintf("⏱️ Time elapsed: %.1f min", t.Elapsed(now)))
		}
	}
	var next []string
	for _, s := range lifecycle.Options(t.Status, m.tracker.Store().Policy()) {
		if s != t.Status {
			next = append(next, string(s))
		}
	}
	if len(next) > 0 {
		lines = append(lines, statusStyle.Render("Move to: "+strings.Join(next, ", ")))
	}
	lines = append(lines, descBoxStyle.Render(descContent))
	return strings.Join(lines, "\n")
}

func (m Model) footer() string {
	var s string
	if m.err != nil {
		s += "\n" + errorStyle.Render("Error: "+m.err.Error())
	}
	if m.notice != "" && m.err == nil {
		s += "\n" + noticeStyle.Render(m.notice)
	}
	return s
}

func (m Model) View() string {
	switch m.state {
	case stateAdd:
		return appStyle.Render(
			titleStyle.Render("Add New Task") + "\n\n" +
				m.form.View() + "\n\n" +
				statusStyle.Render("tab: next field • ←/→: choose • enter/ctrl+s: save • esc: cancel") +
				m.footer(),
		)
	default:
		h, _ := appStyle.GetFrameSize()
		contentWidth := m.width - h
		leftWidth := contentWidth * 55 / 100
		rightWidth := max(contentWidth-leftWidth, 0)

		leftPane := lipgloss.JoinVertical(lipgloss.Left, m.list.View(), m.renderPager())
		rightPane := detailStyle.
			Width(rightWidth).
			Render(m.renderDetail() + "\n\n" + renderStats(m.app.Summary(m.tracker.Now()), rightWidth-4))
		content := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
		return appStyle.Render(content + m.footer())
	}
}
