package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/userdeck/internal/formatter"
	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/roster"
	"github.com/desertthunder/userdeck/internal/schedule"
	"github.com/desertthunder/userdeck/internal/shared"
)

// Focus represents the zone receiving key presses.
type Focus int

const (
	NameFocus Focus = iota
	EmailFocus
	SearchFocus
	TableFocus
)

const focusCount = 4

// Options configures a [Model].
type Options struct {
	Context      context.Context
	Orchestrator *roster.Orchestrator
	Logger       *log.Logger
	Title        string
	Palette      *Palette
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	orch    *roster.Orchestrator
	logger  *log.Logger
	title   string
	palette *Palette

	snap     models.Snapshot
	focus    Focus
	name     textinput.Model
	email    textinput.Model
	search   textinput.Model
	table    table.Model
	spinner  spinner.Model
	spinning bool
	width    int
	height   int
	help     help.Model
	keys     keyMap

	tick func(schedule.Timer) tea.Cmd
}

// NewModel creates a new TUI model driving the given orchestrator.
func NewModel(opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	if opts.Orchestrator == nil {
		opts.Orchestrator = roster.New(roster.Options{Context: opts.Context, Logger: opts.Logger})
	}
	if opts.Palette == nil {
		opts.Palette = styles
	}
	if opts.Title == "" {
		opts.Title = "User Management"
	}

	m := &Model{
		ctx:     opts.Context,
		orch:    opts.Orchestrator,
		logger:  opts.Logger,
		title:   opts.Title,
		palette: opts.Palette,
		name:    newInput("Name", "Jane Doe"),
		email:   newInput("Email", "jane@example.com"),
		search:  newInput("Search", "name or email"),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    newKeyMap(),
		tick:    tickTimer,
	}
	m.spinner.Style = m.palette.info
	m.table = table.New(
		table.WithColumns(recordColumns(0)),
		table.WithHeight(10),
	)
	m.name.Focus()
	m.sync()
	return m
}

func newInput(prompt, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt + ": "
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	return ti
}

// Run starts the terminal program and blocks until the user quits.
func Run(opts Options) error {
	m := NewModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Snapshot returns the state last rendered.
func (m *Model) Snapshot() models.Snapshot { return m.snap }

// Focused returns the zone receiving key presses.
func (m *Model) Focused() Focus { return m.focus }

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(recordColumns(msg.Width))
		if h := msg.Height - 18; h > 3 {
			m.table.SetHeight(h)
		}
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		switch msg.kind {
		case MsgTimerFired:
			t := msg.data.(schedule.Timer)
			return m, m.apply(m.orch.Fire(t))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.snap.Pending {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.prev):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.dismiss):
		return m, m.apply(m.orch.DismissNotification())
	case key.Matches(msg, m.keys.cancel):
		if m.snap.ConfirmingDelete != "" {
			return m, m.apply(m.orch.CancelDelete())
		}
		if m.snap.Session.IsEditing() {
			cmd := m.apply(m.orch.CancelEdit())
			return m, tea.Batch(cmd, m.setFocus(NameFocus))
		}
		return m, nil
	}

	if m.focus == TableFocus {
		return m.handleTableKeys(msg)
	}
	return m.handleInputKeys(msg)
}

func (m *Model) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pos := m.table.Cursor()
	switch {
	case key.Matches(msg, m.keys.exit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.edit):
		cmd := m.apply(m.orch.BeginEdit(pos))
		if m.snap.Session.IsEditing() {
			return m, tea.Batch(cmd, m.setFocus(NameFocus))
		}
		return m, cmd
	case key.Matches(msg, m.keys.remove):
		return m, m.apply(m.orch.RequestDelete(pos))
	case key.Matches(msg, m.keys.yes):
		return m, m.apply(m.orch.ConfirmDelete(pos))
	case key.Matches(msg, m.keys.no):
		return m, m.apply(m.orch.CancelDelete())
	case key.Matches(msg, m.keys.search):
		return m, m.setFocus(SearchFocus)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.submit) {
		if m.focus == SearchFocus {
			return m, m.setFocus(TableFocus)
		}
		return m, m.apply(m.orch.Submit())
	}

	input := m.input(m.focus)
	before := input.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	after := input.Value()
	if before == after {
		return m, cmd
	}

	var timers []schedule.Timer
	switch m.focus {
	case NameFocus:
		timers = m.orch.ChangeField(models.FieldName, after)
	case EmailFocus:
		timers = m.orch.ChangeField(models.FieldEmail, after)
	case SearchFocus:
		timers = m.orch.ChangeSearch(after)
	}
	return m, tea.Batch(cmd, m.apply(timers))
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == TableFocus {
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	input := m.input(m.focus)
	*input, cmd = input.Update(msg)
	return m, cmd
}

func (m *Model) input(f Focus) *textinput.Model {
	switch f {
	case EmailFocus:
		return &m.email
	case SearchFocus:
		return &m.search
	default:
		return &m.name
	}
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.email.Blur()
	m.search.Blur()
	m.table.Blur()

	if f == TableFocus {
		m.table.Focus()
		return nil
	}
	return m.input(f).Focus()
}

// apply refreshes the view from the orchestrator and schedules the returned timers.
func (m *Model) apply(timers []schedule.Timer) tea.Cmd {
	m.sync()

	cmds := make([]tea.Cmd, 0, len(timers)+1)
	for _, t := range timers {
		m.logger.Debug("scheduling timer", "kind", t.Kind, "delay", t.Delay)
		cmds = append(cmds, m.tick(t))
	}
	if m.snap.Pending && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// sync copies the orchestrator snapshot into the widgets.
func (m *Model) sync() {
	m.snap = m.orch.Snapshot()

	setValue(&m.name, m.snap.Form.Name)
	setValue(&m.email, m.snap.Form.Email)
	setValue(&m.search, m.snap.Query)
	rows := recordRows(m.snap)
	m.table.SetRows(rows)
	if c := m.table.Cursor(); len(rows) > 0 && (c < 0 || c >= len(rows)) {
		m.table.SetCursor(min(max(c, 0), len(rows)-1))
	}
}

func setValue(ti *textinput.Model, v string) {
	if ti.Value() != v {
		ti.SetValue(v)
	}
}

// View renders the form, the notification banner and the records table.
func (m *Model) View() string {
	p := m.palette
	var b strings.Builder

	b.WriteString(p.title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(p.muted.Render(formatter.TotalLabel(m.snap) + " • " + formatter.ShowingLabel(m.snap)))
	b.WriteString("\n\n")

	if n := m.snap.Notification; n != nil {
		b.WriteString(p.Notice(n.Kind).Render(n.Message))
		b.WriteString(" ")
		b.WriteString(p.muted.Render("(ctrl+x to dismiss)"))
		b.WriteString("\n\n")
	}

	formTitle := "Add New User"
	if m.snap.Session.IsEditing() {
		formTitle = "Edit User"
	}
	b.WriteString(p.label.Render(formTitle))
	b.WriteString("\n")
	b.WriteString(m.renderField(&m.name, models.FieldName))
	b.WriteString(m.renderField(&m.email, models.FieldEmail))

	if m.snap.Pending {
		b.WriteString(m.spinner.View() + " " + p.info.Render("Saving..."))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	if empty := formatter.EmptyState(m.snap); empty != "" {
		b.WriteString(p.muted.Render(empty))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n\n")

	b.WriteString(m.help.ShortHelpView(m.helpKeys()))
	return b.String()
}

func (m *Model) renderField(ti *textinput.Model, f models.Field) string {
	line := ti.View() + "\n"
	if msg, ok := m.snap.Errors[f]; ok {
		line += m.palette.err.Render("  "+msg) + "\n"
	}
	return line
}

func (m *Model) helpKeys() []key.Binding {
	switch {
	case m.snap.ConfirmingDelete != "":
		return []key.Binding{m.keys.yes, m.keys.no, m.keys.cancel}
	case m.focus == TableFocus:
		return []key.Binding{m.keys.up, m.keys.down, m.keys.edit, m.keys.remove, m.keys.search, m.keys.next, m.keys.exit}
	case m.snap.Session.IsEditing():
		return []key.Binding{m.keys.next, m.keys.submit, m.keys.cancel, m.keys.quit}
	default:
		return []key.Binding{m.keys.next, m.keys.submit, m.keys.dismiss, m.keys.quit}
	}
}
