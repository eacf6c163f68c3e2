// Package tui renders the comment panel in the terminal.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/evcraddock/villainapp/internal/comment"
	"github.com/evcraddock/villainapp/internal/panel"
)

type focus int

const (
	focusList focus = iota
	focusNewAuthor
	focusNewBody
	focusEditAuthor
	focusEditBody
)

// resultMsg carries a finished panel call back into the update loop.
type resultMsg struct {
	result panel.Result
}

// callCmd runs a panel call off the update loop.
func callCmd(call panel.Call) tea.Cmd {
	if call == nil {
		return nil
	}
	return func() tea.Msg {
		return resultMsg{result: call()}
	}
}

// Model is the bubbletea model for one villain's comment panel.
type Model struct {
	panel   *panel.Panel
	villain string
	loc     *time.Location

	focus  focus
	cursor int

	newAuthor  textinput.Model
	newBody    textarea.Model
	editAuthor textinput.Model
	editBody   textarea.Model
	spinner    spinner.Model

	width  int
	height int
}

// New creates the model. The panel is reset to villain; loading starts in Init.
func New(p *panel.Panel, villain string, loc *time.Location) *Model {
	if loc == nil {
		loc = time.Local
	}

	newAuthor := textinput.New()
	newAuthor.Placeholder = "Tu nombre"
	newAuthor.CharLimit = 80

	newBody := textarea.New()
	newBody.Placeholder = "Escribe tu comentario aquí"
	newBody.ShowLineNumbers = false
	newBody.SetHeight(3)

	editAuthor := textinput.New()
	editAuthor.CharLimit = 80

	editBody := textarea.New()
	editBody.ShowLineNumbers = false
	editBody.SetHeight(3)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	p.Reset(villain)

	return &Model{
		panel:      p,
		villain:    villain,
		loc:        loc,
		newAuthor:  newAuthor,
		newBody:    newBody,
		editAuthor: editAuthor,
		editBody:   editBody,
		spinner:    sp,
		width:      80,
	}
}

// Run starts the interactive panel and blocks until the user quits.
func Run(p *panel.Panel, villain string) error {
	_, err := tea.NewProgram(New(p, villain, time.Local), tea.WithAltScreen()).Run()
	return err
}

// Init starts the first load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(callCmd(m.panel.BeginLoad()), m.spinner.Tick)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w := max(m.width-6, 20)
		m.newBody.SetWidth(w)
		m.editBody.SetWidth(w)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		return m, m.applyResult(msg.result)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) applyResult(r panel.Result) tea.Cmd {
	next := m.panel.Apply(r)

	if m.panel.Draft() == (comment.Draft{}) {
		m.newAuthor.Reset()
		m.newBody.Reset()
	}
	if m.panel.EditingID() == "" && (m.focus == focusEditAuthor || m.focus == focusEditBody) {
		m.setFocus(focusList)
	}
	m.clampCursor()

	return callCmd(next)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.focus {
	case focusList:
		return m.handleListKey(msg)
	case focusNewAuthor, focusNewBody:
		return m.handleNewFormKey(msg)
	case focusEditAuthor, focusEditBody:
		return m.handleEditKey(msg)
	}
	return m, nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	comments := m.panel.Comments()

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(comments)-1 {
			m.cursor++
		}
	case "n", "tab":
		return m, m.setFocus(focusNewAuthor)
	case "r":
		return m, callCmd(m.panel.BeginLoad())
	case "e", "enter":
		if c := m.selected(); c != nil {
			m.panel.BeginEdit(c)
			d := m.panel.EditDraft()
			m.editAuthor.SetValue(d.Author)
			m.editBody.SetValue(d.Body)
			return m, m.setFocus(focusEditAuthor)
		}
	case "d", "x":
		if c := m.selected(); c != nil {
			return m, callCmd(m.panel.BeginDelete(c.ID))
		}
	}
	return m, nil
}

func (m *Model) handleNewFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.setFocus(focusList)
	case "tab", "shift+tab":
		if m.focus == focusNewAuthor {
			return m, m.setFocus(focusNewBody)
		}
		return m, m.setFocus(focusNewAuthor)
	case "ctrl+s":
		m.syncDraft()
		return m, callCmd(m.panel.BeginSubmit())
	}

	var cmd tea.Cmd
	if m.focus == focusNewAuthor {
		m.newAuthor, cmd = m.newAuthor.Update(msg)
	} else {
		m.newBody, cmd = m.newBody.Update(msg)
	}
	m.syncDraft()
	return m, cmd
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.panel.CancelEdit()
		return m, m.setFocus(focusList)
	case "tab", "shift+tab":
		if m.focus == focusEditAuthor {
			return m, m.setFocus(focusEditBody)
		}
		return m, m.setFocus(focusEditAuthor)
	case "ctrl+s":
		m.syncEditDraft()
		return m, callCmd(m.panel.BeginSaveEdit(m.panel.EditingID()))
	}

	var cmd tea.Cmd
	if m.focus == focusEditAuthor {
		m.editAuthor, cmd = m.editAuthor.Update(msg)
	} else {
		m.editBody, cmd = m.editBody.Update(msg)
	}
	m.syncEditDraft()
	return m, cmd
}

func (m *Model) syncDraft() {
	m.panel.SetDraft(comment.Draft{Author: m.newAuthor.Value(), Body: m.newBody.Value()})
}

func (m *Model) syncEditDraft() {
	m.panel.SetEditDraft(comment.Draft{Author: m.editAuthor.Value(), Body: m.editBody.Value()})
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.newAuthor.Blur()
	m.newBody.Blur()
	m.editAuthor.Blur()
	m.editBody.Blur()

	switch f {
	case focusNewAuthor:
		return m.newAuthor.Focus()
	case focusNewBody:
		return m.newBody.Focus()
	case focusEditAuthor:
		return m.editAuthor.Focus()
	case focusEditBody:
		return m.editBody.Focus()
	}
	return nil
}

func (m *Model) selected() *comment.Comment {
	comments := m.panel.Comments()
	if m.cursor < 0 || m.cursor >= len(comments) {
		return nil
	}
	return comments[m.cursor]
}

func (m *Model) clampCursor() {
	n := len(m.panel.Comments())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
