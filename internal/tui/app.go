package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdxmph/todo-tui/internal/todo"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
)

// Form field indices
const (
	FieldDescription = iota
	FieldPriority
	FieldDueDate
	FieldCount // Total number of fields
)

// Model represents the main application state
type Model struct {
	store    *todo.Store
	logger   *log.Logger
	tasks    []todo.Task
	selected int
	width    int
	height   int
	mode     mode

	// Form state. editingID is empty when adding.
	field     int
	inputs    []textinput.Model
	priority  todo.Priority
	editingID string

	// Delete confirmation
	deleteID string

	status    string
	statusErr bool
}

// Styles
var (
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	focusedBorderStyle = borderStyle.
				BorderForeground(lipgloss.Color("63"))

	priorityStyles = map[todo.Priority]lipgloss.Style{
		todo.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		todo.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		todo.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// New creates a new application model
func New(store *todo.Store, logger *log.Logger) *Model {
	inputs := make([]textinput.Model, FieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].CharLimit = 200
		inputs[i].Prompt = "> "
		inputs[i].PromptStyle = labelStyle
	}
	inputs[FieldDescription].Placeholder = "What needs doing?"
	inputs[FieldDueDate].Placeholder = "YYYY-MM-DD"
	inputs[FieldDueDate].CharLimit = len(todo.DateLayout)

	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		store:  store,
		logger: logger,
		tasks:  store.List(),
		inputs: inputs,
	}
	m.resetForm()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.width > 0 {
			formWidth := m.width - m.width/2 - 4
			for i := range m.inputs {
				m.inputs[i].Width = formWidth - 6
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeForm:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.selected < len(m.tasks)-1 {
			m.selected++
		}

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}

	case "g", "home":
		m.selected = 0

	case "G", "end":
		if len(m.tasks) > 0 {
			m.selected = len(m.tasks) - 1
		}

	case "a":
		m.resetForm()
		m.editingID = ""
		return m.enterForm()

	case "e":
		id := m.selectedID()
		pos, err := m.store.Position(id)
		if err != nil {
			m.setError("edit", err)
			return m, nil
		}
		task := m.store.List()[pos]
		m.editingID = id
		m.inputs[FieldDescription].SetValue(task.Description)
		m.inputs[FieldDueDate].SetValue(task.DueDate)
		m.priority = task.Priority
		return m.enterForm()

	case "c", " ":
		id := m.selectedID()
		if err := m.store.MarkCompleteByID(id); err != nil {
			m.setError("mark as completed", err)
			return m, nil
		}
		m.reload(id)
		m.setStatus("Task completed.")

	case "d", "x":
		id := m.selectedID()
		if _, err := m.store.Position(id); err != nil {
			m.setError("delete", err)
			return m, nil
		}
		m.deleteID = id
		m.mode = modeConfirmDelete
	}

	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.deleteID
	m.deleteID = ""
	m.mode = modeList

	switch msg.String() {
	case "y", "Y":
		if err := m.store.DeleteByID(id); err != nil {
			m.setError("delete", err)
			return m, nil
		}
		m.reload("")
		m.setStatus("Task deleted.")
	default:
		// Any other key cancels
		m.clearStatus()
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveForm()
		m.resetForm()
		m.clearStatus()
		return m, nil

	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		return m.submit()

	case "tab", "down":
		return m.focusField((m.field + 1) % FieldCount)

	case "shift+tab", "up":
		return m.focusField((m.field + FieldCount - 1) % FieldCount)
	}

	if m.field == FieldPriority {
		switch msg.String() {
		case "right", "l", " ":
			m.priority = m.priority.Next()
		case "left", "h":
			m.priority = m.priority.Prev()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	return m, cmd
}

// submit sends the form to the store. On failure the form stays open with
// the input intact.
func (m Model) submit() (tea.Model, tea.Cmd) {
	desc := m.inputs[FieldDescription].Value()
	due := m.inputs[FieldDueDate].Value()

	if m.editingID == "" {
		pos, err := m.store.Add(desc, m.priority, due)
		if err != nil {
			m.setError("add", err)
			return m, nil
		}
		m.reload("")
		m.selected = pos
		m.setStatus("Task added.")
	} else {
		id := m.editingID
		if err := m.store.UpdateByID(id, desc, m.priority, due); err != nil {
			m.setError("edit", err)
			return m, nil
		}
		m.reload(id)
		m.setStatus("Task updated.")
	}

	m.leaveForm()
	m.resetForm()
	return m, nil
}

func (m Model) enterForm() (tea.Model, tea.Cmd) {
	m.mode = modeForm
	m.clearStatus()
	return m.focusField(FieldDescription)
}

func (m *Model) leaveForm() {
	m.mode = modeList
	m.editingID = ""
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m Model) focusField(field int) (tea.Model, tea.Cmd) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.field = field
	if field == FieldPriority {
		return m, nil
	}
	cmd := m.inputs[field].Focus()
	return m, tea.Batch(cmd, textinput.Blink)
}

// resetForm clears the form: no description, Low priority, due today.
func (m *Model) resetForm() {
	m.inputs[FieldDescription].Reset()
	m.inputs[FieldDueDate].Reset()
	m.inputs[FieldDueDate].SetValue(todo.Today())
	m.priority = todo.DefaultPriority
	m.field = FieldDescription
}

// reload re-reads the list from the store. If id is set the selection
// follows that task; otherwise it is clamped to the list.
func (m *Model) reload(id string) {
	m.tasks = m.store.List()
	if id != "" {
		if pos, err := m.store.Position(id); err == nil {
			m.selected = pos
			return
		}
	}
	m.selected = m.ensureValidSelection()
}

// selectedID returns the ID under the cursor, or "" when the list is empty.
func (m Model) selectedID() string {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return ""
	}
	return m.tasks[m.selected].ID
}

// ensureValidSelection ensures the current selection is within bounds
func (m Model) ensureValidSelection() int {
	if len(m.tasks) == 0 {
		return 0
	}
	if m.selected >= len(m.tasks) {
		return len(m.tasks) - 1
	}
	if m.selected < 0 {
		return 0
	}
	return m.selected
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m *Model) setError(action string, err error) {
	m.status = errorMessage(action, err)
	m.statusErr = true
	m.logger.Warn("action failed", "action", action, "err", err)
}

// errorMessage turns a store error into the text shown to the user.
func errorMessage(action string, err error) string {
	var ve *todo.ValidationError
	var nf *todo.NotFoundError

	switch {
	case errors.Is(err, todo.ErrEmptyDescription):
		return "Task description is required."
	case errors.Is(err, todo.ErrInvalidDueDate):
		return "Invalid due date (YYYY-MM-DD)."
	case errors.As(err, &ve):
		return ve.Err.Error()
	case errors.As(err, &nf):
		return fmt.Sprintf("Select a task to %s.", action)
	default:
		return fmt.Sprintf("Could not save changes: %v", err)
	}
}
