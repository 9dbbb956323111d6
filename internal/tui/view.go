package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdxmph/todo-tui/internal/todo"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Calculate pane widths
	listWidth := m.width / 2
	formWidth := m.width - listWidth - 4 // account for borders
	paneHeight := m.height - 4

	listBorder, formBorder := focusedBorderStyle, borderStyle
	if m.mode == modeForm {
		listBorder, formBorder = borderStyle, focusedBorderStyle
	}

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		listBorder.Width(listWidth).Height(paneHeight).Render(m.renderList(listWidth, paneHeight)),
		formBorder.Width(formWidth).Height(paneHeight).Render(m.renderForm(formWidth)),
	)

	if m.mode == modeConfirmDelete {
		return m.renderDeleteConfirmation()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatus(), m.renderHelp())
}

// renderList renders the task list
func (m Model) renderList(width, height int) string {
	var lines []string

	pending := 0
	for _, t := range m.tasks {
		if !t.Completed {
			pending++
		}
	}
	lines = append(lines, fmt.Sprintf("Tasks (%d, %d pending)", len(m.tasks), pending))
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))

	if len(m.tasks) == 0 {
		lines = append(lines, labelStyle.Render("No tasks yet. Press a to add one."))
		return strings.Join(lines, "\n")
	}

	// Calculate visible range
	visibleHeight := height - 2 // account for header
	startIdx := 0
	if m.selected >= visibleHeight {
		startIdx = m.selected - visibleHeight + 1
	}

	now := time.Now()
	for i := startIdx; i < len(m.tasks) && i < startIdx+visibleHeight; i++ {
		t := m.tasks[i]

		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		desc := t.Description
		due := t.DueDate

		if i == m.selected {
			line := fmt.Sprintf("%s %s  %s  %s", check, desc, t.Priority, due)
			lines = append(lines, selectedStyle.Render(line))
			continue
		}

		if t.Completed {
			desc = doneStyle.Render(desc)
		}
		if t.IsOverdue(now) {
			due = overdueStyle.Render(due)
		}
		prio := priorityStyles[t.Priority].Render(t.Priority.String())
		lines = append(lines, fmt.Sprintf("%s %s  %s  %s", check, desc, prio, due))
	}

	return strings.Join(lines, "\n")
}

// renderForm renders the task entry form
func (m Model) renderForm(width int) string {
	var lines []string

	title := "New task"
	if m.mode == modeForm && m.editingID != "" {
		title = "Edit task"
	}
	lines = append(lines, title)
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))
	lines = append(lines, "")

	lines = append(lines, "Task:")
	lines = append(lines, m.fieldView(FieldDescription))
	lines = append(lines, "")

	lines = append(lines, "Priority:")
	var opts []string
	for _, p := range todo.Priorities {
		name := p.String()
		switch {
		case p == m.priority && m.mode == modeForm && m.field == FieldPriority:
			opts = append(opts, selectedStyle.Render("< "+name+" >"))
		case p == m.priority:
			opts = append(opts, priorityStyles[p].Render("["+name+"]"))
		default:
			opts = append(opts, labelStyle.Render(" "+name+" "))
		}
	}
	lines = append(lines, "  "+strings.Join(opts, " "))
	lines = append(lines, "")

	lines = append(lines, "Due Date (YYYY-MM-DD):")
	lines = append(lines, m.fieldView(FieldDueDate))

	return strings.Join(lines, "\n")
}

func (m Model) fieldView(field int) string {
	if m.mode == modeForm && m.field == field {
		return m.inputs[field].View()
	}
	value := m.inputs[field].Value()
	if value == "" {
		value = labelStyle.Render(m.inputs[field].Placeholder)
	}
	return "  " + value
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return " " + errorStyle.Render("Error: "+m.status)
	}
	return " " + okStyle.Render(m.status)
}

// renderHelp renders the help line
func (m Model) renderHelp() string {
	switch m.mode {
	case modeForm:
		return " Tab/↓: next • Shift+Tab/↑: prev • ←/→: priority • Enter: save • Esc: cancel"
	case modeConfirmDelete:
		return " y: confirm delete • any other key: cancel"
	}
	return " j/k: navigate • a: add • e: edit • c: complete • d: delete • q: quit"
}

// renderDeleteConfirmation renders the delete confirmation prompt
func (m Model) renderDeleteConfirmation() string {
	var desc string
	for _, t := range m.tasks {
		if t.ID == m.deleteID {
			desc = t.Description
			break
		}
	}

	width := 60
	height := 7

	prompt := fmt.Sprintf("Delete task '%s'? (y/n)", desc)

	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-4).
		Align(lipgloss.Center, lipgloss.Center).
		Render(prompt)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(width).
		Height(height).
		Render(content)

	// Center on screen
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}
