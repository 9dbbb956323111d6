package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/todo-tui/internal/storage"
	"github.com/pdxmph/todo-tui/internal/todo"
)

func newTestModel(t *testing.T) (Model, *todo.Store) {
	t.Helper()
	backend := storage.NewJSONFile(filepath.Join(t.TempDir(), "tasks.json"), nil)
	store, err := todo.NewStore(backend, nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	m := *New(store, nil)
	return send(m, tea.WindowSizeMsg{Width: 120, Height: 30}), store
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestAddThroughForm(t *testing.T) {
	m, store := newTestModel(t)

	m = send(m, key("a"))
	if m.mode != modeForm || m.editingID != "" {
		t.Fatalf("after a: mode=%v editingID=%q", m.mode, m.editingID)
	}
	if got := m.inputs[FieldDueDate].Value(); got != todo.Today() {
		t.Errorf("due date prefill = %q, want today %q", got, todo.Today())
	}

	m = typeText(m, "Buy milk")
	m = send(m, key("tab"), key("right"), key("right"), key("tab"))
	if m.field != FieldDueDate {
		t.Fatalf("field = %d, want due date", m.field)
	}
	m.inputs[FieldDueDate].SetValue("2025-03-01")
	m = send(m, key("enter"))

	tasks := store.List()
	if len(tasks) != 1 {
		t.Fatalf("store has %d tasks, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Description != "Buy milk" || got.Priority != todo.PriorityHigh || got.DueDate != "2025-03-01" || got.Completed {
		t.Errorf("task = %+v", got)
	}

	if m.mode != modeList {
		t.Errorf("mode = %v after submit, want list", m.mode)
	}
	if m.inputs[FieldDescription].Value() != "" || m.priority != todo.PriorityLow || m.inputs[FieldDueDate].Value() != todo.Today() {
		t.Errorf("form not reset: desc=%q prio=%s due=%q",
			m.inputs[FieldDescription].Value(), m.priority, m.inputs[FieldDueDate].Value())
	}
	if len(m.tasks) != 1 || m.selected != 0 {
		t.Errorf("list not refreshed: %d tasks, selected %d", len(m.tasks), m.selected)
	}
}

func TestAddValidationKeepsInput(t *testing.T) {
	m, store := newTestModel(t)

	m = send(m, key("a"))
	m = typeText(m, "Task")
	m = send(m, key("shift+tab"))
	if m.field != FieldDueDate {
		t.Fatalf("shift+tab from description: field = %d, want due date", m.field)
	}
	m.inputs[FieldDueDate].SetValue("2025-13-40")
	m = send(m, key("enter"))

	if store.Len() != 0 {
		t.Errorf("store has %d tasks after invalid date", store.Len())
	}
	if m.mode != modeForm {
		t.Errorf("mode = %v, want form to stay open", m.mode)
	}
	if !m.statusErr || m.status != "Invalid due date (YYYY-MM-DD)." {
		t.Errorf("status = %q (err=%v)", m.status, m.statusErr)
	}
	if m.inputs[FieldDescription].Value() != "Task" || m.inputs[FieldDueDate].Value() != "2025-13-40" {
		t.Errorf("input not retained: %q %q", m.inputs[FieldDescription].Value(), m.inputs[FieldDueDate].Value())
	}

	m = send(m, key("esc"))
	if m.mode != modeList || m.status != "" {
		t.Errorf("after esc: mode=%v status=%q", m.mode, m.status)
	}
}

func TestAddEmptyDescription(t *testing.T) {
	m, store := newTestModel(t)

	m = send(m, key("a"), key("enter"))
	if store.Len() != 0 {
		t.Errorf("store has %d tasks", store.Len())
	}
	if m.status != "Task description is required." {
		t.Errorf("status = %q", m.status)
	}
}

func TestActionsWithoutSelection(t *testing.T) {
	m, _ := newTestModel(t)

	tests := []struct {
		key  string
		want string
	}{
		{key: "e", want: "Select a task to edit."},
		{key: "c", want: "Select a task to mark as completed."},
		{key: "d", want: "Select a task to delete."},
	}
	for _, tt := range tests {
		m = send(m, key(tt.key))
		if m.mode != modeList {
			t.Errorf("%s: mode = %v, want list", tt.key, m.mode)
		}
		if !m.statusErr || m.status != tt.want {
			t.Errorf("%s: status = %q, want %q", tt.key, m.status, tt.want)
		}
	}
}

func TestCompleteAndDelete(t *testing.T) {
	m, store := newTestModel(t)
	for _, d := range []string{"first", "second"} {
		if _, err := store.Add(d, todo.PriorityLow, "2025-01-01"); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	m = send(*New(store, nil), tea.WindowSizeMsg{Width: 120, Height: 30})

	m = send(m, key("j"), key("c"))
	if !store.List()[1].Completed {
		t.Error("second task not completed")
	}
	if m.selected != 1 || !m.tasks[1].Completed {
		t.Errorf("model not refreshed: selected=%d tasks=%+v", m.selected, m.tasks)
	}

	m = send(m, key("d"))
	if m.mode != modeConfirmDelete {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	if !strings.Contains(m.View(), "Delete task 'second'?") {
		t.Errorf("confirmation view missing prompt:\n%s", m.View())
	}
	m = send(m, key("n"))
	if m.mode != modeList || store.Len() != 2 {
		t.Errorf("cancel: mode=%v len=%d", m.mode, store.Len())
	}

	m = send(m, key("d"), key("y"))
	if store.Len() != 1 || store.List()[0].Description != "first" {
		t.Errorf("after delete: %+v", store.List())
	}
	if m.selected != 0 {
		t.Errorf("selection = %d after deleting last row, want 0", m.selected)
	}
}

func TestEditPreservesCompleted(t *testing.T) {
	m, store := newTestModel(t)
	if _, err := store.Add("Buy milk", todo.PriorityHigh, "2025-03-01"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.MarkComplete(0); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	m = *New(store, nil)
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 30})

	m = send(m, key("e"))
	if m.mode != modeForm || m.editingID == "" {
		t.Fatalf("edit not started: mode=%v", m.mode)
	}
	if m.inputs[FieldDescription].Value() != "Buy milk" || m.priority != todo.PriorityHigh {
		t.Errorf("form not prefilled: %q %s", m.inputs[FieldDescription].Value(), m.priority)
	}

	m = typeText(m, " and eggs")
	m = send(m, key("tab"), key("left"), key("enter"))

	got := store.List()[0]
	if got.Description != "Buy milk and eggs" || got.Priority != todo.PriorityMedium || !got.Completed {
		t.Errorf("task after edit = %+v", got)
	}
	if m.mode != modeList || m.status != "Task updated." {
		t.Errorf("mode=%v status=%q", m.mode, m.status)
	}
}

func TestStaleSelection(t *testing.T) {
	m, store := newTestModel(t)
	if _, err := store.Add("gone", todo.PriorityLow, "2025-01-01"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	m = *New(store, nil)

	// Remove the task behind the model's back.
	if err := store.Delete(0); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	m = send(m, key("c"))
	if m.status != "Select a task to mark as completed." {
		t.Errorf("status = %q", m.status)
	}
}

func TestViewAndQuit(t *testing.T) {
	m, store := newTestModel(t)
	if !strings.Contains(m.View(), "No tasks yet") {
		t.Errorf("empty view:\n%s", m.View())
	}

	if _, err := store.Add("Buy milk", todo.PriorityHigh, "2025-03-01"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	m = send(*New(store, nil), tea.WindowSizeMsg{Width: 120, Height: 30})
	view := m.View()
	for _, want := range []string{"Tasks (1, 1 pending)", "Buy milk", "Due Date (YYYY-MM-DD):"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestLoadingView(t *testing.T) {
	backend := storage.NewJSONFile(filepath.Join(t.TempDir(), "tasks.json"), nil)
	store, err := todo.NewStore(backend, nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if got := New(store, nil).View(); got != "Loading..." {
		t.Errorf("View before size = %q", got)
	}
}
