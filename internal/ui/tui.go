// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agenda/internal/agenda"
)

// Run starts the terminal UI over an initialized store.
func Run(ctx context.Context, st *agenda.Store) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(newModel(ctx, st), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type pane int

const (
	paneAgendas pane = iota
	paneTasks
)

type inputMode int

const (
	modeNone inputMode = iota
	modeAddTask
	modeEditTask
	modeNewAgenda
	modeRenameAgenda
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	focusedStyle  = paneStyle.BorderForeground(lipgloss.Color("63"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

type model struct {
	ctx context.Context
	st  *agenda.Store

	focus      pane
	taskCursor int
	mode       inputMode
	input      textinput.Model
	status     string
	showHelp   bool
}

func newModel(ctx context.Context, st *agenda.Store) *model {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Prompt = "> "
	return &model{
		ctx:   ctx,
		st:    st,
		focus: paneTasks,
		input: ti,
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode != modeNone {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode != modeNone {
		return m.updateInput(keyMsg)
	}
	return m.updateKey(keyMsg)
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?", "h":
		m.showHelp = !m.showHelp
	case "tab", "shift+tab":
		if m.focus == paneAgendas {
			m.focus = paneTasks
		} else {
			m.focus = paneAgendas
		}
	case "j", "down":
		m.move(1)
	case "k", "up":
		m.move(-1)
	case " ", "space", "x", "enter":
		if m.focus == paneAgendas {
			m.focus = paneTasks
			break
		}
		if task, ok := m.selectedTask(); ok {
			m.st.ToggleTask(m.ctx, task.ID)
			m.checkSaved()
		}
	case "a":
		return m, m.startInput(modeAddTask, "", "New task")
	case "e":
		if task, ok := m.selectedTask(); ok {
			return m, m.startInput(modeEditTask, task.Text, "Task text")
		}
	case "n":
		return m, m.startInput(modeNewAgenda, "", "Agenda name")
	case "r":
		if active, ok := m.st.Active(); ok {
			return m, m.startInput(modeRenameAgenda, active.Name, "Agenda name")
		}
	case "d":
		m.deleteSelected()
	}
	return m, nil
}

// move shifts the cursor of the focused pane. In the agendas pane the
// cursor is the active agenda itself.
func (m *model) move(delta int) {
	if m.focus == paneTasks {
		m.taskCursor += delta
		m.clampTaskCursor()
		return
	}
	agendas := m.st.Agendas()
	next := m.activeIndex() + delta
	if next < 0 || next >= len(agendas) {
		return
	}
	m.st.SetActive(m.ctx, agendas[next].ID)
	m.taskCursor = 0
	m.checkSaved()
}

func (m *model) deleteSelected() {
	if m.focus == paneTasks {
		if task, ok := m.selectedTask(); ok {
			m.st.DeleteTask(m.ctx, task.ID)
			m.clampTaskCursor()
			m.checkSaved()
		}
		return
	}
	if len(m.st.Agendas()) <= 1 {
		m.status = "cannot delete the only agenda"
		return
	}
	m.st.DeleteAgenda(m.ctx, m.st.ActiveID())
	m.taskCursor = 0
	m.checkSaved()
}

func (m *model) startInput(mode inputMode, value, placeholder string) tea.Cmd {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.endInput()
		return m, nil
	case "enter":
		m.commitInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) commitInput() {
	text := m.input.Value()
	var ok bool
	switch m.mode {
	case modeAddTask:
		_, ok = m.st.AddTask(m.ctx, text)
		if ok {
			if active, found := m.st.Active(); found {
				m.taskCursor = len(active.Tasks) - 1
			}
		}
	case modeEditTask:
		if task, found := m.selectedTask(); found {
			ok = m.st.EditTaskText(m.ctx, task.ID, text)
		}
	case modeNewAgenda:
		_, ok = m.st.CreateAgenda(m.ctx, text)
		if ok {
			m.taskCursor = 0
			m.focus = paneTasks
		}
	case modeRenameAgenda:
		ok = m.st.RenameAgenda(m.ctx, m.st.ActiveID(), text)
	}
	if !ok {
		// Keep the prompt open so the text can be corrected.
		m.status = "text required"
		return
	}
	m.endInput()
	m.checkSaved()
}

func (m *model) endInput() {
	m.mode = modeNone
	m.input.Blur()
	m.input.Reset()
}

// checkSaved waits for the change to be written and surfaces a failure;
// the change itself stays visible.
func (m *model) checkSaved() {
	if err := m.st.Flush(m.ctx); err != nil {
		m.status = "changes not saved: " + err.Error()
	}
}

func (m *model) activeIndex() int {
	id := m.st.ActiveID()
	for i, a := range m.st.Agendas() {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (m *model) selectedTask() (agenda.Task, bool) {
	active, ok := m.st.Active()
	if !ok || m.taskCursor < 0 || m.taskCursor >= len(active.Tasks) {
		return agenda.Task{}, false
	}
	return active.Tasks[m.taskCursor], true
}

func (m *model) clampTaskCursor() {
	active, _ := m.st.Active()
	if m.taskCursor >= len(active.Tasks) {
		m.taskCursor = len(active.Tasks) - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

func (m *model) View() string {
	var b strings.Builder
	completed, total := m.st.CompletionSummary()
	b.WriteString(titleStyle.Render("Agenda"))
	b.WriteString(fmt.Sprintf("  %d/%d completed\n\n", completed, total))

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	left, right := paneStyle, paneStyle
	if m.focus == paneAgendas {
		left = focusedStyle
	} else {
		right = focusedStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		left.Render(m.agendasView()),
		right.Render(m.tasksView()),
	))
	b.WriteString("\n")

	if m.mode != modeNone {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("? help | q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *model) agendasView() string {
	var lines []string
	activeID := m.st.ActiveID()
	for i, a := range m.st.Agendas() {
		label := " "
		if l := agenda.Letter(i); l != 0 {
			label = string(l)
		}
		c, t := a.Summary()
		line := fmt.Sprintf("%s  %s (%d/%d)", label, a.Name, c, t)
		if a.ID == activeID {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "no agendas"
	}
	return strings.Join(lines, "\n")
}

func (m *model) tasksView() string {
	active, ok := m.st.Active()
	if !ok {
		return "press n to create an agenda"
	}
	lines := []string{titleStyle.Render(active.Name), ""}
	if len(active.Tasks) == 0 {
		lines = append(lines, "no tasks")
	}
	for i, task := range active.Tasks {
		box := "[ ]"
		text := task.Text
		if task.Completed {
			box = "[x]"
			text = doneStyle.Render(text)
		}
		line := fmt.Sprintf("%2d %s %s", i+1, box, text)
		if m.focus == paneTasks && i == m.taskCursor {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  j/k, up/down   Move (in agendas: switch agenda)\n")
	b.WriteString("  tab            Switch pane\n")
	b.WriteString("  space, x       Toggle task\n")
	b.WriteString("  a              Add task\n")
	b.WriteString("  e              Edit task\n")
	b.WriteString("  d              Delete task or agenda\n")
	b.WriteString("  n              New agenda\n")
	b.WriteString("  r              Rename agenda\n")
	b.WriteString("  esc            Cancel input\n")
	b.WriteString("  ?, h           Toggle this help screen\n")
	b.WriteString("  q, ctrl+c      Quit\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
