package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"agenda/internal/agenda"
	"agenda/internal/commands"
	"agenda/internal/config"
	"agenda/internal/exitcode"
	"agenda/internal/storage"
	"agenda/internal/testutil"
)

// fixture returns a store holding two agendas with Groceries active.
func fixture(t *testing.T) (*agenda.Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	testutil.Seed(t, mem, []agenda.Agenda{
		{ID: "g", Name: "Groceries", Tasks: []agenda.Task{
			{ID: "t1", Text: "Milk", Completed: true},
			{ID: "t2", Text: "Eggs"},
		}},
		{ID: "w", Name: "Work", Tasks: []agenda.Task{
			{ID: "t3", Text: "Report"},
		}},
	}, "g")
	return testutil.NewStore(t, mem), mem
}

// runCommand is a helper to run a command against st.
func runCommand(t *testing.T, cmd commands.Command, st *agenda.Store, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, st, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func taskTexts(a agenda.Agenda) []string {
	var texts []string
	for _, task := range a.Tasks {
		texts = append(texts, task.Text)
	}
	return texts
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "agenda 0.1.0\n", stdout)
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Usage:")
	for _, name := range []string{"add", "toggle", "rmagenda", "export", "tui"} {
		assert.Contains(t, stdout, "agenda "+name)
	}
}

func TestRegistry_AliasesResolve(t *testing.T) {
	tests := map[string]string{
		"ls":        "list",
		"create":    "add",
		"done":      "toggle",
		"delete":    "rm",
		"addagenda": "new",
		"switch":    "use",
	}
	for alias, name := range tests {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		require.True(t, ok, "alias %s", alias)
		assert.Equal(t, name, cmd.Name())
	}
	_, ok := commands.DefaultRegistry.Find("rmlist")
	assert.False(t, ok)
}

// Tests for list command
func TestListCommand_Active(t *testing.T) {
	st, _ := fixture(t)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, st, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	testutil.GoldenString(t, "list", stdout)
}

func TestListCommand_NamedAgendaKeepsSelection(t *testing.T) {
	st, _ := fixture(t)

	stdout, _, code := runCommand(t, &commands.ListCmd{}, st, []string{"work"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "------------\nWork (0/1)\n------------\n   1  [ ] Report\n", stdout)
	assert.Equal(t, "g", st.ActiveID())
}

func TestListCommand_Empty(t *testing.T) {
	st := testutil.NewStore(t, storage.NewMemory())

	stdout, _, _ := runCommand(t, &commands.ListCmd{}, st, nil, false)
	assert.Contains(t, stdout, "My First Agenda (0/0)")
	assert.True(t, strings.HasSuffix(stdout, "no tasks\n"))

	stdout, _, _ = runCommand(t, &commands.ListCmd{}, st, nil, true)
	assert.NotContains(t, stdout, "no tasks")
}

func TestListCommand_UnknownAgenda(t *testing.T) {
	st, _ := fixture(t)

	_, stderr, code := runCommand(t, &commands.ListCmd{}, st, []string{"Nope"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: agenda not found: Nope\n", stderr)
}

// Tests for agendas command
func TestAgendasCommand(t *testing.T) {
	st, _ := fixture(t)

	stdout, stderr, code := runCommand(t, &commands.AgendasCmd{}, st, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	testutil.GoldenString(t, "agendas", stdout)
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	st, mem := fixture(t)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, st, []string{"Buy", "bread"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)

	active, _ := testutil.Reload(t, mem).Active()
	assert.Equal(t, []string{"Milk", "Eggs", "Buy bread"}, taskTexts(active))
}

func TestAddCommand_Quiet(t *testing.T) {
	st, _ := fixture(t)

	stdout, _, code := runCommand(t, &commands.AddCmd{}, st, []string{"Bread"}, true)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
}

func TestAddCommand_BlankText(t *testing.T) {
	st, _ := fixture(t)

	for _, args := range [][]string{nil, {"   "}} {
		_, stderr, code := runCommand(t, &commands.AddCmd{}, st, args, false)
		assert.Equal(t, exitcode.UserError, code)
		assert.Equal(t, "error: text required\n", stderr)
	}
	_, total := st.CompletionSummary()
	assert.Equal(t, 2, total)
}

// Tests for toggle command
func TestToggleCommand(t *testing.T) {
	st, _ := fixture(t)

	stdout, _, code := runCommand(t, &commands.ToggleCmd{}, st, []string{"2"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok: done\n", stdout)

	stdout, _, code = runCommand(t, &commands.ToggleCmd{}, st, []string{"1"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok: reopened\n", stdout)

	completed, total := st.CompletionSummary()
	assert.Equal(t, 1, completed)
	assert.Equal(t, 2, total)
}

func TestToggleCommand_LetterSelectsAgenda(t *testing.T) {
	st, _ := fixture(t)

	stdout, stderr, code := runCommand(t, &commands.ToggleCmd{}, st, []string{"b1"}, false)

	assert.Equal(t, exitcode.Success, code, stderr)
	assert.Equal(t, "ok: done\n", stdout)
	assert.Equal(t, "w", st.ActiveID())
	completed, total := st.CompletionSummary()
	assert.Equal(t, 1, completed)
	assert.Equal(t, 1, total)
}

func TestToggleCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"missing ref", nil, "error: task reference required\n"},
		{"out of range", []string{"3"}, "error: task number out of range: 3\n"},
		{"zero", []string{"0"}, "error: task number out of range: 0\n"},
		{"unknown letter", []string{"c1"}, "error: agenda letter not found: c\n"},
		{"invalid", []string{"x"}, "error: invalid task reference: x\n"},
		{"extra arg", []string{"1", "2"}, "error: unexpected argument: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := fixture(t)
			_, stderr, code := runCommand(t, &commands.ToggleCmd{}, st, tt.args, false)
			assert.Equal(t, exitcode.UserError, code)
			assert.Equal(t, tt.stderr, stderr)
			assert.Equal(t, "g", st.ActiveID())
		})
	}
}

func TestTaskCommands_UnresolvedLetterRefKeepsSelection(t *testing.T) {
	tests := []struct {
		name string
		cmd  commands.Command
		args []string
	}{
		{"toggle", &commands.ToggleCmd{}, []string{"b99"}},
		{"edit", &commands.EditCmd{}, []string{"b2", "text"}},
		{"rm", &commands.RmCmd{}, []string{"b0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, mem := fixture(t)

			_, stderr, code := runCommand(t, tt.cmd, st, tt.args, false)

			assert.Equal(t, exitcode.UserError, code)
			assert.Contains(t, stderr, "error: task number out of range:")
			assert.Equal(t, "g", st.ActiveID())
			saved, ok := mem.Get(agenda.ActiveKey)
			require.True(t, ok)
			assert.Equal(t, "g", agenda.DecodeActive(saved))
			assert.Equal(t, "g", testutil.Reload(t, mem).ActiveID())
		})
	}
}

// Tests for edit command
func TestEditCommand(t *testing.T) {
	st, mem := fixture(t)

	stdout, stderr, code := runCommand(t, &commands.EditCmd{}, st, []string{"2", "Free-range", "eggs"}, false)

	assert.Equal(t, exitcode.Success, code, stderr)
	assert.Equal(t, "ok\n", stdout)
	active, _ := testutil.Reload(t, mem).Active()
	assert.Equal(t, []string{"Milk", "Free-range eggs"}, taskTexts(active))
	assert.True(t, active.Tasks[0].Completed)
}

func TestEditCommand_BlankTextKeepsTask(t *testing.T) {
	st, _ := fixture(t)

	_, stderr, code := runCommand(t, &commands.EditCmd{}, st, []string{"1", " "}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: text required\n", stderr)
	active, _ := st.Active()
	assert.Equal(t, "Milk", active.Tasks[0].Text)
}

// Tests for rm command
func TestRmCommand(t *testing.T) {
	st, mem := fixture(t)

	stdout, _, code := runCommand(t, &commands.RmCmd{}, st, []string{"1"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", stdout)
	active, _ := testutil.Reload(t, mem).Active()
	assert.Equal(t, []string{"Eggs"}, taskTexts(active))
}

func TestRmCommand_OutOfRange(t *testing.T) {
	st, _ := fixture(t)

	_, stderr, code := runCommand(t, &commands.RmCmd{}, st, []string{"9"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task number out of range: 9\n", stderr)
}

// Tests for new command
func TestNewCommand(t *testing.T) {
	st, _ := fixture(t)

	stdout, _, code := runCommand(t, &commands.NewCmd{}, st, []string{"Weekly", "Meeting"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", stdout)
	active, ok := st.Active()
	require.True(t, ok)
	assert.Equal(t, "Weekly Meeting", active.Name)
	assert.Empty(t, active.Tasks)
	assert.Len(t, st.Agendas(), 3)
}

func TestNewCommand_Errors(t *testing.T) {
	st, _ := fixture(t)

	_, stderr, code := runCommand(t, &commands.NewCmd{}, st, []string{"work"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: agenda already exists: work\n", stderr)

	_, stderr, code = runCommand(t, &commands.NewCmd{}, st, nil, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: agenda name required\n", stderr)

	assert.Len(t, st.Agendas(), 2)
}

// Tests for rename command
func TestRenameCommand_Active(t *testing.T) {
	st, _ := fixture(t)

	_, stderr, code := runCommand(t, &commands.RenameCmd{}, st, []string{"Food"}, false)

	assert.Equal(t, exitcode.Success, code, stderr)
	active, _ := st.Active()
	assert.Equal(t, "Food", active.Name)
}

func TestRenameCommand_Named(t *testing.T) {
	st, _ := fixture(t)
	cmd := &commands.RenameCmd{}
	cmd.SetAgenda("b")

	_, stderr, code := runCommand(t, cmd, st, []string{"Office"}, false)

	assert.Equal(t, exitcode.Success, code, stderr)
	assert.Equal(t, "Office", st.Agendas()[1].Name)
	assert.Equal(t, "g", st.ActiveID())
}

func TestRenameCommand_Conflicts(t *testing.T) {
	st, _ := fixture(t)

	_, stderr, code := runCommand(t, &commands.RenameCmd{}, st, []string{"Work"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: agenda already exists: Work\n", stderr)

	// Changing only the case of its own name is allowed.
	_, _, code = runCommand(t, &commands.RenameCmd{}, st, []string{"groceries"}, false)
	assert.Equal(t, exitcode.Success, code)
}

// Tests for rmagenda command
func TestRmAgendaCommand_RequiresForceWhenNotEmpty(t *testing.T) {
	st, _ := fixture(t)

	_, stderr, code := runCommand(t, &commands.RmAgendaCmd{}, st, []string{"Work"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: agenda not empty (use --force)\n", stderr)

	cmd := &commands.RmAgendaCmd{}
	cmd.SetForce(true)
	stdout, _, code := runCommand(t, cmd, st, []string{"Work"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", stdout)
	assert.Len(t, st.Agendas(), 1)
}

func TestRmAgendaCommand_ActiveFallsBackToFirst(t *testing.T) {
	st, _ := fixture(t)
	cmd := &commands.RmAgendaCmd{}
	cmd.SetForce(true)

	_, _, code := runCommand(t, cmd, st, []string{"groceries"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "w", st.ActiveID())
}

func TestRmAgendaCommand_LastAgenda(t *testing.T) {
	mem := storage.NewMemory()
	st := testutil.NewStore(t, mem)

	_, stderr, code := runCommand(t, &commands.RmAgendaCmd{}, st, []string{agenda.DefaultAgendaName}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: cannot delete the only agenda (use --force)\n", stderr)

	cmd := &commands.RmAgendaCmd{}
	cmd.SetForce(true)
	_, _, code = runCommand(t, cmd, st, []string{agenda.DefaultAgendaName}, false)
	require.Equal(t, exitcode.Success, code)
	assert.Empty(t, st.Agendas())
	assert.Empty(t, st.ActiveID())

	// The next start seeds a fresh default agenda.
	reloaded := testutil.Reload(t, mem)
	require.Len(t, reloaded.Agendas(), 1)
	assert.Equal(t, agenda.DefaultAgendaName, reloaded.Agendas()[0].Name)
}

// Tests for use command
func TestUseCommand(t *testing.T) {
	st, mem := fixture(t)

	for _, ref := range []string{"Work", "w", "b"} {
		st.SetActive(context.Background(), "g")
		stdout, stderr, code := runCommand(t, &commands.UseCmd{}, st, []string{ref}, false)
		assert.Equal(t, exitcode.Success, code, stderr)
		assert.Equal(t, "ok\n", stdout)
		assert.Equal(t, "w", st.ActiveID(), "ref %q", ref)
	}
	assert.Equal(t, "w", testutil.Reload(t, mem).ActiveID())
}

func TestUseCommand_Ambiguous(t *testing.T) {
	mem := storage.NewMemory()
	testutil.Seed(t, mem, []agenda.Agenda{
		{ID: "a1", Name: "Standup", Tasks: []agenda.Task{}},
		{ID: "a2", Name: "standup", Tasks: []agenda.Task{}},
	}, "a1")
	st := testutil.NewStore(t, mem)

	_, stderr, code := runCommand(t, &commands.UseCmd{}, st, []string{"STANDUP"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: ambiguous agenda name: STANDUP\n", stderr)
}

// Tests for summary command
func TestSummaryCommand(t *testing.T) {
	st, _ := fixture(t)

	stdout, _, code := runCommand(t, &commands.SummaryCmd{}, st, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "1/2 completed\n", stdout)
}

// Tests for export command
func TestExportCommand_MarkdownAll(t *testing.T) {
	st, _ := fixture(t)
	cmd := &commands.ExportCmd{}
	cmd.SetAll(true)

	stdout, stderr, code := runCommand(t, cmd, st, nil, false)

	assert.Equal(t, exitcode.Success, code, stderr)
	testutil.GoldenString(t, "export_all_markdown", stdout)
}

func TestExportCommand_JSONActive(t *testing.T) {
	st, _ := fixture(t)
	cmd := &commands.ExportCmd{}
	cmd.SetFormat("json")

	stdout, _, code := runCommand(t, cmd, st, nil, false)
	require.Equal(t, exitcode.Success, code)

	var got []agenda.Agenda
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Groceries", got[0].Name)
	assert.Equal(t, []string{"Milk", "Eggs"}, taskTexts(got[0]))
}

func TestExportCommand_YAML(t *testing.T) {
	st, _ := fixture(t)
	cmd := &commands.ExportCmd{}
	cmd.SetFormat("yml")
	cmd.SetAll(true)

	stdout, _, code := runCommand(t, cmd, st, nil, false)
	require.Equal(t, exitcode.Success, code)

	var got []agenda.Agenda
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, st.Agendas(), got)
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	st, _ := fixture(t)
	cmd := &commands.ExportCmd{}
	cmd.SetFormat("csv")

	_, stderr, code := runCommand(t, cmd, st, nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown export format: csv\n", stderr)
}

func TestRegistry_RejectsTakenNames(t *testing.T) {
	r := commands.NewRegistry()
	require.NoError(t, r.Register(&commands.AddCmd{}))

	assert.Error(t, r.Register(&commands.AddCmd{}))
	assert.NoError(t, r.Register(&commands.ListCmd{}))
	assert.Error(t, r.Register(&commands.ListCmd{}))
}

func TestRegistry_AllSortedByName(t *testing.T) {
	var names []string
	for _, cmd := range commands.DefaultRegistry.All() {
		names = append(names, cmd.Name())
	}
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "rmagenda")
	assert.Contains(t, names, "tui")
	assert.NotContains(t, names, "ls")
}
