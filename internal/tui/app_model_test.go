package tui

import (
	"context"
	"fmt"
	"testing"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
	"kanban-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type seqIDs struct{ n int }

func (s *seqIDs) NextID() string {
	s.n++
	return fmt.Sprintf("new-%d", s.n)
}

func newTestModel(t *testing.T) (appModel, *board.Controller) {
	t.Helper()
	ctrl := board.New(store.DefaultBoard(), board.Options{IDs: &seqIDs{}, Log: zerolog.Nop()})
	m := newAppModel(context.Background(), ctrl)
	m = step(t, m, tea.WindowSizeMsg{Width: 90, Height: 24})
	return m, ctrl
}

// step feeds msg through Update. After mouse motion it also runs the returned
// lift command, the way the bubbletea runtime would before the next input.
func step(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(appModel)
	if mm, ok := msg.(tea.MouseMsg); ok && mm.Action == tea.MouseActionMotion && cmd != nil {
		if lift, ok := cmd().(liftMsg); ok {
			next, _ = m.Update(lift)
			m = next.(appModel)
		}
	}
	return m
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func ids(col model.Column) []string {
	out := make([]string, 0, len(col.Cards))
	for _, c := range col.Cards {
		out = append(out, c.ID)
	}
	return out
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cardRow(t *testing.T, m appModel, col int, id string) int {
	t.Helper()
	for _, r := range m.frame.layout.cols[col].cards {
		if r.id == id {
			return r.top
		}
	}
	t.Fatalf("card %s not laid out in column %d", id, col)
	return -1
}

func TestMouseDrag_CardToEndOfDone(t *testing.T) {
	m, ctrl := newTestModel(t)
	todo, done := m.frame.layout.cols[0], m.frame.layout.cols[2]

	m = step(t, m, mouse(tea.MouseActionPress, todo.x0+1, cardRow(t, m, 0, "1")))
	if _, ok := ctrl.Session(); ok {
		t.Fatalf("a press alone must not start a drag")
	}

	m = step(t, m, mouse(tea.MouseActionMotion, done.x0+2, 15))
	s, ok := ctrl.Session()
	if !ok || s.CardID != "1" || !s.Lifted {
		t.Fatalf("expected lifted drag session for card 1, got %+v ok=%v", s, ok)
	}
	if s.Placeholder == nil || s.Placeholder.ColumnID != "done" || s.Placeholder.BeforeID != "" {
		t.Fatalf("expected append placeholder in done, got %+v", s.Placeholder)
	}

	m = step(t, m, mouse(tea.MouseActionRelease, done.x0+2, 15))
	if _, ok := ctrl.Session(); ok {
		t.Fatalf("release should end the drag")
	}
	b := ctrl.Snapshot()
	if got := ids(b.Columns[0]); !sameIDs(got, []string{"2"}) {
		t.Fatalf("To Do should be [2], got %v", got)
	}
	if got := ids(b.Columns[2]); !sameIDs(got, []string{"4", "1"}) {
		t.Fatalf("Done should be [4 1], got %v", got)
	}
	if m.sel.CardID != "1" || m.sel.Col != 2 {
		t.Fatalf("selection should follow the moved card, got %+v", m.sel)
	}
}

func TestMouseDrag_DropAboveFirstCard(t *testing.T) {
	m, ctrl := newTestModel(t)
	inProgress, done := m.frame.layout.cols[1], m.frame.layout.cols[2]

	m = step(t, m, mouse(tea.MouseActionPress, done.x0+1, cardRow(t, m, 2, "4")))
	top := cardRow(t, m, 1, "3")
	m = step(t, m, mouse(tea.MouseActionMotion, inProgress.x0+1, top-1))
	m = step(t, m, mouse(tea.MouseActionRelease, inProgress.x0+1, top-1))

	if got := ids(ctrl.Snapshot().Columns[1]); !sameIDs(got, []string{"4", "3"}) {
		t.Fatalf("expected [4 3], got %v", got)
	}
}

func TestMouseClick_SelectsWithoutMoving(t *testing.T) {
	m, ctrl := newTestModel(t)
	before := ctrl.Snapshot()
	x := m.frame.layout.cols[0].x0 + 1
	y := cardRow(t, m, 0, "2")

	m = step(t, m, mouse(tea.MouseActionPress, x, y))
	m = step(t, m, mouse(tea.MouseActionRelease, x, y))

	if !ctrl.Snapshot().Equal(before) {
		t.Fatalf("a click must not change the board")
	}
	if m.sel.CardID != "2" {
		t.Fatalf("expected card 2 selected, got %+v", m.sel)
	}
}

func TestMouseClick_DeleteTarget(t *testing.T) {
	m, ctrl := newTestModel(t)
	col := m.frame.layout.cols[0]
	y := cardRow(t, m, 0, "1")

	m = step(t, m, mouse(tea.MouseActionPress, col.x1-2, y))
	if got := ids(ctrl.Snapshot().Columns[0]); !sameIDs(got, []string{"2"}) {
		t.Fatalf("expected card 1 deleted, got %v", got)
	}
	if m.pressCardID != "" {
		t.Fatalf("deleting must not arm a drag")
	}
}

func TestAddCardForm_MouseAndKeys(t *testing.T) {
	m, ctrl := newTestModel(t)
	trigger := m.frame.layout.cols[0].addTrigger

	m = step(t, m, mouse(tea.MouseActionPress, trigger.x0+1, trigger.y0))
	if m.formColumn != "todo" || !ctrl.UI().FormOpen("todo") {
		t.Fatalf("expected the To Do form to open")
	}

	m = step(t, m, keyRunes("Write tests"))
	if got := ctrl.UI().Drafts["todo"]; got != "Write tests" {
		t.Fatalf("draft should mirror the textarea, got %q", got)
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	b := ctrl.Snapshot()
	cards := b.Columns[0].Cards
	if len(cards) != 3 || cards[2].ID != "new-1" || cards[2].Text != "Write tests" {
		t.Fatalf("expected appended card, got %+v", cards)
	}
	if m.formColumn != "" || ctrl.UI().FormOpen("todo") {
		t.Fatalf("form should close after a successful add")
	}
}

func TestAddCardForm_BlankTextKeepsFormOpen(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = step(t, m, keyRunes("a"))
	m = step(t, m, keyRunes("   "))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if n := ctrl.Snapshot().CardCount(); n != 4 {
		t.Fatalf("blank text must not add a card, have %d", n)
	}
	if m.formColumn != "todo" {
		t.Fatalf("form should stay open")
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.formColumn != "" || ctrl.UI().FormOpen("todo") {
		t.Fatalf("escape should close the form")
	}
}

func TestAddCardForm_OnlyOneOpen(t *testing.T) {
	m, ctrl := newTestModel(t)
	first := m.frame.layout.cols[0].addTrigger
	m = step(t, m, mouse(tea.MouseActionPress, first.x0+1, first.y0))

	second := m.frame.layout.cols[1].addTrigger
	m = step(t, m, mouse(tea.MouseActionPress, second.x0+1, second.y0))

	ui := ctrl.UI()
	if ui.FormOpen("todo") || !ui.FormOpen("inProgress") || m.formColumn != "inProgress" {
		t.Fatalf("expected only the In Progress form open, got %+v", ui.OpenForms)
	}

	cancel := m.frame.layout.cols[1].cancel
	m = step(t, m, mouse(tea.MouseActionPress, cancel.x0, cancel.y0))
	if m.formColumn != "" || ctrl.UI().FormOpen("inProgress") {
		t.Fatalf("cancel should close the form")
	}
}

func TestKeyboard_NavigateAndDelete(t *testing.T) {
	m, ctrl := newTestModel(t)

	m = step(t, m, keyRunes("j"))
	if m.sel.CardID != "2" {
		t.Fatalf("expected card 2 after moving down, got %+v", m.sel)
	}
	m = step(t, m, keyRunes("l"))
	if m.sel.Col != 1 || m.sel.CardID != "3" {
		t.Fatalf("expected In Progress selection, got %+v", m.sel)
	}
	m = step(t, m, keyRunes("x"))
	if n := len(ctrl.Snapshot().Columns[1].Cards); n != 0 {
		t.Fatalf("expected In Progress emptied, still has %d", n)
	}
	if m.sel.Col != 1 || m.sel.CardID != "" {
		t.Fatalf("selection should stay on the emptied column, got %+v", m.sel)
	}

	next, cmd := m.Update(keyRunes("q"))
	_ = next
	if cmd == nil {
		t.Fatalf("q should quit")
	}
}
