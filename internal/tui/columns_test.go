package tui

import (
	"strings"
	"testing"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
	"kanban-cli/internal/store"
)

func uiWithPlaceholder(cardID string, pl board.Placement) board.UIState {
	return board.UIState{
		OpenForms: map[string]bool{},
		Drafts:    map[string]string{},
		Drag:      &board.Session{CardID: cardID, Lifted: true, Placeholder: &pl},
	}
}

func lineIndex(lines []string, needle string) int {
	for i, l := range lines {
		if strings.Contains(l, needle) {
			return i
		}
	}
	return -1
}

func TestRenderBoardFrame_ColumnsAndCounts(t *testing.T) {
	f := renderBoardFrame(frameInput{board: store.DefaultBoard(), width: 90, height: 20})

	for _, want := range []string{"To Do (2)", "In Progress (1)", "Done (1)", "Learn Go", "Set up the environment", "+ Add a card"} {
		if !strings.Contains(f.view, want) {
			t.Fatalf("expected %q in view, got=%q", want, f.view)
		}
	}
	if len(f.layout.cols) != 3 {
		t.Fatalf("expected 3 column layouts, got %d", len(f.layout.cols))
	}
	if got := strings.Count(f.view, "\n") + 1; got != 20 {
		t.Fatalf("expected view padded to 20 rows, got %d", got)
	}
	for i, col := range f.layout.cols {
		if col.addTrigger == (rect{}) {
			t.Fatalf("column %d has no add trigger", i)
		}
		if i > 0 && col.x0 != f.layout.cols[i-1].x1+columnGap {
			t.Fatalf("columns should be separated by the gap")
		}
	}
}

func TestRenderBoardFrame_EmptyColumn(t *testing.T) {
	b := model.Board{Columns: []model.Column{{ID: "x", Title: "Empty", Cards: []model.Card{}}}}
	f := renderBoardFrame(frameInput{board: b, width: 40, height: 8})
	if !strings.Contains(f.view, "Empty (0)") || !strings.Contains(f.view, "(empty)") {
		t.Fatalf("expected empty column marker, got=%q", f.view)
	}
}

func TestRenderBoardFrame_PlaceholderBeforeCard(t *testing.T) {
	b := store.DefaultBoard()
	ui := uiWithPlaceholder("3", board.Placement{ColumnID: "todo", Index: 1, BeforeID: "2"})
	f := renderBoardFrame(frameInput{board: b, ui: ui, width: 90, height: 20})

	lines := strings.Split(f.view, "\n")
	ph := lineIndex(lines, glyphPlaceholderFill())
	first := lineIndex(lines, "Learn Go")
	second := lineIndex(lines, "Create a project")
	if ph < 0 || !(first < ph && ph < second) {
		t.Fatalf("expected placeholder between the two To Do cards (first=%d ph=%d second=%d)\n%s", first, ph, second, f.view)
	}
	if strings.Count(f.view, renderPlaceholder(columnWidth(90, 3))) != 1 {
		t.Fatalf("expected exactly one placeholder")
	}

	// Layout reflects the shifted card.
	cards := f.layout.cols[0].cards
	if cards[1].top != second {
		t.Fatalf("card layout should follow the placeholder, got top=%d want=%d", cards[1].top, second)
	}
}

func TestRenderBoardFrame_PlaceholderAppended(t *testing.T) {
	b := store.DefaultBoard()
	ui := uiWithPlaceholder("1", board.Placement{ColumnID: "done", Index: 1})
	f := renderBoardFrame(frameInput{board: b, ui: ui, width: 90, height: 20})

	lines := strings.Split(f.view, "\n")
	ph := lineIndex(lines, glyphPlaceholderFill())
	card := lineIndex(lines, "Set up the environment")
	if ph <= card {
		t.Fatalf("expected placeholder after the last Done card (card=%d ph=%d)", card, ph)
	}
}

func TestRenderBoardFrame_FormReplacesTrigger(t *testing.T) {
	b := store.DefaultBoard()
	ui := board.UIState{
		OpenForms: map[string]bool{"inProgress": true},
		Drafts:    map[string]string{"inProgress": "half typed"},
	}
	f := renderBoardFrame(frameInput{board: b, ui: ui, width: 90, height: 20})

	col := f.layout.cols[1]
	if col.addTrigger != (rect{}) {
		t.Fatalf("open form should replace the add trigger")
	}
	if col.confirm == (rect{}) || col.cancel == (rect{}) {
		t.Fatalf("open form should expose confirm and cancel targets")
	}
	if col.confirm.x0 < col.x0 || col.cancel.x1 > col.x1 {
		t.Fatalf("form buttons should sit inside their column: %+v", col)
	}
	if !strings.Contains(f.view, "half typed") || !strings.Contains(f.view, "[ Add card ]") {
		t.Fatalf("expected draft and button in view, got=%q", f.view)
	}
}

func TestCardAt_DeleteTargetOnFirstRow(t *testing.T) {
	b := store.DefaultBoard()
	f := renderBoardFrame(frameInput{board: b, width: 90, height: 20})

	first := f.layout.cols[0].cards[0]
	ci, region, ok := f.layout.cardAt(1, first.top)
	if !ok || ci != 0 || region.id != "1" {
		t.Fatalf("expected card 1 under the cursor, got ci=%d region=%+v ok=%v", ci, region, ok)
	}
	if !region.del.contains(f.layout.cols[0].x1-1, first.top) {
		t.Fatalf("expected the delete target at the right edge of the card row")
	}
	if _, _, ok := f.layout.cardAt(1, 0); ok {
		t.Fatalf("header row is not a card")
	}
	if _, ok := f.layout.columnAt(f.layout.cols[0].x1); ok {
		t.Fatalf("the gap between columns belongs to no column")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("build the interface today", 10)
	want := []string{"build the", "interface", "today"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := wrapText("abcdefghijkl", 5); strings.Join(got, "|") != "abcde|fghij|kl" {
		t.Fatalf("long words should be hard-cut, got %q", got)
	}
	if got := wrapText("   ", 5); len(got) != 1 || got[0] != "" {
		t.Fatalf("blank text should produce a single empty line, got %q", got)
	}
}

func TestBoardSelectionClamp(t *testing.T) {
	b := store.DefaultBoard()
	if s := (boardSelection{Col: 9}).clamp(b); s.Col != 2 || s.CardID != "4" {
		t.Fatalf("expected clamp to last column's first card, got %+v", s)
	}
	if s := (boardSelection{Col: 0, CardID: "3"}).clamp(b); s.Col != 1 {
		t.Fatalf("selection should follow its card, got %+v", s)
	}
	if s := (boardSelection{Col: -1, CardID: "gone"}).clamp(b); s.Col != 0 || s.CardID != "1" {
		t.Fatalf("expected first card, got %+v", s)
	}
}

func TestGlyphsASCII(t *testing.T) {
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	if glyphDelete() != "x" || glyphPlaceholderFill() != "-" || glyphEllipsis() != "..." {
		t.Fatalf("ascii glyphs not applied")
	}
	if got := truncateLabel("a fairly long status line", 10); got != "a fairl..." {
		t.Fatalf("got %q", got)
	}
}
