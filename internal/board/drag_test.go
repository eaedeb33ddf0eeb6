package board

import (
	"context"
	"testing"
)

// boxesFor lays the given ids out as 2-row cards starting at row 0.
func boxesFor(ids ...string) []CardBox {
	out := make([]CardBox, 0, len(ids))
	for i, id := range ids {
		out = append(out, CardBox{ID: id, Top: float64(i * 2), Height: 2})
	}
	return out
}

func TestPlaceholderTarget(t *testing.T) {
	boxes := boxesFor("a", "b", "c") // midpoints 1, 3, 5

	cases := []struct {
		name       string
		y          float64
		skip       string
		wantIndex  int
		wantBefore string
	}{
		{name: "above all", y: 0, wantIndex: 0, wantBefore: "a"},
		{name: "between a and b", y: 2, wantIndex: 1, wantBefore: "b"},
		{name: "exactly on midpoint is not below", y: 3, wantIndex: 2, wantBefore: "c"},
		{name: "below all appends", y: 9, wantIndex: 3, wantBefore: ""},
		{name: "dragged card ignored", y: 0, skip: "a", wantIndex: 0, wantBefore: "b"},
		{name: "dragged card ignored when appending", y: 9, skip: "b", wantIndex: 2, wantBefore: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			idx, before := PlaceholderTarget(boxes, tc.y, tc.skip)
			if idx != tc.wantIndex || before != tc.wantBefore {
				t.Fatalf("got (%d, %q), want (%d, %q)", idx, before, tc.wantIndex, tc.wantBefore)
			}
		})
	}

	if idx, before := PlaceholderTarget(nil, 4, ""); idx != 0 || before != "" {
		t.Fatalf("empty column should append at 0, got (%d, %q)", idx, before)
	}
}

func TestPlaceholderTarget_PicksClosestBelowRegardlessOfOrder(t *testing.T) {
	// Out-of-order boxes: the least negative offset wins, not the first seen.
	boxes := []CardBox{
		{ID: "far", Top: 20, Height: 2},
		{ID: "near", Top: 6, Height: 2},
	}
	_, before := PlaceholderTarget(boxes, 5, "")
	if before != "near" {
		t.Fatalf("expected near, got %q", before)
	}
}

func TestDrag_CardToEndOfDone(t *testing.T) {
	c, p, _ := newTestController(t)
	before := c.Snapshot()

	if !c.DragStart("1") {
		t.Fatalf("expected drag to start")
	}
	s, ok := c.Session()
	if !ok || s.CardID != "1" || s.SourceColumnID != "todo" || s.Lifted {
		t.Fatalf("unexpected session: %+v", s)
	}
	c.MarkLifted("1")
	if s, _ := c.Session(); !s.Lifted {
		t.Fatalf("expected card to be lifted after the deferred tick")
	}

	pl, ok := c.DragOver("done", 50, boxesFor("4"))
	if !ok || pl.Index != 1 || pl.BeforeID != "" {
		t.Fatalf("expected append placement, got %+v", pl)
	}
	if !c.Drop(context.Background(), "done") {
		t.Fatalf("expected drop to move the card")
	}
	c.DragEnd()

	after := c.Snapshot()
	if todo := cardIDs(after.Columns[0]); !equalIDs(todo, []string{"2"}) {
		t.Fatalf("card 1 should have left To Do, got %v", todo)
	}
	done := cardIDs(after.Columns[2])
	if done[len(done)-1] != "1" {
		t.Fatalf("Done should end with 1, got %v", done)
	}
	if !equalIDs(cardIDs(after.Columns[1]), cardIDs(before.Columns[1])) {
		t.Fatalf("In Progress should be untouched")
	}
	if len(p.saves) != 1 {
		t.Fatalf("expected exactly one save for the drop, got %d", len(p.saves))
	}
	if _, ok := c.Session(); ok {
		t.Fatalf("drag end should clear the session")
	}
}

func TestDrag_DropAtTopUsesDragOverIndex(t *testing.T) {
	c, _, _ := newTestController(t)
	ctx := context.Background()

	c.DragStart("2")
	// The dragged card's own box is in the list and must be skipped.
	pl, _ := c.DragOver("todo", 0.5, boxesFor("1", "2"))
	if pl.Index != 0 || pl.BeforeID != "1" {
		t.Fatalf("expected placeholder before 1, got %+v", pl)
	}
	c.Drop(ctx, "todo")
	c.DragEnd()

	if got := cardIDs(c.Snapshot().Columns[0]); !equalIDs(got, []string{"2", "1"}) {
		t.Fatalf("expected [2 1], got %v", got)
	}
}

func TestDrag_PlaceholderIsSingleAndRelocated(t *testing.T) {
	c, _, r := newTestController(t)
	c.DragStart("3")

	c.DragOver("todo", 0, boxesFor("1", "2"))
	c.DragOver("done", 9, boxesFor("4"))
	frames := len(r.frames)

	// Same position again: no new frame, still one placeholder.
	c.DragOver("done", 9, boxesFor("4"))
	if len(r.frames) != frames {
		t.Fatalf("repeated drag-over at the same spot should not re-render")
	}
	s, _ := c.Session()
	if s.Placeholder == nil || s.Placeholder.ColumnID != "done" || s.Placeholder.Index != 1 {
		t.Fatalf("placeholder should have moved to done, got %+v", s.Placeholder)
	}
	if ui := r.lastUI(); ui.Drag == nil || ui.Drag.Placeholder == nil || ui.Drag.Placeholder.ColumnID != "done" {
		t.Fatalf("renderer should see exactly the current placeholder")
	}
}

func TestDrag_DropInOtherColumnThanPlaceholderAppends(t *testing.T) {
	c, _, _ := newTestController(t)
	c.DragStart("4")
	c.DragOver("todo", 0, boxesFor("1", "2"))
	c.Drop(context.Background(), "inProgress")
	c.DragEnd()

	if got := cardIDs(c.Snapshot().Columns[1]); !equalIDs(got, []string{"3", "4"}) {
		t.Fatalf("expected append to In Progress, got %v", got)
	}
}

func TestDrag_EndWithoutDropLeavesBoardUnchanged(t *testing.T) {
	c, p, r := newTestController(t)
	before := c.Snapshot()

	c.DragStart("1")
	c.DragOver("done", 0, boxesFor("4"))
	c.DragEnd()

	if !c.Snapshot().Equal(before) || len(p.saves) != 0 {
		t.Fatalf("cancelled drag must not change or persist the board")
	}
	if ui := r.lastUI(); ui.Drag != nil {
		t.Fatalf("drag end should clear placeholder and lifted mark")
	}
	// Safe to call again.
	c.DragEnd()
}

func TestDrag_IgnoredWithoutSessionOrForUnknownTargets(t *testing.T) {
	c, p, _ := newTestController(t)
	ctx := context.Background()

	if c.DragStart("nope") {
		t.Fatalf("non-card drag start should be ignored")
	}
	if _, ok := c.DragOver("done", 0, nil); ok {
		t.Fatalf("drag-over without a session should be ignored")
	}
	if c.Drop(ctx, "done") {
		t.Fatalf("drop without a session should be ignored")
	}

	c.DragStart("1")
	if _, ok := c.DragOver("nope", 0, nil); ok {
		t.Fatalf("drag-over outside a column should be ignored")
	}
	if c.Drop(ctx, "nope") {
		t.Fatalf("drop outside a column should be ignored")
	}
	c.MarkLifted("2")
	if s, _ := c.Session(); s.Lifted {
		t.Fatalf("lift for a different card should be ignored")
	}
	if len(p.saves) != 0 {
		t.Fatalf("nothing should have been persisted")
	}
}

func TestDrag_CardDeletedMidDragIsNoop(t *testing.T) {
	c, _, _ := newTestController(t)
	ctx := context.Background()
	c.DragStart("1")
	c.DeleteCard(ctx, "1")
	before := c.Snapshot()
	if c.Drop(ctx, "done") {
		t.Fatalf("dropping a vanished card should be a no-op")
	}
	if !c.Snapshot().Equal(before) {
		t.Fatalf("board changed")
	}
}

func TestDrag_DropResolvesBeforeIDAfterColumnChanged(t *testing.T) {
	c, _, _ := newTestController(t)
	ctx := context.Background()

	c.DragStart("4")
	pl, _ := c.DragOver("todo", 2.5, boxesFor("1", "2"))
	if pl.Index != 1 || pl.BeforeID != "2" {
		t.Fatalf("expected placeholder before 2, got %+v", pl)
	}
	// Removing "1" makes the stored index point past "2".
	c.DeleteCard(ctx, "1")
	if !c.Drop(ctx, "todo") {
		t.Fatalf("drop should succeed")
	}
	c.DragEnd()

	if got := cardIDs(c.Snapshot().Columns[0]); !equalIDs(got, []string{"4", "2"}) {
		t.Fatalf("expected [4 2], got %v", got)
	}
}

func TestDrag_DropFallsBackToIndexWhenBeforeCardGone(t *testing.T) {
	c, _, _ := newTestController(t)
	ctx := context.Background()

	c.DragStart("4")
	c.DragOver("todo", 0.5, boxesFor("1", "2"))
	c.DeleteCard(ctx, "1")
	c.Drop(ctx, "todo")
	c.DragEnd()

	if got := cardIDs(c.Snapshot().Columns[0]); !equalIDs(got, []string{"4", "2"}) {
		t.Fatalf("expected [4 2], got %v", got)
	}
}
