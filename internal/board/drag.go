package board

import (
	"context"
	"math"
)

// Session tracks one drag from drag-start to drag-end.
type Session struct {
	CardID         string
	SourceColumnID string

	// Lifted is set one tick after DragStart so the platform captures the drag
	// image before the card is restyled.
	Lifted bool

	// Placeholder is the single drop marker, if any. The index counts cards of
	// the target column other than the dragged one, which is exactly the
	// insertion index once the card has been removed.
	Placeholder *Placement
}

// Placement says where the placeholder sits: before BeforeID, or appended when
// BeforeID is empty.
type Placement struct {
	ColumnID string `json:"columnId"`
	Index    int    `json:"index"`
	BeforeID string `json:"beforeId"`
}

// CardBox is the on-screen vertical extent of a rendered card.
type CardBox struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// PlaceholderTarget picks the card the pointer is closest above: among cards
// whose midpoint lies below y, the one with the least negative offset. boxes
// are in display order; skipID (the dragged card) is ignored. Returns the
// insertion index among the remaining cards and the id of the card to insert
// before, or (count, "") to append.
func PlaceholderTarget(boxes []CardBox, y float64, skipID string) (int, string) {
	best := math.Inf(-1)
	index := -1
	beforeID := ""
	pos := 0
	for _, b := range boxes {
		if b.ID == skipID {
			continue
		}
		offset := y - b.Top - b.Height/2
		if offset < 0 && offset > best {
			best = offset
			index = pos
			beforeID = b.ID
		}
		pos++
	}
	if index < 0 {
		return pos, ""
	}
	return index, beforeID
}

// DragStart begins a session for an existing card. Anything else is ignored.
func (c *Controller) DragStart(cardID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ci, _, ok := c.board.FindCard(cardID)
	if !ok {
		c.log.Debug().Str("card", cardID).Msg("drag start on unknown card")
		return false
	}
	c.ui.Drag = &Session{CardID: cardID, SourceColumnID: c.board.Columns[ci].ID}
	c.log.Debug().Str("card", cardID).Msg("drag start")
	return true
}

// MarkLifted applies the deferred "lifted" mark. Front-ends call it on the next
// scheduling tick after DragStart.
func (c *Controller) MarkLifted(cardID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ui.Drag == nil || c.ui.Drag.CardID != cardID || c.ui.Drag.Lifted {
		return
	}
	c.ui.Drag.Lifted = true
	c.render()
}

// DragOver relocates the placeholder for a pointer at y over columnID. boxes
// are that column's rendered cards. Each call replaces the previous
// placement, so there is never more than one placeholder.
func (c *Controller) DragOver(columnID string, y float64, boxes []CardBox) (Placement, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ui.Drag == nil {
		return Placement{}, false
	}
	if _, ok := c.board.ColumnIndex(columnID); !ok {
		return Placement{}, false
	}
	idx, before := PlaceholderTarget(boxes, y, c.ui.Drag.CardID)
	p := Placement{ColumnID: columnID, Index: idx, BeforeID: before}
	if prev := c.ui.Drag.Placeholder; prev != nil && *prev == p {
		return p, true
	}
	c.ui.Drag.Placeholder = &p
	c.render()
	return p, true
}

// Drop consumes the placement computed during drag-over and moves the card
// before the placement's BeforeID card. Without a placement for this column
// the card is appended.
func (c *Controller) Drop(ctx context.Context, columnID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ui.Drag == nil {
		return false
	}
	if _, ok := c.board.ColumnIndex(columnID); !ok {
		return false
	}
	index := -1
	if p := c.ui.Drag.Placeholder; p != nil && p.ColumnID == columnID {
		index = c.dropIndex(*p)
	}
	c.ui.Drag.Placeholder = nil
	if !c.move(ctx, c.ui.Drag.CardID, columnID, index) {
		c.render()
		return false
	}
	return true
}

// dropIndex resolves a placement against the current board. BeforeID wins
// over the stored index, which was counted from rendered boxes and goes stale
// if the column changed since the drag-over. An empty BeforeID appends.
func (c *Controller) dropIndex(p Placement) int {
	if p.BeforeID == "" {
		return -1
	}
	col, ok := c.board.FindColumn(p.ColumnID)
	if !ok {
		return p.Index
	}
	pos := 0
	for _, card := range col.Cards {
		if card.ID == c.ui.Drag.CardID {
			continue
		}
		if card.ID == p.BeforeID {
			return pos
		}
		pos++
	}
	return p.Index
}

// DragEnd always runs last in a drag sequence, including drops outside any
// column. It clears the lifted mark, the placeholder and the session.
func (c *Controller) DragEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ui.Drag == nil {
		return
	}
	c.ui.Drag = nil
	c.render()
}
