package board

import (
	"context"

	"kanban-cli/internal/model"
)

// Move relocates cardID into targetColumnID at index (counted after the card
// has been removed). A negative or out-of-range index appends. Unknown cards or
// columns leave the board untouched.
func (c *Controller) Move(ctx context.Context, cardID, targetColumnID string, index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.move(ctx, cardID, targetColumnID, index)
}

func (c *Controller) move(ctx context.Context, cardID, targetColumnID string, index int) bool {
	next := c.board.Clone()
	card, from, ok := removeCard(&next, cardID)
	if !ok {
		c.noop("move", c.log.Debug().Str("card", cardID).Str("reason", "unknown card"))
		return false
	}
	ti, ok := next.ColumnIndex(targetColumnID)
	if !ok {
		c.noop("move", c.log.Debug().Str("card", cardID).Str("column", targetColumnID).Str("reason", "unknown column"))
		return false
	}
	insertCard(&next.Columns[ti], card, index)

	c.log.Info().
		Str("card", cardID).
		Str("from", from).
		Str("to", targetColumnID).
		Int("index", index).
		Msg("card moved")
	c.commit(ctx, next, "move")
	return true
}

func removeCard(b *model.Board, cardID string) (model.Card, string, bool) {
	ci, ii, ok := b.FindCard(cardID)
	if !ok {
		return model.Card{}, "", false
	}
	col := &b.Columns[ci]
	card := col.Cards[ii]
	col.Cards = append(col.Cards[:ii:ii], col.Cards[ii+1:]...)
	return card, col.ID, true
}

func insertCard(col *model.Column, card model.Card, index int) {
	if index < 0 || index >= len(col.Cards) {
		col.Cards = append(col.Cards, card)
		return
	}
	cards := make([]model.Card, 0, len(col.Cards)+1)
	cards = append(cards, col.Cards[:index]...)
	cards = append(cards, card)
	cards = append(cards, col.Cards[index:]...)
	col.Cards = cards
}
