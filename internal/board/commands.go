package board

import (
	"context"
	"strings"

	"kanban-cli/internal/model"
)

// Command is one of the user affordances a front-end can invoke. The set is
// closed: ShowForm, HideForm, AddCard and DeleteCard.
type Command interface {
	Name() string
	apply(ctx context.Context, c *Controller) bool
}

type ShowForm struct{ ColumnID string }

type HideForm struct{ ColumnID string }

type AddCard struct {
	ColumnID string
	Text     string
}

type DeleteCard struct{ CardID string }

func (ShowForm) Name() string   { return "show-form" }
func (HideForm) Name() string   { return "hide-form" }
func (AddCard) Name() string    { return "add" }
func (DeleteCard) Name() string { return "delete" }

// Dispatch applies cmd and reports whether anything (board or UI) changed.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cmd.apply(ctx, c)
}

func (c *Controller) ShowForm(columnID string) bool {
	return c.Dispatch(context.Background(), ShowForm{ColumnID: columnID})
}

func (c *Controller) HideForm(columnID string) bool {
	return c.Dispatch(context.Background(), HideForm{ColumnID: columnID})
}

func (c *Controller) AddCard(ctx context.Context, columnID, text string) bool {
	return c.Dispatch(ctx, AddCard{ColumnID: columnID, Text: text})
}

func (c *Controller) DeleteCard(ctx context.Context, cardID string) bool {
	return c.Dispatch(ctx, DeleteCard{CardID: cardID})
}

// SetDraft records in-progress form text so a rebuilt view can restore it.
func (c *Controller) SetDraft(columnID, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.board.ColumnIndex(columnID); !ok {
		return
	}
	c.ui.Drafts[columnID] = text
}

func (cmd ShowForm) apply(_ context.Context, c *Controller) bool {
	if _, ok := c.board.ColumnIndex(cmd.ColumnID); !ok {
		c.noop(cmd.Name(), c.log.Debug().Str("column", cmd.ColumnID))
		return false
	}
	c.ui.OpenForms[cmd.ColumnID] = true
	c.render()
	return true
}

func (cmd HideForm) apply(_ context.Context, c *Controller) bool {
	if !c.ui.OpenForms[cmd.ColumnID] && c.ui.Drafts[cmd.ColumnID] == "" {
		return false
	}
	delete(c.ui.OpenForms, cmd.ColumnID)
	delete(c.ui.Drafts, cmd.ColumnID)
	c.render()
	return true
}

func (cmd AddCard) apply(ctx context.Context, c *Controller) bool {
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		c.noop(cmd.Name(), c.log.Debug().Str("column", cmd.ColumnID).Str("reason", "empty text"))
		return false
	}
	next := c.board.Clone()
	ci, ok := next.ColumnIndex(cmd.ColumnID)
	if !ok {
		c.noop(cmd.Name(), c.log.Debug().Str("column", cmd.ColumnID).Str("reason", "unknown column"))
		return false
	}
	card := model.Card{ID: c.ids.NextID(), Text: text}
	next.Columns[ci].Cards = append(next.Columns[ci].Cards, card)

	// The rebuilt view starts with the form closed and empty.
	delete(c.ui.OpenForms, cmd.ColumnID)
	delete(c.ui.Drafts, cmd.ColumnID)

	c.log.Info().Str("column", cmd.ColumnID).Str("card", card.ID).Msg("card added")
	c.commit(ctx, next, cmd.Name())
	return true
}

func (cmd DeleteCard) apply(ctx context.Context, c *Controller) bool {
	next := c.board.Clone()
	ci, ii, ok := next.FindCard(cmd.CardID)
	if !ok {
		c.noop(cmd.Name(), c.log.Debug().Str("card", cmd.CardID))
		return false
	}
	cards := next.Columns[ci].Cards
	next.Columns[ci].Cards = append(cards[:ii:ii], cards[ii+1:]...)

	c.log.Info().Str("column", next.Columns[ci].ID).Str("card", cmd.CardID).Msg("card deleted")
	c.commit(ctx, next, cmd.Name())
	return true
}
