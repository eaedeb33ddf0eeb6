package model

import (
	"fmt"
	"strings"
)

type Card struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

type Column struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Cards []Card `json:"cards" yaml:"cards"`
}

// Board is the whole persisted state: ordered columns, each with ordered cards.
// Card IDs are unique across the board, not just within a column.
type Board struct {
	Columns []Column `json:"columns" yaml:"columns"`
}

// Clone returns a deep copy. Renderers and stores only ever see clones.
func (b Board) Clone() Board {
	out := Board{Columns: make([]Column, len(b.Columns))}
	for i, c := range b.Columns {
		cards := make([]Card, len(c.Cards))
		copy(cards, c.Cards)
		out.Columns[i] = Column{ID: c.ID, Title: c.Title, Cards: cards}
	}
	return out
}

func (b Board) ColumnIndex(columnID string) (int, bool) {
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return i, true
		}
	}
	return -1, false
}

func (b Board) FindColumn(columnID string) (*Column, bool) {
	i, ok := b.ColumnIndex(columnID)
	if !ok {
		return nil, false
	}
	return &b.Columns[i], true
}

// FindCard scans every column and returns the position of the card.
func (b Board) FindCard(cardID string) (col int, idx int, ok bool) {
	for ci := range b.Columns {
		for ii := range b.Columns[ci].Cards {
			if b.Columns[ci].Cards[ii].ID == cardID {
				return ci, ii, true
			}
		}
	}
	return -1, -1, false
}

func (b Board) CardCount() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Cards)
	}
	return n
}

func (b Board) HasCard(cardID string) bool {
	_, _, ok := b.FindCard(cardID)
	return ok
}

func (b Board) Equal(o Board) bool {
	if len(b.Columns) != len(o.Columns) {
		return false
	}
	for i := range b.Columns {
		a, c := b.Columns[i], o.Columns[i]
		if a.ID != c.ID || a.Title != c.Title || len(a.Cards) != len(c.Cards) {
			return false
		}
		for j := range a.Cards {
			if a.Cards[j] != c.Cards[j] {
				return false
			}
		}
	}
	return true
}

// Validate checks the structural invariants: non-empty unique column ids and
// board-wide unique card ids.
func (b Board) Validate() error {
	if err := b.ValidateColumns(); err != nil {
		return err
	}
	if dups := b.DuplicateCardIDs(); len(dups) > 0 {
		return fmt.Errorf("duplicate card id %s", strings.Join(dups, ", "))
	}
	return nil
}

// ValidateColumns checks only what a board cannot be used without: at least
// one column, non-empty unique column ids and non-empty card ids.
func (b Board) ValidateColumns() error {
	if len(b.Columns) == 0 {
		return fmt.Errorf("board has no columns")
	}
	cols := map[string]bool{}
	for _, c := range b.Columns {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("column with empty id (title %q)", c.Title)
		}
		if cols[c.ID] {
			return fmt.Errorf("duplicate column id: %s", c.ID)
		}
		cols[c.ID] = true
		for _, card := range c.Cards {
			if strings.TrimSpace(card.ID) == "" {
				return fmt.Errorf("card with empty id in column %s", c.ID)
			}
		}
	}
	return nil
}

// DuplicateCardIDs lists card ids that occur more than once, in board order.
func (b Board) DuplicateCardIDs() []string {
	seen := map[string]int{}
	var out []string
	for _, c := range b.Columns {
		for _, card := range c.Cards {
			seen[card.ID]++
			if seen[card.ID] == 2 {
				out = append(out, card.ID)
			}
		}
	}
	return out
}

// Normalize fills absent optional fields so older or hand-edited records decode
// into a usable board.
func (b *Board) Normalize() {
	for i := range b.Columns {
		if b.Columns[i].Cards == nil {
			b.Columns[i].Cards = []Card{}
		}
	}
}
