package publish

import (
	"bytes"
	"fmt"
	"strings"

	"kanban-cli/internal/model"
)

type RenderOptions struct {
	// Title is the top-level heading. Empty means "Kanban board".
	Title string
	// IncludeIDs appends each card's id as inline code.
	IncludeIDs bool
}

// RenderBoardMarkdown renders the board as one markdown document: a section per
// column in board order, one bullet per card in column order.
func RenderBoardMarkdown(b model.Board, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Kanban board"
	}
	writeLn("# " + title)

	for _, col := range b.Columns {
		writeLn("")
		writeLn(fmt.Sprintf("## %s (%d)", strings.TrimSpace(col.Title), len(col.Cards)))
		writeLn("")
		if len(col.Cards) == 0 {
			writeLn("_No cards._")
			continue
		}
		for _, c := range col.Cards {
			line := "- " + indentContinuation(strings.TrimSpace(c.Text))
			if opt.IncludeIDs {
				line += " `" + c.ID + "`"
			}
			writeLn(line)
		}
	}
	return buf.String()
}

// indentContinuation keeps multi-line card text inside its list item.
func indentContinuation(s string) string {
	return strings.ReplaceAll(s, "\n", "\n  ")
}
