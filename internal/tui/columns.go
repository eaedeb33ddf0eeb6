package tui

import (
	"fmt"
	"strings"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// rect is a half-open screen rectangle: [x0,x1) x [y0,y1).
type rect struct{ x0, y0, x1, y1 int }

func (r rect) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

type cardRegion struct {
	id     string
	top    int
	height int
	del    rect
}

type columnLayout struct {
	id         string
	x0, x1     int
	cards      []cardRegion
	addTrigger rect
	confirm    rect
	cancel     rect
}

// boxes converts the rendered card rows into drag-over geometry.
func (c columnLayout) boxes() []board.CardBox {
	out := make([]board.CardBox, 0, len(c.cards))
	for _, r := range c.cards {
		out = append(out, board.CardBox{ID: r.id, Top: float64(r.top), Height: float64(r.height)})
	}
	return out
}

type boardLayout struct {
	cols []columnLayout
}

func (l boardLayout) columnAt(x int) (int, bool) {
	for i, c := range l.cols {
		if x >= c.x0 && x < c.x1 {
			return i, true
		}
	}
	return -1, false
}

func (l boardLayout) cardAt(x, y int) (int, cardRegion, bool) {
	ci, ok := l.columnAt(x)
	if !ok {
		return -1, cardRegion{}, false
	}
	for _, r := range l.cols[ci].cards {
		if y >= r.top && y < r.top+r.height {
			return ci, r, true
		}
	}
	return ci, cardRegion{}, false
}

type boardSelection struct {
	Col    int
	CardID string
}

// clamp keeps the selection on an existing column and card.
func (s boardSelection) clamp(b model.Board) boardSelection {
	if len(b.Columns) == 0 {
		return boardSelection{}
	}
	if ci, _, ok := b.FindCard(s.CardID); ok {
		s.Col = ci
		return s
	}
	if s.Col < 0 {
		s.Col = 0
	}
	if s.Col >= len(b.Columns) {
		s.Col = len(b.Columns) - 1
	}
	s.CardID = ""
	if cards := b.Columns[s.Col].Cards; len(cards) > 0 {
		s.CardID = cards[0].ID
	}
	return s
}

type frame struct {
	view   string
	layout boardLayout
}

type frameInput struct {
	board model.Board
	ui    board.UIState
	sel   boardSelection

	// formColumn is the column whose add form is live in the textarea; formView
	// is that textarea's rendering.
	formColumn string
	formView   string

	width  int
	height int
}

const columnGap = 2

// columnWidth splits the available width evenly; narrow terminals overflow
// rather than squeezing columns below a usable width.
func columnWidth(width, n int) int {
	if n <= 0 {
		return width
	}
	avail := width - columnGap*(n-1)
	if avail < n {
		avail = n
	}
	colW := avail / n
	if colW < 12 {
		colW = 12
	}
	return colW
}

// renderBoardFrame rebuilds the whole board view from state. It never mutates
// the board and keeps no reference to it.
func renderBoardFrame(in frameInput) frame {
	width, height := in.width, in.height
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	n := len(in.board.Columns)
	if n == 0 {
		return frame{view: normalizePane("", width, height)}
	}

	colW := columnWidth(width, n)

	layout := boardLayout{cols: make([]columnLayout, n)}
	cells := make([][]string, n)
	x := 0
	for i, col := range in.board.Columns {
		lines, cl := renderColumn(in, i, col, colW)
		cl.x0, cl.x1 = x, x+colW
		shiftRects(&cl, x)
		layout.cols[i] = cl
		cells[i] = lines
		x += colW + columnGap
	}

	rows := 0
	for _, c := range cells {
		if len(c) > rows {
			rows = len(c)
		}
	}
	blank := strings.Repeat(" ", colW)
	gap := strings.Repeat(" ", columnGap)
	var b strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for i := range cells {
			if i > 0 {
				b.WriteString(gap)
			}
			if r < len(cells[i]) {
				b.WriteString(cells[i][r])
			} else {
				b.WriteString(blank)
			}
		}
	}
	return frame{view: normalizePane(b.String(), width, height), layout: layout}
}

func renderColumn(in frameInput, idx int, col model.Column, colW int) ([]string, columnLayout) {
	cl := columnLayout{id: col.ID}
	selected := in.sel.Col == idx

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Background(colorControlBg)
	if selected {
		headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
	}
	cardStyle := lipgloss.NewStyle()
	cardSelectedStyle := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	liftedStyle := styleMuted().Italic(true)
	placeholderStyle := lipgloss.NewStyle().Foreground(colorPlaceholder)
	deleteStyle := lipgloss.NewStyle().Foreground(colorDanger)
	muted := styleMuted()

	lines := make([]string, 0, 8)
	lines = append(lines, headerStyle.Render(fitWidth(fmt.Sprintf(" %s (%d)", strings.TrimSpace(col.Title), len(col.Cards)), colW)))
	lines = append(lines, muted.Render(strings.Repeat(glyphRule(), colW)))

	drag := in.ui.Drag
	var ph *board.Placement
	if drag != nil && drag.Placeholder != nil && drag.Placeholder.ColumnID == col.ID {
		ph = drag.Placeholder
	}
	placeholder := placeholderStyle.Render(renderPlaceholder(colW))

	// Card text area: 1 col padding each side, 2 cols reserved for " ✕".
	textW := colW - 4
	if textW < 1 {
		textW = 1
	}

	for _, card := range col.Cards {
		if ph != nil && ph.BeforeID == card.ID {
			lines = append(lines, placeholder)
		}
		style := cardStyle
		if in.sel.CardID == card.ID {
			style = cardSelectedStyle
		}
		if drag != nil && drag.Lifted && drag.CardID == card.ID {
			style = liftedStyle
		}
		top := len(lines)
		for li, tl := range wrapText(card.Text, textW) {
			tail := "  "
			if li == 0 {
				tail = " " + deleteStyle.Render(glyphDelete())
			}
			lines = append(lines, style.Render(" "+fitWidth(tl, textW))+tail+" ")
		}
		cl.cards = append(cl.cards, cardRegion{
			id:     card.ID,
			top:    top,
			height: len(lines) - top,
			del:    rect{x0: colW - 3, y0: top, x1: colW, y1: top + 1},
		})
		lines = append(lines, "")
	}
	if ph != nil && ph.BeforeID == "" {
		lines = append(lines, placeholder)
	}
	if len(col.Cards) == 0 && ph == nil {
		lines = append(lines, muted.Render(fitWidth(" (empty)", colW)))
	}
	lines = append(lines, "")

	if in.ui.FormOpen(col.ID) {
		if in.formColumn == col.ID {
			lines = append(lines, strings.Split(in.formView, "\n")...)
		} else {
			lines = append(lines, fitWidth(" "+in.ui.Drafts[col.ID], colW))
		}
		y := len(lines)
		confirm := "[ Add card ]"
		cancel := "[ " + glyphDelete() + " ]"
		btn := lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Render(confirm)
		lines = append(lines, " "+btn+" "+muted.Render(cancel))
		cw := xansi.StringWidth(confirm)
		cl.confirm = rect{x0: 1, y0: y, x1: 1 + cw, y1: y + 1}
		cl.cancel = rect{x0: 2 + cw, y0: y, x1: 2 + cw + xansi.StringWidth(cancel), y1: y + 1}
	} else {
		y := len(lines)
		lines = append(lines, muted.Render(fitWidth(" + Add a card", colW)))
		cl.addTrigger = rect{x0: 0, y0: y, x1: colW, y1: y + 1}
	}

	for i := range lines {
		lines[i] = fitWidth(lines[i], colW)
	}
	return lines, cl
}

// renderPlaceholder draws the transient drop marker. It is never part of the
// persisted board.
func renderPlaceholder(colW int) string {
	inner := colW - 2
	if inner < 1 {
		inner = 1
	}
	return " " + strings.Repeat(glyphPlaceholderFill(), inner) + " "
}

func shiftRects(cl *columnLayout, dx int) {
	shift := func(r rect) rect {
		if r == (rect{}) {
			return r
		}
		return rect{x0: r.x0 + dx, y0: r.y0, x1: r.x1 + dx, y1: r.y1}
	}
	cl.addTrigger = shift(cl.addTrigger)
	cl.confirm = shift(cl.confirm)
	cl.cancel = shift(cl.cancel)
	for i := range cl.cards {
		cl.cards[i].del = shift(cl.cards[i].del)
	}
}

func fitWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	sw := xansi.StringWidth(s)
	if sw > w {
		return xansi.Truncate(s, w, "")
	}
	return s + strings.Repeat(" ", w-sw)
}

func normalizePane(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = fitWidth(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// wrapText word-wraps s to maxW cells, hard-cutting words that don't fit.
func wrapText(s string, maxW int) []string {
	if maxW <= 0 {
		return []string{""}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	lines := make([]string, 0, 2)
	cur := ""
	curW := 0
	for _, w := range words {
		wordW := xansi.StringWidth(w)
		for wordW > maxW {
			if cur != "" {
				lines = append(lines, cur)
				cur, curW = "", 0
			}
			lines = append(lines, xansi.Cut(w, 0, maxW))
			w = xansi.Cut(w, maxW, wordW)
			wordW = xansi.StringWidth(w)
		}
		if wordW == 0 {
			continue
		}
		switch {
		case cur == "":
			cur, curW = w, wordW
		case curW+1+wordW <= maxW:
			cur += " " + w
			curW += 1 + wordW
		default:
			lines = append(lines, cur)
			cur, curW = w, wordW
		}
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

func truncateLabel(s string, w int) string {
	if xansi.StringWidth(s) <= w {
		return s
	}
	return xansi.Truncate(s, w, glyphEllipsis())
}
