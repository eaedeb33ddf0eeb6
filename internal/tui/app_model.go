package tui

import (
	"context"
	"fmt"
	"strings"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// liftMsg arrives one update after a drag starts so the card is dimmed on the
// next frame rather than the one that begins the drag.
type liftMsg struct{ cardID string }

// boardView receives every controller render. It's a pointer shared by all
// copies of appModel, so Update always sees the latest snapshot.
type boardView struct {
	board model.Board
	ui    board.UIState
}

func (v *boardView) Render(b model.Board, ui board.UIState) {
	v.board = b
	v.ui = ui
}

type appModel struct {
	ctx  context.Context
	ctrl *board.Controller
	view *boardView
	keys keyMap

	width  int
	height int

	sel   boardSelection
	frame frame

	form       textarea.Model
	formColumn string

	// pressCardID is set between a mouse press on a card and either the first
	// motion (which starts a drag) or the release (a plain click).
	pressCardID string
	dragging    bool

	showHelp bool
	status   string
}

func newAppModel(ctx context.Context, ctrl *board.Controller) appModel {
	ta := textarea.New()
	ta.Placeholder = "Enter card text..."
	ta.ShowLineNumbers = false
	ta.Prompt = " "
	ta.CharLimit = 500
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	m := appModel{
		ctx:    ctx,
		ctrl:   ctrl,
		view:   &boardView{},
		keys:   defaultKeyMap(),
		width:  80,
		height: 24,
		form:   ta,
	}
	ctrl.SetRenderer(m.view)
	m.refreshFrame()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case liftMsg:
		m.ctrl.MarkLifted(msg.cardID)
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	case tea.KeyMsg:
		if m.formColumn != "" {
			var quit bool
			cmd, quit = m.handleFormKey(msg)
			if quit {
				return m, tea.Quit
			}
		} else {
			var quit bool
			cmd, quit = m.handleBoardKey(msg)
			if quit {
				return m, tea.Quit
			}
		}
	default:
		if m.formColumn != "" {
			m.form, cmd = m.form.Update(msg)
		}
	}
	m.refreshFrame()
	return m, cmd
}

func (m *appModel) handleBoardKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	b := m.view.board
	switch {
	case key.Matches(msg, m.keys.Quit):
		return nil, true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Left):
		m.sel = boardSelection{Col: m.sel.Col - 1}
	case key.Matches(msg, m.keys.Right):
		m.sel = boardSelection{Col: m.sel.Col + 1}
	case key.Matches(msg, m.keys.Up):
		m.stepCard(b, -1)
	case key.Matches(msg, m.keys.Down):
		m.stepCard(b, 1)
	case key.Matches(msg, m.keys.Add):
		if m.sel.Col >= 0 && m.sel.Col < len(b.Columns) {
			return m.openForm(b.Columns[m.sel.Col].ID), false
		}
	case key.Matches(msg, m.keys.Delete):
		m.deleteCard(m.sel.CardID)
	}
	return nil, false
}

func (m *appModel) handleFormKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return nil, true
	case key.Matches(msg, m.keys.Confirm):
		m.confirmForm()
		return nil, false
	case key.Matches(msg, m.keys.Cancel):
		m.cancelForm()
		return nil, false
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	m.ctrl.SetDraft(m.formColumn, m.form.Value())
	return cmd, false
}

func (m *appModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	layout := m.frame.layout
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return m.handlePress(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if m.pressCardID == "" {
			return nil
		}
		var cmd tea.Cmd
		if !m.dragging {
			if !m.ctrl.DragStart(m.pressCardID) {
				m.pressCardID = ""
				return nil
			}
			m.dragging = true
			id := m.pressCardID
			cmd = func() tea.Msg { return liftMsg{cardID: id} }
		}
		if ci, ok := layout.columnAt(msg.X); ok {
			col := layout.cols[ci]
			m.ctrl.DragOver(col.id, float64(msg.Y), col.boxes())
		}
		return cmd

	case tea.MouseActionRelease:
		id := m.pressCardID
		m.pressCardID = ""
		if !m.dragging {
			return nil
		}
		m.dragging = false
		if ci, ok := layout.columnAt(msg.X); ok {
			if m.ctrl.Drop(m.ctx, layout.cols[ci].id) {
				m.status = fmt.Sprintf("moved card %s", id)
			}
		}
		m.ctrl.DragEnd()
		m.sel = boardSelection{CardID: id}
	}
	return nil
}

func (m *appModel) handlePress(x, y int) tea.Cmd {
	layout := m.frame.layout
	for _, col := range layout.cols {
		switch {
		case col.addTrigger.contains(x, y):
			return m.openForm(col.id)
		case col.confirm.contains(x, y):
			m.confirmForm()
			return nil
		case col.cancel.contains(x, y):
			m.cancelForm()
			return nil
		}
	}
	ci, region, ok := layout.cardAt(x, y)
	if ci < 0 {
		return nil
	}
	if !ok {
		m.sel = boardSelection{Col: ci}
		return nil
	}
	if region.del.contains(x, y) {
		m.deleteCard(region.id)
		return nil
	}
	m.sel = boardSelection{Col: ci, CardID: region.id}
	m.pressCardID = region.id
	return nil
}

func (m *appModel) stepCard(b model.Board, delta int) {
	if m.sel.Col < 0 || m.sel.Col >= len(b.Columns) {
		return
	}
	cards := b.Columns[m.sel.Col].Cards
	if len(cards) == 0 {
		return
	}
	idx := 0
	for i, c := range cards {
		if c.ID == m.sel.CardID {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(cards) {
		idx = len(cards) - 1
	}
	m.sel.CardID = cards[idx].ID
}

// openForm shows the add form for columnID. Only one form is live in the
// terminal at a time, so any other open form is hidden first.
func (m *appModel) openForm(columnID string) tea.Cmd {
	if m.formColumn != "" && m.formColumn != columnID {
		m.ctrl.HideForm(m.formColumn)
	}
	m.ctrl.ShowForm(columnID)
	m.formColumn = columnID
	m.form.Reset()
	m.form.SetValue(m.ctrl.UI().Drafts[columnID])
	m.status = ""
	return m.form.Focus()
}

func (m *appModel) confirmForm() {
	if m.formColumn == "" {
		return
	}
	if m.ctrl.AddCard(m.ctx, m.formColumn, m.form.Value()) {
		m.status = "card added"
		m.closeForm()
	}
}

func (m *appModel) cancelForm() {
	if m.formColumn == "" {
		return
	}
	m.ctrl.HideForm(m.formColumn)
	m.closeForm()
}

func (m *appModel) closeForm() {
	m.formColumn = ""
	m.form.Reset()
	m.form.Blur()
}

func (m *appModel) deleteCard(id string) {
	if id == "" {
		return
	}
	if m.ctrl.DeleteCard(m.ctx, id) {
		m.status = fmt.Sprintf("deleted card %s", id)
	}
}

func (m *appModel) refreshFrame() {
	b := m.view.board
	m.sel = m.sel.clamp(b)

	formView := ""
	if m.formColumn != "" {
		m.form.SetWidth(columnWidth(m.width, len(b.Columns)) - 2)
		formView = m.form.View()
	}
	m.frame = renderBoardFrame(frameInput{
		board:      b,
		ui:         m.view.ui,
		sel:        m.sel,
		formColumn: m.formColumn,
		formView:   formView,
		width:      m.width,
		height:     m.height - 1,
	})
}

func (m appModel) View() string {
	return m.frame.view + "\n" + m.footer()
}

func (m appModel) footer() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.formColumn != "" {
		parts = append(parts, m.keys.formHelp())
	} else {
		parts = append(parts, m.keys.boardHelp(m.showHelp))
	}
	line := " " + strings.Join(parts, "  "+glyphRule()+"  ")
	return styleMuted().Render(truncateLabel(line, m.width))
}
