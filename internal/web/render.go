package web

import (
	"html/template"
	"strings"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"

	"github.com/bytedance/sonic"
)

func parseTemplates() (*template.Template, error) {
	return template.New("base").Funcs(template.FuncMap{
		"trim": strings.TrimSpace,
	}).ParseFS(assetsFS, "templates/*.html")
}

type pageVM struct {
	Board boardVM
	// Signals seeds the Datastar store with one empty draft per column.
	Signals template.HTMLAttr
}

type boardVM struct {
	Columns []columnVM
}

type columnVM struct {
	ID       string
	Title    string
	Count    int
	Entries  []entryVM
	FormOpen bool
}

// entryVM is either a card or the drop placeholder.
type entryVM struct {
	Placeholder bool
	ID          string
	Text        string
	Lifted      bool
}

func newBoardVM(b model.Board, ui board.UIState) boardVM {
	var ph *board.Placement
	liftedID := ""
	if ui.Drag != nil {
		ph = ui.Drag.Placeholder
		if ui.Drag.Lifted {
			liftedID = ui.Drag.CardID
		}
	}

	vm := boardVM{Columns: make([]columnVM, 0, len(b.Columns))}
	for _, col := range b.Columns {
		cv := columnVM{
			ID:       col.ID,
			Title:    col.Title,
			Count:    len(col.Cards),
			Entries:  make([]entryVM, 0, len(col.Cards)+1),
			FormOpen: ui.FormOpen(col.ID),
		}
		here := ph != nil && ph.ColumnID == col.ID
		for _, c := range col.Cards {
			if here && ph.BeforeID == c.ID {
				cv.Entries = append(cv.Entries, entryVM{Placeholder: true})
			}
			cv.Entries = append(cv.Entries, entryVM{ID: c.ID, Text: c.Text, Lifted: c.ID == liftedID})
		}
		if here && ph.BeforeID == "" {
			cv.Entries = append(cv.Entries, entryVM{Placeholder: true})
		}
		vm.Columns = append(vm.Columns, cv)
	}
	return vm
}

func newPageVM(b model.Board, ui board.UIState) pageVM {
	drafts := make(map[string]string, len(b.Columns))
	for _, col := range b.Columns {
		drafts[col.ID] = ui.Drafts[col.ID]
	}
	raw, err := sonic.ConfigStd.MarshalToString(map[string]any{"drafts": drafts})
	if err != nil {
		raw = `{"drafts":{}}`
	}
	return pageVM{Board: newBoardVM(b, ui), Signals: template.HTMLAttr(`data-signals="` + template.HTMLEscapeString(raw) + `"`)}
}

// RenderBoardHTML renders the #board fragment: a full replacement of the
// previous one, built from state alone.
func (s *Server) RenderBoardHTML(b model.Board, ui board.UIState) (string, error) {
	return s.renderTemplate("board", newBoardVM(b, ui))
}

// RenderPlaceholderHTML returns the drop marker. It is never persisted.
func (s *Server) RenderPlaceholderHTML() (string, error) {
	return s.renderTemplate("placeholder", nil)
}
