package store

import "kanban-cli/internal/model"

// DefaultBoard is the seed used when nothing is stored yet. The ids are fixed.
func DefaultBoard() model.Board {
	return model.Board{
		Columns: []model.Column{
			{
				ID:    "todo",
				Title: "To Do",
				Cards: []model.Card{
					{ID: "1", Text: "Learn Go"},
					{ID: "2", Text: "Create a project"},
				},
			},
			{
				ID:    "inProgress",
				Title: "In Progress",
				Cards: []model.Card{
					{ID: "3", Text: "Build the interface"},
				},
			},
			{
				ID:    "done",
				Title: "Done",
				Cards: []model.Card{
					{ID: "4", Text: "Set up the environment"},
				},
			},
		},
	}
}
