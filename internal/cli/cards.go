package cli

import (
	"context"
	"errors"
	"strings"

	"kanban-cli/internal/model"
	"kanban-cli/internal/store"

	"github.com/spf13/cobra"
)

// strictPersister surfaces the first save failure so scriptable commands can
// exit non-zero. Interactive front-ends use the store directly, which logs and
// carries on.
type strictPersister struct {
	st  *store.Store
	err error
}

func (p *strictPersister) Save(ctx context.Context, b model.Board) {
	if p.err != nil {
		return
	}
	p.err = p.st.Write(ctx, b)
}

type cardOut struct {
	ID       string `json:"id" yaml:"id"`
	Text     string `json:"text" yaml:"text"`
	ColumnID string `json:"columnId" yaml:"columnId"`
	Index    int    `json:"index" yaml:"index"`
}

func newCardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Add, delete and move cards",
	}

	addCmd := &cobra.Command{
		Use:     "add <column> <text...>",
		Short:   "Append a card to a column",
		Example: `kanban cards add todo "Write tests"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, b, err := openBoard(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			columnID, err := resolveColumn(b, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			text := strings.Join(args[1:], " ")
			if strings.TrimSpace(text) == "" {
				return writeErr(cmd, errors.New("card text is empty"))
			}

			p := &strictPersister{st: st}
			ctrl, err := newController(app, p, b)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl.AddCard(ctx, columnID, text)
			if p.err != nil {
				return writeErr(cmd, p.err)
			}

			next := ctrl.Snapshot()
			col, _ := next.FindColumn(columnID)
			last := len(col.Cards) - 1
			card := col.Cards[last]
			return writeOut(cmd, app, map[string]any{
				"data": cardOut{ID: card.ID, Text: card.Text, ColumnID: columnID, Index: last},
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, b, err := openBoard(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			cardID := strings.TrimSpace(args[0])
			if !b.HasCard(cardID) {
				return writeErr(cmd, errNotFound("card", cardID, cardIDs(b)))
			}

			p := &strictPersister{st: st}
			ctrl, err := newController(app, p, b)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl.DeleteCard(ctx, cardID)
			if p.err != nil {
				return writeErr(cmd, p.err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"deleted": cardID},
			})
		},
	}

	var index int
	moveCmd := &cobra.Command{
		Use:   "move <card-id> <column>",
		Short: "Move a card to another column or position",
		Long: strings.TrimSpace(`
Move a card. --index is the position in the target column after the card has
been taken out of its current column; a negative index appends.
`),
		Example: strings.TrimSpace(`
kanban cards move 1 done
kanban cards move 4 inProgress --index 0
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, b, err := openBoard(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			cardID := strings.TrimSpace(args[0])
			if !b.HasCard(cardID) {
				return writeErr(cmd, errNotFound("card", cardID, cardIDs(b)))
			}
			columnID, err := resolveColumn(b, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}

			p := &strictPersister{st: st}
			ctrl, err := newController(app, p, b)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl.Move(ctx, cardID, columnID, index)
			if p.err != nil {
				return writeErr(cmd, p.err)
			}

			next := ctrl.Snapshot()
			ci, ii, _ := next.FindCard(cardID)
			card := next.Columns[ci].Cards[ii]
			return writeOut(cmd, app, map[string]any{
				"data": cardOut{ID: card.ID, Text: card.Text, ColumnID: next.Columns[ci].ID, Index: ii},
			})
		},
	}
	moveCmd.Flags().IntVar(&index, "index", -1, "Target position (negative appends)")

	listCmd := &cobra.Command{
		Use:   "list [column]",
		Short: "List cards, optionally for one column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, b, err := openBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			filter := ""
			if len(args) == 1 {
				if filter, err = resolveColumn(b, args[0]); err != nil {
					return writeErr(cmd, err)
				}
			}
			out := []cardOut{}
			for _, col := range b.Columns {
				if filter != "" && col.ID != filter {
					continue
				}
				for i, c := range col.Cards {
					out = append(out, cardOut{ID: c.ID, Text: c.Text, ColumnID: col.ID, Index: i})
				}
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.AddCommand(addCmd)
	cmd.AddCommand(deleteCmd)
	cmd.AddCommand(moveCmd)
	cmd.AddCommand(listCmd)
	return cmd
}

// resolveColumn accepts a column id or, case-insensitively, its id or title.
func resolveColumn(b model.Board, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if _, ok := b.ColumnIndex(arg); ok {
		return arg, nil
	}
	candidates := make([]string, 0, len(b.Columns))
	for _, col := range b.Columns {
		if strings.EqualFold(col.ID, arg) || strings.EqualFold(strings.TrimSpace(col.Title), arg) {
			return col.ID, nil
		}
		candidates = append(candidates, col.ID)
	}
	return "", errNotFound("column", arg, candidates)
}

func cardIDs(b model.Board) []string {
	var out []string
	for _, col := range b.Columns {
		for _, c := range col.Cards {
			out = append(out, c.ID)
		}
	}
	return out
}
