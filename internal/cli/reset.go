package cli

import (
	"kanban-cli/internal/store"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the stored board with the default board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errNeedsConfirm("reset"))
			}
			st, _, err := openBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			b := store.DefaultBoard()
			if err := st.Write(cmd.Context(), b); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info().Str("backend", app.cfg.Backend).Msg("board reset")
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm replacing the stored board")
	return cmd
}
