package cli

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"kanban-cli/internal/format"
	"kanban-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var width int
	var style string
	var withIDs bool
	var raw bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the board as rendered markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, b, err := openBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			md := publish.RenderBoardMarkdown(b, publish.RenderOptions{IncludeIDs: withIDs})
			if raw {
				_, err = fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			if width <= 0 {
				width = terminalWidth()
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), publish.RenderTerminal(md, width, style))
			return err
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (default: $COLUMNS or 80)")
	cmd.Flags().StringVar(&style, "style", "auto", "Glamour style (auto|dark|light|notty)")
	cmd.Flags().BoolVar(&withIDs, "with-ids", true, "Show card ids")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without terminal styling")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var toPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board as json, yaml or markdown",
		Long: strings.TrimSpace(`
Export the board in the persisted shape (json or yaml) or as a markdown
document. The global --format flag picks the encoding; markdown is only
accepted here.
`),
		Example: strings.TrimSpace(`
kanban export --pretty
kanban export --format yaml
kanban export --format markdown --to board.md
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, b, err := openBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			var buf bytes.Buffer
			switch f := strings.ToLower(strings.TrimSpace(app.Format)); f {
			case "markdown", "md":
				buf.WriteString(publish.RenderBoardMarkdown(b, publish.RenderOptions{IncludeIDs: true}))
			default:
				if err := format.Write(&buf, b, f, app.PrettyJSON); err != nil {
					return writeErr(cmd, err)
				}
			}

			if strings.TrimSpace(toPath) == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			res, err := publish.WriteFile(toPath, buf.Bytes(), overwrite)
			if err != nil {
				return writeErr(cmd, err)
			}
			return format.WriteJSON(cmd.OutOrStdout(), map[string]any{"data": res}, app.PrettyJSON)
		},
	}

	cmd.Flags().StringVar(&toPath, "to", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func terminalWidth() int {
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS"))); err == nil && n > 0 {
		return n
	}
	return 80
}
