package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Long:  "Print the configuration after defaults, the config file, KANBAN_* environment variables and flags have been applied.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.cfg.TOML()
			if err != nil {
				return writeErr(cmd, err)
			}
			if app.cfg.Source != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n", app.cfg.Source)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}

	cmd.AddCommand(showCmd)
	return cmd
}
