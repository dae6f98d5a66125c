package commands

import "github.com/spf13/cobra"

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report generated files that differ from the published sources",
		Long: "Generate the documentation in memory and compare it with sources_dir.\n" +
			"Exits with status 1 when any file is missing, modified or extra.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Check(cmd.Context(), c.configPath())
		},
	}
}
