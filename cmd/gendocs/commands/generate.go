package commands

import "github.com/spf13/cobra"

func (c *CLI) newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate and publish the documentation sources",
		Args:  cobra.NoArgs,
		RunE:  c.runGenerate,
	}
}

func (c *CLI) runGenerate(cmd *cobra.Command, _ []string) error {
	return c.app.Generate(cmd.Context(), c.configPath())
}
