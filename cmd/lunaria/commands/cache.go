package commands

import "github.com/spf13/cobra"

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached checkpoints",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Remove all cached checkpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, err := configPath(cmd)
			if err != nil {
				return err
			}
			return c.app.CleanCache(cmd.Context(), "", cfgPath)
		},
	})

	return cmd
}
