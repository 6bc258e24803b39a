package commands

import (
	"github.com/spf13/cobra"

	"github.com/BauhouseConsortium/nirmanaflow/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [document]",
		Short: "Render a document and re-render on every change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir, _ := cmd.Flags().GetString("out")
			return c.app.Watch(cmd.Context(), args[0], app.RenderOptions{
				OutDir: outDir,
			})
		},
	}
	cmd.Flags().StringP("out", "o", "", "Directory for rendered files (default: next to the document)")
	return cmd
}
