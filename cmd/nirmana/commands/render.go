package commands

import (
	"github.com/spf13/cobra"

	"github.com/BauhouseConsortium/nirmanaflow/internal/app"
)

func (c *CLI) newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [documents...]",
		Short: "Render graph documents to SVG",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			outDir, _ := cmd.Flags().GetString("out")
			width, _ := cmd.Flags().GetInt("width")
			height, _ := cmd.Flags().GetInt("height")
			return c.app.Render(cmd.Context(), args, app.RenderOptions{
				OutDir: outDir,
				Width:  width,
				Height: height,
			})
		},
	}
	cmd.Flags().StringP("out", "o", "", "Directory for rendered files (default: next to each document)")
	cmd.Flags().Int("width", 0, "Override the document canvas width")
	cmd.Flags().Int("height", 0, "Override the document canvas height")
	return cmd
}
