package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katyo/brd2tpl/pkg/layer"
	"github.com/katyo/brd2tpl/pkg/marker"
)

// layersCommand lists the layer names that composites can use and the
// built-in markers.
func (c *CLI) layersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layers",
		Short: "List board layers and built-in markers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, StyleTitle.Render("Layers"))
			for _, l := range layer.Horizon().Layers() {
				fmt.Fprintf(w, "  %s %s\n", StyleNumber.Render(fmt.Sprintf("%6d", l.Index)), StyleValue.Render(l.Name))
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, StyleTitle.Render("Markers"))
			for _, name := range marker.Builtin() {
				fmt.Fprintln(w, "  "+StyleValue.Render(name))
			}
			return nil
		},
	}
}
