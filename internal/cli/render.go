package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/larsmk/crystalgraph/pkg/errors"
	"github.com/larsmk/crystalgraph/pkg/io"
	"github.com/larsmk/crystalgraph/pkg/render"
)

// newRenderCmd creates the "render" command.
func newRenderCmd() *cobra.Command {
	var (
		format      string
		output      string
		showWeights bool
		showIndices bool
	)

	cmd := &cobra.Command{
		Use:   "render <artifact.cgr>",
		Short: "Render an artifact as a diagram",
		Long: `Render loads a serialized graph artifact and emits a Graphviz diagram.
Supported formats are dot, svg, and png.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !io.IsArtifact(path) {
				return errors.New(errors.ErrCodeInvalidInput,
					"%s is not a %s artifact", path, io.ArtifactExt)
			}

			g, err := io.ReadFile(path)
			if err != nil {
				return err
			}

			dot := render.ToDOT(g, render.Options{
				ShowWeights: showWeights,
				ShowIndices: showIndices,
			})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = render.SVG(dot)
			case "png":
				data, err = render.PNG(dot)
			default:
				return errors.New(errors.ErrCodeInvalidOptions,
					"invalid format %q (must be one of: dot, svg, png)", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				base := strings.TrimSuffix(filepath.Base(path), io.ArtifactExt)
				output = base + "." + format
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess("Rendered %s", StyleValue.Render(g.ID()))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format (dot, svg, png)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: artifact name + format)")
	cmd.Flags().BoolVar(&showWeights, "weights", true, "label edges with weights")
	cmd.Flags().BoolVar(&showIndices, "indices", false, "prefix node labels with atom indices")

	return cmd
}
