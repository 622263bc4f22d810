package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/larsmk/crystalgraph/pkg/config"
	"github.com/larsmk/crystalgraph/pkg/io"
	"github.com/larsmk/crystalgraph/pkg/render"
)

// newBuildCmd creates the "build" command.
func newBuildCmd(configPath *string) *cobra.Command {
	var (
		output       string
		overwrite    bool
		cutoff       float64
		maxNeighbors int
		decayName    string
		voronoi      bool
		id           string
		noCache      bool
		refresh      bool
		jsonOut      string
		dotOut       string
	)

	cmd := &cobra.Command{
		Use:   "build <structure-file>",
		Short: "Construct a graph from a structure file",
		Long: `Build reads a structure file (XYZ, POSCAR, or a .cgr artifact) and
constructs its weighted graph. The result can be persisted as a .cgr
artifact and exported as JSON or Graphviz DOT.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.Load(resolveConfigPath(*configPath))
			if err != nil {
				return err
			}
			builder, err := newBuilder(cfg, noCache)
			if err != nil {
				return err
			}
			defer builder.Close()

			opts := optionsFromConfig(cfg)
			opts.Logger = logger
			opts.Overwrite = overwrite
			opts.Refresh = refresh
			if cmd.Flags().Changed("cutoff") {
				opts.Cutoff = cutoff
			}
			if cmd.Flags().Changed("max-neighbors") {
				opts.MaxNeighbors = maxNeighbors
			}
			if cmd.Flags().Changed("decay") {
				opts.Decay = decayName
			}
			if cmd.Flags().Changed("voronoi") {
				opts.Voronoi = voronoi
			}
			if id != "" {
				opts.ID = id
			}
			if output != "" {
				opts.OutputPath = output
			}

			path := args[0]
			spin := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Building %s...", filepath.Base(path)))
			spin.Start()

			prog := newProgress(logger)
			g, err := builder.FromFile(cmd.Context(), path, opts)
			if err != nil {
				spin.StopWithError(fmt.Sprintf("Build failed: %v", err))
				return err
			}
			spin.Stop()
			if g == nil {
				printWarning("No graph produced for %s (see log for the reason)", path)
				return nil
			}
			prog.done(fmt.Sprintf("Built graph with %d edges", g.EdgeCount()))

			printSuccess("Built %s", StyleValue.Render(g.ID()))
			printStats(g.NodeCount(), g.EdgeCount(), false)
			if output != "" {
				printFile(output)
			}

			if jsonOut != "" {
				if err := io.ExportJSON(g, jsonOut); err != nil {
					return err
				}
				printFile(jsonOut)
			}
			if dotOut != "" {
				dot := render.ToDOT(g, render.Options{ShowWeights: true, ShowIndices: true})
				if err := os.WriteFile(dotOut, []byte(dot), 0644); err != nil {
					return err
				}
				printFile(dotOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "persist the graph as a .cgr artifact")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing output file")
	cmd.Flags().Float64Var(&cutoff, "cutoff", 0, "neighbor cutoff radius")
	cmd.Flags().IntVar(&maxNeighbors, "max-neighbors", 0, "soft neighbor limit")
	cmd.Flags().StringVar(&decayName, "decay", "", "distance decay function")
	cmd.Flags().BoolVar(&voronoi, "voronoi", false, "use Voronoi-tessellation adjacency")
	cmd.Flags().StringVar(&id, "id", "", "graph identifier (default: base filename)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the construction cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringVar(&jsonOut, "json", "", "export the graph as JSON to this path")
	cmd.Flags().StringVar(&dotOut, "dot", "", "export the graph as Graphviz DOT to this path")

	return cmd
}

// resolveConfigPath picks the explicit --config path or the conventional
// default location.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return config.DefaultPath()
}

// formatWeight renders an edge weight compactly for display.
func formatWeight(w float64) string {
	s := fmt.Sprintf("%.6g", w)
	return strings.TrimSuffix(s, ".0")
}
