package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netfog/pkg/pipeline"
)

// stdoutPath selects standard output instead of a file.
const stdoutPath = "-"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		seed    uint64
	)
	opts := pipeline.Options{VizType: pipeline.VizEditor}

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a graph as an editor document, static image or DOT preview",
		Long: `Render a graph as an editor document, static image or DOT preview.

The input is a Pajek .net file, a JSON graph, a static YAML/JSON input, or an
editor document (.svg/.html) produced earlier. Visualization types:

  editor    draggable SVG document (svg, html)
  static    fixed-size picture with random placement (svg, png, html)
  nodelink  graphviz preview with pinned positions (svg, png, dot)

Without --format the output extension decides, falling back to the first
format listed for the type. Results are cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(opts.VizType, opts.Format, output)
			if err != nil {
				return err
			}
			ro := c.renderOptions(opts.VizType, format)
			ro.Relayout = opts.Relayout
			ro.Title = opts.Title
			ro.Detailed = opts.Detailed
			ro.Scale = opts.Scale
			if cmd.Flags().Changed("seed") {
				ro.Seed = seed
			}
			return c.runRender(cmd.Context(), args[0], ro, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: input name with the format extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: editor, static, nodelink")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "output format (see the list above)")
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "random seed for placement")
	cmd.Flags().BoolVar(&opts.Relayout, "relayout", false, "place every node at random, ignoring stored positions")
	cmd.Flags().StringVar(&opts.Title, "title", "", "page title (html)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show weights and coordinates (nodelink)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "png scale factor (nodelink)")

	return cmd
}

// resolveFormat picks the output format: the flag, then the output file
// extension if the type supports it, then the type's default.
func resolveFormat(vizType, format, output string) (string, error) {
	if err := pipeline.ValidateVizType(vizType); err != nil {
		return "", err
	}
	if format != "" {
		if err := pipeline.ValidateFormat(vizType, format); err != nil {
			return "", err
		}
		return format, nil
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" && slices.Contains(pipeline.ValidFormats[vizType], ext) {
		return ext, nil
	}
	return pipeline.ValidFormats[vizType][0], nil
}

// outputPath derives the output path from the input when output is empty.
// A derived path never overwrites the input.
func outputPath(output, input, vizType, format string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	path := base + "." + format
	if path == input {
		path = fmt.Sprintf("%s_%s.%s", base, vizType, format)
	}
	return path
}

// openOutput opens path for writing, or standard output for "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

// runRender loads input, renders it through the cached runner and writes
// the artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	src, err := pipeline.Load(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	logger.Debug("loaded input", "name", src.Name, "kind", src.Kind, "hash", src.Hash[:12])

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s %s...", opts.VizType, opts.Format))
	spinner.Start()

	data, cached, err := runner.Render(ctx, src, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	path := outputPath(output, input, opts.VizType, opts.Format)
	if err := writeOutput(path, data); err != nil {
		return err
	}
	if path == stdoutPath {
		return nil
	}

	prog.done(fmt.Sprintf("Rendered %s %s", opts.VizType, opts.Format))
	if g, err := src.Graph(); err == nil {
		printStats(g.NodeCount(), len(g.Edges()), len(g.Arcs()), cached)
	}
	printFile(path)
	return nil
}
