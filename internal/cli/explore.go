package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netfog/pkg/pipeline"
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		output  string
		step    float64
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "explore [input]",
		Short: "Pan, zoom and move nodes from the terminal",
		Long: `Pan, zoom and move nodes from the terminal.

The input is laid out exactly as the editor would show it. Select a node
with tab, grab it with space and move it with the arrow keys; without a
grabbed node the arrows pan the view. Press w to write the document to
--output: .net and .json files receive the recovered graph, anything else
the SVG document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0], output, step, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file written by the w key (.svg, .net or .json)")
	cmd.Flags().Float64Var(&step, "step", defaultStep, "pixels moved per arrow key")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, input, output string, step float64, noCache bool) error {
	src, err := pipeline.Load(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	doc, err := runner.Document(ctx, src, c.renderOptions(pipeline.VizEditor, pipeline.FormatSVG))
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(newExploreModel(doc, src.Name, output, step), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("explore: %w", err)
	}

	m, ok := final.(exploreModel)
	if !ok {
		return nil
	}
	if m.err != nil {
		return m.err
	}
	if m.saved {
		printSuccess("Saved %s", src.Name)
		printFile(output)
	}
	return nil
}
