package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/netfog/pkg/errors"
	netio "github.com/matzehuels/netfog/pkg/io"
	"github.com/matzehuels/netfog/pkg/pipeline"
)

// exportCommand creates the export command, the command-line counterpart
// of the editor's export menu.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "export [document.svg|document.html]",
		Short: "Recover the graph from an edited document as Pajek or JSON",
		Long: `Recover the graph from an edited document as Pajek or JSON.

Node positions are read from the document as the editor left them and
written normalized to the 1500x700 reference canvas.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := exportFormat(format, output)
			if err != nil {
				return err
			}
			return c.runExport(cmd.Context(), args[0], f, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "export format: net (default), json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: input name with the format extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// exportFormat resolves the flag, then the output extension, then Pajek.
func exportFormat(format, output string) (netio.Format, error) {
	if format != "" {
		f, err := netio.ParseFormat(format)
		if err != nil {
			return "", apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "invalid export format %q", format)
		}
		return f, nil
	}
	if f, err := netio.FormatFromPath(output); err == nil {
		return f, nil
	}
	return netio.FormatPajek, nil
}

func (c *CLI) runExport(ctx context.Context, input string, f netio.Format, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	src, err := pipeline.Load(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	if src.Kind != pipeline.KindDocument {
		return apperr.New(apperr.ErrCodeInvalidInput, "%s is a %s input; export reads editor documents, use convert for graph files", input, src.Kind)
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
	data, cached, err := runner.Export(ctx, doc, f)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	path := outputPath(output, input, "export", string(f))
	if err := writeOutput(path, data); err != nil {
		return err
	}
	if path == stdoutPath {
		return nil
	}

	ex := doc.Extract()
	logger.Debug("exported", "format", f, "bytes", len(data))
	printSuccess("Exported %s", strings.ToUpper(string(f)))
	printStats(len(ex.Nodes), len(ex.Edges), len(ex.Arcs), cached)
	printFile(path)
	return nil
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a network between Pajek (.net) and JSON (.json)",
		Long: `Convert a network between Pajek (.net) and JSON (.json).

Formats are chosen by file extension. Positions and weights are carried
over unchanged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), args[0], args[1])
		},
	}
}

func runConvert(ctx context.Context, input, output string) error {
	logger := loggerFromContext(ctx)

	n, err := netio.Import(input)
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "read %s", input)
	}
	n.Detailed = true
	if f, err := netio.FormatFromPath(output); err == nil && f == netio.FormatPajek {
		if err := validateLabels(n); err != nil {
			return err
		}
	}
	if err := netio.Export(n, output); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "write %s", output)
	}

	logger.Debug("converted", "input", input, "output", output)
	printSuccess("Converted %s", input)
	printStats(len(n.Vertices), len(n.Edges), len(n.Arcs), false)
	printFile(output)
	return nil
}

// validateLabels rejects labels Pajek cannot quote.
func validateLabels(n netio.Network) error {
	for _, v := range n.Vertices {
		if err := apperr.ValidateLabel(v.Label); err != nil {
			return fmt.Errorf("vertex %d: %w", v.ID, err)
		}
	}
	return nil
}
