package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netfog/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		staticInput string
		watch       bool
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve [input]",
		Short: "Serve the live editor, the static view and the export API",
		Long: `Serve the live editor, the static view and the export API.

Every browser tab gets its own editing session over a WebSocket; dragging,
panning and zooming happen on the server-side document, which the export
menu downloads as Pajek or JSON. With --watch, changes to the input files
reload all open pages.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg().Server.Addr
			}
			return c.runServe(cmd.Context(), server.Options{
				Addr:        addr,
				Input:       args[0],
				StaticInput: staticInput,
				Watch:       watch,
			}, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().StringVar(&staticInput, "static", "", "input for /static (default: the editor input)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload pages when inputs change")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts server.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Runner = runner
	opts.Render = c.renderOptions("", "")
	opts.Logger = loggerFromContext(ctx)

	srv, err := server.New(opts)
	if err != nil {
		return err
	}

	cacheName := c.cfg().Server.Cache
	if noCache {
		cacheName = "disabled"
	}
	url := "http://" + opts.Addr
	printInfo("%s %s", StyleTitle.Render(appName), StyleLink.Render(url))
	printKeyValue("input", opts.Input)
	if opts.StaticInput != "" {
		printKeyValue("static", opts.StaticInput)
	}
	printKeyValue("cache", cacheName)
	printKeyValue("watch", fmt.Sprint(opts.Watch))
	printNextStep("Static view", url+"/static")

	return srv.Run(ctx)
}
