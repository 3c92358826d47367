// Package cli implements the netfog command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netfog/internal/config"
	"github.com/matzehuels/netfog/pkg/buildinfo"
	"github.com/matzehuels/netfog/pkg/cache"
	"github.com/matzehuels/netfog/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "netfog"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The configuration is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "netfog draws network graphs as editable SVG",
		Long: `netfog renders network graphs (Pajek .net or JSON) as SVG documents whose
nodes can be dragged, panned and zoomed in the browser, and recovers the
edited graph from the document again.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.config = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "cache", cfg.Server.Cache)
	return nil
}

// cfg returns the loaded configuration, or the defaults when a command runs
// without the root pre-run (as in tests).
func (c *CLI) cfg() *config.Config {
	if c.config == nil {
		c.config = config.Default()
	}
	return c.config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg := c.cfg()
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Server.CachePrefix)
	r := pipeline.NewRunner(store, keyer, c.Logger)
	r.TTL = cfg.Server.CacheTTL
	return r, nil
}

func newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Server.Cache {
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.Server.RedisURL)
	case config.CacheFile:
		return cache.NewFileCache(cfg.Server.CacheDir)
	default:
		return cache.NewNullCache(), nil
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderOptions returns pipeline options seeded from the configuration.
func (c *CLI) renderOptions(viz, format string) pipeline.Options {
	opts := c.cfg().RenderOptions()
	opts.VizType = viz
	opts.Format = format
	opts.Logger = c.Logger
	return opts
}
