package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netfog/pkg/cache"
	netio "github.com/matzehuels/netfog/pkg/io"
	"github.com/matzehuels/netfog/pkg/observability"
	"github.com/matzehuels/netfog/pkg/svgdoc"
)

// DefaultTTL is how long rendered artifacts stay cached.
const DefaultTTL = 24 * time.Hour

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		TTL:    DefaultTTL,
		Logger: logger,
	}
}

// Render produces one artifact for src with caching. The boolean reports
// a cache hit.
func (r *Runner) Render(ctx context.Context, src *Source, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}

	key, err := r.renderKey(src, opts)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	data, hit, err := cache.Fetch(ctx, r.Cache, key, r.TTL, func() ([]byte, error) {
		return Render(ctx, src, opts)
	})
	elapsed := time.Since(start)
	observability.Render().OnRender(ctx, opts.Format, elapsed, err)
	if err != nil {
		return nil, false, fmt.Errorf("render %s %s: %w", opts.VizType, opts.Format, err)
	}

	r.Logger.Debug("rendered",
		"input", src.Name,
		"viz", opts.VizType,
		"format", opts.Format,
		"bytes", len(data),
		"cached", hit,
		"duration", elapsed)
	return data, hit, nil
}

// Document returns the editor document for src, going through the cache
// like an editor SVG render.
func (r *Runner) Document(ctx context.Context, src *Source, opts Options) (*svgdoc.Document, error) {
	opts.VizType, opts.Format = VizEditor, FormatSVG
	data, _, err := r.Render(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	return svgdoc.Parse(data)
}

// Export extracts the network encoded by doc and writes it in format f.
// The boolean reports a cache hit.
func (r *Runner) Export(ctx context.Context, doc *svgdoc.Document, f netio.Format) ([]byte, bool, error) {
	svg, err := doc.Bytes()
	if err != nil {
		return nil, false, fmt.Errorf("serialize document: %w", err)
	}
	key := r.Keyer.ExportKey(cache.Hash(svg), string(f))
	data, hit, err := cache.Fetch(ctx, r.Cache, key, r.TTL, func() ([]byte, error) {
		var buf bytes.Buffer
		if err := netio.Write(&buf, doc.Extract().Network(), f); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	observability.Render().OnExport(ctx, string(f), err)
	if err != nil {
		return nil, false, fmt.Errorf("export %s: %w", f, err)
	}
	return data, hit, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) renderKey(src *Source, opts Options) (string, error) {
	optData, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("serialize options for cache key: %w", err)
	}
	return r.Keyer.RenderKey(src.Hash, cache.RenderKeyOpts{
		Format:    opts.VizType + "/" + opts.Format,
		Seed:      opts.Seed,
		Width:     opts.Window.Width,
		Height:    opts.Window.Height,
		StyleHash: cache.Hash(optData),
	}), nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
