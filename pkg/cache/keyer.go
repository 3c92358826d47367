package cache

// RenderKeyOpts are the render options that change a rendered document.
type RenderKeyOpts struct {
	Format string `json:"format"`
	Seed   uint64 `json:"seed"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`

	// StyleHash identifies the style settings, see [Hash].
	StyleHash string `json:"style,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// RenderKey addresses a document rendered from an input with the
	// given content hash.
	RenderKey(inputHash string, opts RenderKeyOpts) string

	// ExportKey addresses a network export of an editor document.
	ExportKey(documentHash, format string) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey returns "render:<sha256>".
func (DefaultKeyer) RenderKey(inputHash string, opts RenderKeyOpts) string {
	return hashKey("render", inputHash, opts)
}

// ExportKey returns "export:<sha256>".
func (DefaultKeyer) ExportKey(documentHash, format string) string {
	return hashKey("export", documentHash, format)
}

var _ Keyer = DefaultKeyer{}
