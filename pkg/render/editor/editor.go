// Package editor renders the HTML pages that host netfog documents.
//
// [Page] wraps an editor document in a full-window page with a side menu
// and a small script that forwards mouse events over a WebSocket to the
// server-side viewport controller, applying the attribute patches it
// sends back. Without a socket path the page is a static viewer: the
// document is shown but nothing is interactive and the export links stay
// disabled (use "netfog export" on the saved file instead).
//
// [StaticPage] wraps a static renderer drawing in a minimal page.
package editor

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"

	"github.com/matzehuels/netfog/pkg/svgdoc"
)

//go:embed assets/editor.js
var editorJS string

//go:embed assets/editor.css
var editorCSS string

// ErrNoDocument is returned by [Page] for a nil document.
var ErrNoDocument = errors.New("no document")

var (
	pageTemplate   = template.Must(template.New("editor").Parse(pageHTML))
	staticTemplate = template.Must(template.New("static").Parse(staticHTML))
)

// Options configures [Page].
type Options struct {
	Title string
	// SocketPath is the WebSocket endpoint of a live session, e.g. "/ws".
	// Empty renders a static viewer.
	SocketPath string
}

type pageData struct {
	Title  string
	Socket string
	Live   bool
	SVG    template.HTML
	Script template.JS
	CSS    template.CSS
}

// Page renders doc inside the editor page.
func Page(doc *svgdoc.Document, opts Options) ([]byte, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	svg, err := doc.SVG()
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	if opts.Title == "" {
		opts.Title = "netfog"
	}

	data := pageData{
		Title:  opts.Title,
		Socket: opts.SocketPath,
		Live:   opts.SocketPath != "",
		SVG:    template.HTML(svg),
		Script: template.JS(editorJS),
		CSS:    template.CSS(editorCSS),
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute editor template: %w", err)
	}
	return buf.Bytes(), nil
}

// StaticPage renders a static renderer SVG inside a bare page.
func StaticPage(svg []byte, title string) ([]byte, error) {
	if title == "" {
		title = "netfog"
	}
	var buf bytes.Buffer
	err := staticTemplate.Execute(&buf, struct {
		Title string
		SVG   template.HTML
	}{title, template.HTML(svg)})
	if err != nil {
		return nil, fmt.Errorf("execute static template: %w", err)
	}
	return buf.Bytes(), nil
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<button id="menuButton" type="button">&#9776;</button>
<nav id="sideMenu">
<a class="disabled" data-format="net" download="data.net">Download Pajek</a>
<a class="disabled" data-format="json" download="data.json">Download JSON</a>
</nav>
<div id="canvas"{{if .Live}} data-socket="{{.Socket}}"{{end}}>
{{.SVG}}
</div>
<div id="status">{{if .Live}}connecting{{else}}read-only{{end}}</div>
<script>{{.Script}}</script>
</body>
</html>
`

const staticHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>html, body { margin: 0; } svg { display: block; }</style>
</head>
<body>
{{.SVG}}
</body>
</html>
`
