// Package server hosts the netfog editor over HTTP.
//
// The editor page connects a WebSocket to /ws; every connection gets a
// private copy of the document and a viewport controller. The browser
// forwards pointer events and applies the attribute patches the session
// sends back, so the document on the server is always the one that gets
// exported.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	apperr "github.com/matzehuels/netfog/pkg/errors"
	netio "github.com/matzehuels/netfog/pkg/io"
	"github.com/matzehuels/netfog/pkg/pipeline"
	"github.com/matzehuels/netfog/pkg/svgdoc"
)

// maxUploadSize bounds documents posted for export.
const maxUploadSize = 10 << 20

// Options configures a Server.
type Options struct {
	Addr string

	// Input is the editor input: a Pajek, JSON graph or editor document.
	Input string

	// StaticInput feeds /static and /static.png. Empty reuses Input.
	StaticInput string

	// Render carries style, canvas, window and seed settings.
	Render pipeline.Options

	// Watch reloads inputs when they change on disk.
	Watch bool

	// Debounce delays reloads after the last change; zero means 100ms.
	Debounce time.Duration

	Runner *pipeline.Runner
	Logger *log.Logger
}

// Server serves the editor, the static renderer and the export API.
type Server struct {
	opts     Options
	runner   *pipeline.Runner
	log      *log.Logger
	metrics  *Metrics
	upgrader websocket.Upgrader

	mu        sync.RWMutex
	src       *pipeline.Source
	staticSrc *pipeline.Source
	sessions  map[string]*session
}

// New loads the inputs and prepares the server.
func New(opts Options) (*Server, error) {
	if opts.Input == "" {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "no input file")
	}
	if opts.StaticInput == "" {
		opts.StaticInput = opts.Input
	}
	if opts.Debounce == 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}

	s := &Server{
		opts:     opts,
		runner:   opts.Runner,
		log:      opts.Logger,
		metrics:  NewMetrics(),
		sessions: make(map[string]*session),
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	s.metrics.Register()
	return s, nil
}

// load reads both inputs and swaps them in.
func (s *Server) load() error {
	src, err := loadInput(s.opts.Input)
	if err != nil {
		return err
	}
	staticSrc := src
	if s.opts.StaticInput != s.opts.Input {
		if staticSrc, err = loadInput(s.opts.StaticInput); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.src, s.staticSrc = src, staticSrc
	s.mu.Unlock()
	return nil
}

func loadInput(path string) (*pipeline.Source, error) {
	src, err := pipeline.Load(path)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnknownInput) {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "cannot read %s", filepath.Base(path))
		}
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "load %s", path)
	}
	return src, nil
}

func (s *Server) sources() (editor, static *pipeline.Source) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.src, s.staticSrc
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleEditor)
	r.Get("/static", s.handleStatic(pipeline.FormatHTML))
	r.Get("/static.png", s.handleStatic(pipeline.FormatPNG))
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/document.svg", s.handleDocument)
		r.Post("/export/{format}", s.handleExport)
		r.Get("/sessions/{id}/export/{format}", s.handleSessionExport)
	})
	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	if s.opts.Watch {
		go func() {
			if err := s.watch(ctx); err != nil {
				s.log.Error("watcher stopped", "err", err)
			}
		}()
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Info("serving", "url", "http://"+ln.Addr().String(), "input", s.opts.Input)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.closeSessions()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) render(ctx context.Context, src *pipeline.Source, viz, format string) ([]byte, error) {
	opts := s.opts.Render
	opts.VizType, opts.Format = viz, format
	if viz == pipeline.VizEditor && format == pipeline.FormatHTML {
		opts.SocketPath = "/ws"
		opts.Title = src.Name
	}
	data, _, err := s.runner.Render(ctx, src, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "render %s", format)
	}
	return data, nil
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	src, _ := s.sources()
	data, err := s.render(r.Context(), src, pipeline.VizEditor, pipeline.FormatHTML)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	src, _ := s.sources()
	data, err := s.render(r.Context(), src, pipeline.VizEditor, pipeline.FormatSVG)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}

func (s *Server) handleStatic(format string) http.HandlerFunc {
	contentType := "text/html; charset=utf-8"
	if format == pipeline.FormatPNG {
		contentType = "image/png"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		_, src := s.sources()
		data, err := s.render(r.Context(), src, pipeline.VizStatic, format)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(data)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func exportFormat(r *http.Request) (netio.Format, error) {
	name := chi.URLParam(r, "format")
	if err := apperr.ValidateFormat(name, string(netio.FormatPajek), string(netio.FormatJSON)); err != nil {
		return "", err
	}
	f, err := netio.ParseFormat(name)
	if err != nil {
		return "", apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "unsupported format %q", name)
	}
	return f, nil
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := exportFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadSize))
	if err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	doc, err := svgdoc.Parse(body)
	if err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeInvalidDocument, err, "request body is not an editor document"))
		return
	}
	s.writeExport(w, r, doc, f)
}

func (s *Server) handleSessionExport(w http.ResponseWriter, r *http.Request) {
	f, err := exportFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		s.writeError(w, r, apperr.New(apperr.ErrCodeSessionNotFound, "no live session %q", id))
		return
	}
	s.writeExport(w, r, sess.snapshot(), f)
}

func (s *Server) writeExport(w http.ResponseWriter, r *http.Request, doc *svgdoc.Document, f netio.Format) {
	data, _, err := s.runner.Export(r.Context(), doc, f)
	if err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeInternal, err, "export %s", f))
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Filename()))
	_, _ = w.Write(data)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	src, _ := s.sources()
	doc, err := s.runner.Document(r.Context(), src, s.opts.Render)
	if err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeInternal, err, "prepare document"))
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "err", err)
		return
	}

	sess := newSession(conn, doc, s.log)
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.id)
		s.mu.Unlock()
		_ = conn.Close()
	}()
	sess.run(r.Context())
}

// broadcast sends msg to every live session.
func (s *Server) broadcast(msg serverMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		if err := sess.send(msg); err != nil {
			sess.log.Debug("broadcast", "err", err)
		}
	}
}

func (s *Server) closeSessions() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		sess.writeMu.Lock()
		_ = sess.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		sess.writeMu.Unlock()
		_ = sess.conn.Close()
	}
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
