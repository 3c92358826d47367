package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/netfog/pkg/graph"
	"github.com/matzehuels/netfog/pkg/observability"
	"github.com/matzehuels/netfog/pkg/svgdoc"
	"github.com/matzehuels/netfog/pkg/viewport"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// session is one live editor: a private document copy and the controller
// driving it. Events from the connection are applied in order by the
// read loop; mu guards against concurrent exports.
type session struct {
	id      string
	conn    *websocket.Conn
	log     *log.Logger
	started time.Time

	mu   sync.Mutex
	doc  *svgdoc.Document
	ctrl *viewport.Controller

	writeMu sync.Mutex
}

func newSession(conn *websocket.Conn, doc *svgdoc.Document, logger *log.Logger) *session {
	id := uuid.NewString()
	opts := []viewport.Option{}
	if v, ok := doc.ViewBox(); ok {
		opts = append(opts, viewport.WithViewBox(v))
	}
	return &session{
		id:      id,
		conn:    conn,
		log:     logger.With("session", id[:8]),
		started: time.Now(),
		doc:     doc,
		ctrl:    viewport.New(doc, opts...),
	}
}

// handle applies one client event and returns the resulting patch.
func (s *session) handle(msg clientMessage) (serverMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.ctrl.ViewBox()
	out := serverMessage{Type: msgPatch}

	switch msg.Type {
	case eventDown:
		s.ctrl.PointerDown(viewport.Pointer{X: msg.X, Y: msg.Y, Node: graph.NodeID(msg.Node), OnNode: msg.OnNode})
	case eventMove:
		s.ctrl.PointerMove(msg.X, msg.Y)
		if id, ok := s.ctrl.Target(); ok {
			if p, ok := s.doc.Placement(id); ok {
				out.addPlacement(p)
			}
		}
	case eventUp:
		s.ctrl.PointerUp()
	case eventWheel:
		s.ctrl.Wheel(msg.X, msg.Y, msg.DeltaY)
	case eventResize:
		if msg.Surface == nil || msg.Window == nil {
			return out, fmt.Errorf("resize needs surface and window")
		}
		s.ctrl.Resize(*msg.Surface, *msg.Window)
	default:
		return out, fmt.Errorf("unknown event type %q", msg.Type)
	}

	if v := s.ctrl.ViewBox(); v != before {
		s.doc.SetViewBox(v)
		out.ViewBox = v.String()
	}
	return out, nil
}

// hello is the first message of a session.
func (s *session) hello() serverMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return serverMessage{Type: msgHello, Session: s.id, ViewBox: s.ctrl.ViewBox().String()}
}

// snapshot returns a copy of the current document for export.
func (s *session) snapshot() *svgdoc.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *session) send(msg serverMessage) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}

func (s *session) ping() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// run reads events until the connection closes or ctx ends.
func (s *session) run(ctx context.Context) {
	hooks := observability.Session()
	hooks.OnSessionOpen(ctx, s.id)
	defer func() {
		hooks.OnSessionClose(ctx, s.id, time.Since(s.started))
	}()

	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				_ = s.conn.Close()
				return
			case <-ticker.C:
				if err := s.ping(); err != nil {
					return
				}
			}
		}
	}()

	if err := s.send(s.hello()); err != nil {
		s.log.Debug("send hello", "err", err)
		return
	}
	s.log.Info("session opened")

	for {
		var msg clientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("session read", "err", err)
			}
			break
		}
		hooks.OnEvent(ctx, msg.Type)

		out, err := s.handle(msg)
		if err != nil {
			s.log.Debug("bad event", "err", err)
			out = serverMessage{Type: msgError, Error: err.Error()}
		} else if out.empty() {
			continue
		}
		if err := s.send(out); err != nil {
			s.log.Debug("send patch", "err", err)
			break
		}
	}
	s.log.Info("session closed", "duration", time.Since(s.started).Round(time.Millisecond))
}
