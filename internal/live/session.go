package live

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/scene"
	"github.com/ziadkadry99/molview/internal/simulation"
	"github.com/ziadkadry99/molview/internal/viewer"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// socket serialises writes to a WebSocket connection.
type socket struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *socket) send(msg serverMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}

func (s *socket) sendError(msg string) {
	if err := s.send(serverMessage{Type: "error", Error: msg}); err != nil {
		log.Printf("live: websocket write error: %v", err)
	}
}

// socketSurface is a viewer surface that streams each composed scene to the
// client. Frames identical to the previous one are not resent.
type socketSurface struct {
	out    *socket
	frames uint64
	last   []byte
	closed bool
}

func (f *socketSurface) Draw(s scene.Scene) error {
	if f.closed {
		return fmt.Errorf("surface closed")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	f.frames++
	if bytes.Equal(data, f.last) {
		return nil
	}
	f.last = data
	if err := f.out.send(serverMessage{Type: "frame", Frame: f.frames, Scene: &s}); err != nil {
		return fmt.Errorf("sending frame: %w", err)
	}
	return nil
}

func (f *socketSurface) Close() error {
	f.closed = true
	f.last = nil
	return nil
}

// session is one connected viewer.
type session struct {
	svc    *Service
	out    *socket
	handle *viewer.Handle

	mu  sync.Mutex
	key string
}

func (s *Service) handleViewer(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	out := &socket{conn: conn}
	shell := viewer.NewShell(
		viewer.SurfaceFactoryFunc(func(string) (viewer.Surface, error) {
			return &socketSurface{out: out}, nil
		}),
		viewer.WithLogger(s.opts.Logger),
		viewer.WithBondThreshold(s.opts.BondThreshold),
	)
	h, err := shell.Mount(r.RemoteAddr)
	if err != nil {
		out.sendError(h.Fallback())
		return
	}
	defer h.Unmount()

	sess := &session{svc: s, out: out, handle: h}
	if err := out.send(serverMessage{Type: "session", Session: h.ID}); err != nil {
		log.Printf("live: websocket write: %v", err)
		return
	}
	sess.selectMolecule(s.opts.DefaultMolecule)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		if err := h.Run(ctx, s.opts.FPS); err != nil {
			log.Printf("live: session %s stopped: %v", h.ID, err)
			out.sendError(h.Fallback())
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("live: websocket read: %v", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			out.sendError("invalid message format")
			continue
		}
		sess.dispatch(ctx, msg)
	}
}

func (s *session) dispatch(ctx context.Context, msg clientMessage) {
	switch msg.Type {
	case "select":
		s.selectMolecule(msg.Molecule)
	case "overlay":
		m, _ := s.handle.Molecule()
		s.check(s.handle.Update(m, msg.Overlay))
	case "simulate":
		if msg.Method != "" && !simulation.ValidMethod(msg.Method) {
			s.out.sendError("unknown method: " + msg.Method)
			return
		}
		go s.simulate(ctx, msg.Method)
	case "pointer_enter":
		s.check(s.handle.PointerEnter(msg.Atom))
	case "pointer_leave":
		s.check(s.handle.PointerLeave(msg.Atom))
	case "pick":
		hit, err := s.handle.Pick(msg.X, msg.Y)
		if err != nil {
			s.check(err)
			return
		}
		s.reply(serverMessage{Type: "picked", Atom: &hit})
	default:
		s.out.sendError("unknown message type: " + msg.Type)
	}
}

// selectMolecule switches to a catalog entry, falling back to the default
// molecule for unknown names, and clears any overlay.
func (s *session) selectMolecule(name string) {
	e, ok := molecule.Get(name)
	if !ok {
		e = molecule.GetOrDefault(s.svc.opts.DefaultMolecule)
	}
	s.mu.Lock()
	s.key = e.Key
	s.mu.Unlock()

	s.reply(serverMessage{Type: "selected", Molecule: e.Key})
	s.check(s.handle.Update(e.Molecule(), nil))
}

// simulate asks the backend for the current molecule and applies the result
// if the molecule has not changed in the meantime.
func (s *session) simulate(ctx context.Context, method string) {
	s.mu.Lock()
	key := s.key
	s.mu.Unlock()

	o := s.svc.client.Simulate(ctx, simulation.Request{Molecule: key, Method: method})

	s.mu.Lock()
	current := s.key
	s.mu.Unlock()
	if current != key {
		return
	}

	s.reply(serverMessage{Type: "simulation", Molecule: key, Overlay: o})
	m, _ := s.handle.Molecule()
	s.check(s.handle.Update(m, o))
}

func (s *session) check(err error) {
	if err != nil {
		s.out.sendError(err.Error())
	}
}

func (s *session) reply(msg serverMessage) {
	if err := s.out.send(msg); err != nil {
		log.Printf("live: websocket write: %v", err)
	}
}
