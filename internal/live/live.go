// Package live serves the molecule catalog, scene composition and rendering
// over HTTP, and runs viewer sessions over WebSocket.
package live

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/molview/internal/simulation"
	"github.com/ziadkadry99/molview/internal/viewer"
)

// Options configures a Service.
type Options struct {
	Width           int
	Height          int
	FPS             int
	BondThreshold   float64
	DefaultMolecule string
	Logger          viewer.Logger
}

// Service holds the dependencies shared by the HTTP and WebSocket handlers.
type Service struct {
	client *simulation.Client
	opts   Options
}

// New creates a Service. A nil client serves demo results only.
func New(client *simulation.Client, opts Options) *Service {
	if client == nil {
		client = simulation.NewClient(simulation.Options{})
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Logger == nil {
		opts.Logger = viewer.NopLogger{}
	}
	return &Service{client: client, opts: opts}
}

// RegisterRoutes mounts the live endpoints on r.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Route("/api/molecules", func(r chi.Router) {
		r.Get("/", s.handleListMolecules)
		r.Get("/{name}", s.handleGetMolecule)
		r.Get("/{name}/bonds", s.handleBonds)
	})
	r.Post("/api/parse", s.handleParse)
	r.Post("/api/scene", s.handleScene)
	r.Post("/api/simulate", s.handleSimulate)
	r.Get("/api/methods", s.handleMethods)
	r.Get("/api/render/{name}.png", s.handleRender)
	r.Get("/api/backend/status", s.handleBackendStatus)
	r.Get("/ws/viewer", s.handleViewer)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
