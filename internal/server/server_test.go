package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type probeRoutes struct{}

func (probeRoutes) RegisterRoutes(r chi.Router) {
	r.Get("/probe", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Deadline(); ok {
			w.Write([]byte("bounded"))
			return
		}
		w.Write([]byte("unbounded"))
	})
}

func TestHealthCheck(t *testing.T) {
	srv := New(Config{Port: 0})

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{Port: 0, AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestFeatureRoutesAndTimeout(t *testing.T) {
	srv := New(Config{Port: 0}, probeRoutes{})

	req := httptest.NewRequest("GET", "/probe", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if got := w.Body.String(); got != "bounded" {
		t.Errorf("plain request: got %q, want bounded", got)
	}

	req = httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if got := w.Body.String(); got != "unbounded" {
		t.Errorf("upgrade request: got %q, want unbounded", got)
	}
}

func TestShutdownWithoutStart(t *testing.T) {
	srv := New(Config{Port: 0})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
