package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ziadkadry99/molview/internal/molecule"
)

func TestQuantumActive(t *testing.T) {
	var nilOverlay *Overlay
	if nilOverlay.QuantumActive() {
		t.Error("nil overlay should not be quantum active")
	}
	if (&Overlay{}).QuantumActive() {
		t.Error("overlay without quantum_energy should not be quantum active")
	}
	for _, e := range []float64{-76.28, 0, 12} {
		o := &Overlay{QuantumEnergy: Float(e)}
		if !o.QuantumActive() {
			t.Errorf("quantum_energy=%v should be quantum active", e)
		}
	}
}

func TestOverlayJSONPresence(t *testing.T) {
	var o Overlay
	if err := json.Unmarshal([]byte(`{"quantum_energy": 0, "dipole_moment": [1, 2, 2]}`), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !o.QuantumActive() {
		t.Error("explicit zero quantum_energy should activate quantum mode")
	}
	if o.DipoleMoment == nil || o.DipoleMoment[2] != 2 {
		t.Errorf("DipoleMoment = %v", o.DipoleMoment)
	}

	var empty Overlay
	if err := json.Unmarshal([]byte(`{"success": true}`), &empty); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if empty.QuantumActive() {
		t.Error("missing quantum_energy should not activate quantum mode")
	}
}

func TestResolveAtoms(t *testing.T) {
	m := molecule.GetOrDefault("water").Molecule()
	if got := ResolveAtoms(m, nil); len(got) != 3 {
		t.Errorf("nil overlay: %d atoms, want 3", len(got))
	}
	if got := ResolveAtoms(m, &Overlay{AtomData: []molecule.Atom{}}); len(got) != 3 {
		t.Errorf("empty atom_data: %d atoms, want 3", len(got))
	}
	override := []molecule.Atom{{Symbol: "Fe"}}
	got := ResolveAtoms(m, &Overlay{AtomData: override})
	if len(got) != 1 || got[0].Symbol != "Fe" {
		t.Errorf("atom_data override = %+v", got)
	}
}

func TestDemoResult(t *testing.T) {
	o := DemoResult("pesticide")
	if o.Source != SourceDemo || !o.Success {
		t.Errorf("unexpected demo result: %+v", o)
	}
	if *o.QuantumEnergy != -245.65 {
		t.Errorf("QuantumEnergy = %v, want -245.65", *o.QuantumEnergy)
	}
	if len(o.AtomData) != 6 {
		t.Errorf("AtomData len = %d, want 6", len(o.AtomData))
	}

	unknown := DemoResult("unobtainium")
	if *unknown.QuantumEnergy != -76.28 {
		t.Errorf("unknown molecule should fall back to water, got %v", *unknown.QuantumEnergy)
	}

	caffeine := DemoResult("caffeine")
	if caffeine.AtomData != nil {
		t.Error("generic demo result should not carry atom_data")
	}
	if *caffeine.AgriculturalActivity.PesticideActivityScore != 0.5 {
		t.Errorf("generic score = %v, want 0.5", *caffeine.AgriculturalActivity.PesticideActivityScore)
	}
}

func newBackend(t *testing.T, simulate http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/simulate", simulate)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestWakeAndSimulate(t *testing.T) {
	var got simulateBody
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "quantum_energy": -1.5, "method_used": "vqe"}`))
	})

	c := NewClient(Options{BaseURL: srv.URL, Enabled: true})
	if c.Status().Mode != ModeDemo {
		t.Errorf("initial mode = %q, want demo", c.Status().Mode)
	}
	if err := c.Wake(context.Background()); err != nil {
		t.Fatalf("Wake: %v", err)
	}
	if c.Status().Mode != ModeActive {
		t.Errorf("mode after wake = %q, want active", c.Status().Mode)
	}

	o := c.Simulate(context.Background(), Request{Molecule: "water"})
	if o.Source != SourceBackend {
		t.Errorf("Source = %q, want backend", o.Source)
	}
	if *o.QuantumEnergy != -1.5 {
		t.Errorf("QuantumEnergy = %v, want -1.5", *o.QuantumEnergy)
	}
	if got.Method != "vqe" {
		t.Errorf("method sent = %q, want vqe", got.Method)
	}
	if got.MoleculeString != "O 0 0 0; H 0.76 0.59 0; H -0.76 0.59 0" {
		t.Errorf("molecule_string sent = %q", got.MoleculeString)
	}
}

func TestSimulateFallsBackWhenNotReady(t *testing.T) {
	var calls int32
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	c := NewClient(Options{BaseURL: srv.URL, Enabled: true})
	o := c.Simulate(context.Background(), Request{Molecule: "nutrient"})
	if o.Source != SourceDemo {
		t.Errorf("Source = %q, want demo", o.Source)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("backend called before wake")
	}
}

func TestSimulateFallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"unsuccessful", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": false}`))
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newBackend(t, tt.handler)
			c := NewClient(Options{BaseURL: srv.URL, Enabled: true, SimulateTimeout: 100 * time.Millisecond})
			if err := c.Wake(context.Background()); err != nil {
				t.Fatalf("Wake: %v", err)
			}
			o := c.Simulate(context.Background(), Request{Molecule: "pesticide"})
			if o.Source != SourceDemo {
				t.Errorf("Source = %q, want demo", o.Source)
			}
			if *o.QuantumEnergy != -245.65 {
				t.Errorf("QuantumEnergy = %v, want pesticide demo value", *o.QuantumEnergy)
			}
		})
	}
}

func TestWakeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Enabled: true, WakeTimeout: 50 * time.Millisecond})
	err := c.Wake(context.Background())
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("Wake error = %v, want ErrBackendUnavailable", err)
	}
	if c.Status().Mode != ModeDemo {
		t.Errorf("mode = %q, want demo", c.Status().Mode)
	}
}

func TestDisabledClient(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://example.invalid", Enabled: false})
	if err := c.Wake(context.Background()); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("Wake error = %v, want ErrBackendUnavailable", err)
	}
	if _, err := c.SimulateBackend(context.Background(), Request{Molecule: "water"}); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("SimulateBackend error = %v, want ErrBackendUnavailable", err)
	}
	if o := c.Simulate(context.Background(), Request{Molecule: "water"}); o.Source != SourceDemo {
		t.Errorf("Source = %q, want demo", o.Source)
	}
}

func TestSimulateUsesRequestAtoms(t *testing.T) {
	var got simulateBody
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"success": true}`))
	})
	c := NewClient(Options{BaseURL: srv.URL + "/", Enabled: true, Method: "hf"})
	if err := c.Wake(context.Background()); err != nil {
		t.Fatalf("Wake: %v", err)
	}
	c.Simulate(context.Background(), Request{Atoms: []molecule.Atom{{Symbol: "Zn", X: 1}}})
	if got.MoleculeString != "Zn 1 0 0" {
		t.Errorf("molecule_string = %q", got.MoleculeString)
	}
	if got.Method != "hf" {
		t.Errorf("method = %q, want hf", got.Method)
	}
}

func TestRateLimiterBlocksWhenEmpty(t *testing.T) {
	rl := newRateLimiter(1)
	if err := rl.wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if err := rl.wait(ctx); err == nil || !strings.Contains(err.Error(), "deadline") {
		t.Errorf("second wait error = %v, want deadline exceeded", err)
	}
}

func TestMethods(t *testing.T) {
	ms := Methods()
	if len(ms) != 3 || ms[0].ID != DefaultMethod {
		t.Fatalf("Methods = %+v", ms)
	}
	ms[0].ID = "changed"
	if Methods()[0].ID != DefaultMethod {
		t.Error("Methods returned shared slice")
	}
	for _, id := range []string{"vqe", "hf", "dft"} {
		if !ValidMethod(id) {
			t.Errorf("ValidMethod(%q) = false", id)
		}
	}
	if ValidMethod("ccsd") {
		t.Error("ValidMethod(ccsd) = true")
	}
}
