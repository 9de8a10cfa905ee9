package simulation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ziadkadry99/molview/internal/molecule"
)

// ErrBackendUnavailable is returned when the backend has not answered a wake
// probe or is disabled.
var ErrBackendUnavailable = errors.New("simulation backend unavailable")

// Default timeouts for the two backend calls.
const (
	DefaultWakeTimeout     = 60 * time.Second
	DefaultSimulateTimeout = 15 * time.Second
	DefaultMethod          = "vqe"
)

// Options configures a Client.
type Options struct {
	BaseURL         string
	Enabled         bool
	WakeTimeout     time.Duration
	SimulateTimeout time.Duration
	Method          string
	MaxPerMinute    int // 0 disables rate limiting
	HTTPClient      *http.Client
}

// Mode describes the backend state shown to users.
type Mode string

const (
	ModeWaking Mode = "waking"
	ModeActive Mode = "active"
	ModeDemo   Mode = "demo"
)

// Status is a snapshot of the client's view of the backend.
type Status struct {
	Mode    Mode   `json:"mode"`
	Ready   bool   `json:"ready"`
	BaseURL string `json:"base_url,omitempty"`
}

// Request asks the backend to simulate a molecule. Atoms override the
// catalog atoms for Molecule when non-empty.
type Request struct {
	Molecule string
	Atoms    []molecule.Atom
	Method   string
}

type simulateBody struct {
	MoleculeString string `json:"molecule_string"`
	Method         string `json:"method"`
}

// Client talks to the simulation backend and falls back to demo data
// whenever the backend cannot deliver a successful result in time.
type Client struct {
	baseURL         string
	enabled         bool
	wakeTimeout     time.Duration
	simulateTimeout time.Duration
	method          string
	http            *http.Client
	limiter         *rateLimiter

	mu     sync.RWMutex
	ready  bool
	waking bool
}

// NewClient creates a Client with defaults filled in.
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(opts.BaseURL, "/"),
		enabled:         opts.Enabled && opts.BaseURL != "",
		wakeTimeout:     opts.WakeTimeout,
		simulateTimeout: opts.SimulateTimeout,
		method:          opts.Method,
		http:            opts.HTTPClient,
	}
	if c.wakeTimeout <= 0 {
		c.wakeTimeout = DefaultWakeTimeout
	}
	if c.simulateTimeout <= 0 {
		c.simulateTimeout = DefaultSimulateTimeout
	}
	if c.method == "" {
		c.method = DefaultMethod
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if opts.MaxPerMinute > 0 {
		c.limiter = newRateLimiter(opts.MaxPerMinute)
	}
	return c
}

// Status reports whether the backend is waking, active, or replaced by demo data.
func (c *Client) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := Status{Ready: c.ready, BaseURL: c.baseURL}
	switch {
	case c.waking:
		s.Mode = ModeWaking
	case c.ready:
		s.Mode = ModeActive
	default:
		s.Mode = ModeDemo
	}
	return s
}

// Wake probes <base>/health within the wake timeout and records whether the
// backend is ready. A failed probe leaves the client in demo mode.
func (c *Client) Wake(ctx context.Context) error {
	if !c.enabled {
		return ErrBackendUnavailable
	}

	c.setState(false, true)
	ctx, cancel := context.WithTimeout(ctx, c.wakeTimeout)
	defer cancel()

	err := c.probe(ctx)
	c.setState(err == nil, false)
	if err != nil {
		log.Printf("simulation: backend unavailable, demo mode active: %v", err)
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	log.Printf("simulation: backend ready at %s", c.baseURL)
	return nil
}

func (c *Client) probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("creating health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) setState(ready, waking bool) {
	c.mu.Lock()
	c.ready = ready
	c.waking = waking
	c.mu.Unlock()
}

// Simulate returns a simulation result for req. It never fails: when the
// backend is not ready, errors, times out, or reports success=false, the demo
// result for req.Molecule is returned instead.
func (c *Client) Simulate(ctx context.Context, req Request) *Overlay {
	if !c.Status().Ready {
		return DemoResult(req.Molecule)
	}

	result, err := c.SimulateBackend(ctx, req)
	if err != nil {
		log.Printf("simulation: using demo data for %q: %v", req.Molecule, err)
		return DemoResult(req.Molecule)
	}
	return result
}

// SimulateBackend posts req to <base>/simulate within the simulate timeout.
// Unlike Simulate it reports failures instead of falling back.
func (c *Client) SimulateBackend(ctx context.Context, req Request) (*Overlay, error) {
	if !c.enabled {
		return nil, ErrBackendUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.simulateTimeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	atoms := req.Atoms
	if len(atoms) == 0 {
		atoms = molecule.GetOrDefault(req.Molecule).Atoms
	}
	method := req.Method
	if method == "" {
		method = c.method
	}

	body, err := json.Marshal(simulateBody{
		MoleculeString: molecule.FormatMoleculeString(atoms),
		Method:         method,
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling simulate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/simulate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating simulate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("simulate request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading simulate response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result Overlay
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decoding simulate response: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("backend reported an unsuccessful simulation")
	}
	result.Source = SourceBackend
	return &result, nil
}
