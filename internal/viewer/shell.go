// Package viewer owns the render surface lifecycle and the frame loop that
// ties the interaction state to the scene composer.
package viewer

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/ziadkadry99/molview/internal/interaction"
	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/scene"
	"github.com/ziadkadry99/molview/internal/simulation"
)

// DefaultFPS is used by Run when fps is not positive.
const DefaultFPS = 60

// Shell mounts viewers onto surfaces produced by its factory.
type Shell struct {
	factory  SurfaceFactory
	composer scene.Composer
	logger   Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the shell's logger.
func WithLogger(l Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBondThreshold sets the bond distance used when composing.
func WithBondThreshold(d float64) Option {
	return func(s *Shell) { s.composer.MaxBondDistance = d }
}

// NewShell creates a shell that acquires surfaces from factory.
func NewShell(factory SurfaceFactory, opts ...Option) *Shell {
	s := &Shell{factory: factory, logger: NopLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mount acquires a surface for container and draws the first frame. The
// returned handle is never nil. If the surface cannot be created or the first
// frame fails, the handle is left Failed, any acquired surface is released,
// and the error wraps ErrCapabilityUnavailable. A Failed handle is not retried;
// mount again for a fresh attempt.
func (s *Shell) Mount(container string) (*Handle, error) {
	h := &Handle{
		ID:          uuid.New().String(),
		Container:   container,
		state:       Initializing,
		composer:    s.composer,
		logger:      s.logger,
		interaction: interaction.NewState(),
		stop:        make(chan struct{}),
	}
	s.logger.Debugf("mounting %s on %q", h.ID, container)

	if s.factory == nil {
		return h, h.fail(fmt.Errorf("creating surface: no factory: %w", ErrCapabilityUnavailable))
	}
	surface, err := s.factory.NewSurface(container)
	if err != nil {
		return h, h.fail(fmt.Errorf("creating surface: %w: %w", ErrCapabilityUnavailable, err))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.surface = surface
	if err := h.drawLocked(); err != nil {
		return h, err
	}
	h.state = Active
	s.logger.Infof("mounted %s", h.ID)
	return h, nil
}

// Handle is one mounted viewer. All methods are safe for concurrent use; the
// frame loop and event delivery are serialised by the handle.
type Handle struct {
	ID        string
	Container string

	mu          sync.Mutex
	state       State
	err         error
	surface     Surface
	composer    scene.Composer
	logger      Logger
	mol         molecule.Molecule
	overlay     *simulation.Overlay
	atoms       []molecule.Atom
	interaction *interaction.State
	last        scene.Scene
	frames      uint64

	stop     chan struct{}
	stopOnce sync.Once
}

// Status returns the current lifecycle state.
func (h *Handle) Status() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Err returns the error that moved the handle to Failed, if any.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Fallback returns the message to display instead of the scene, or "" while
// the handle is not Failed.
func (h *Handle) Fallback() string {
	if h.Status() == Failed {
		return FallbackMessage
	}
	return ""
}

// Frames returns the number of frames drawn.
func (h *Handle) Frames() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Scene returns the most recently drawn scene.
func (h *Handle) Scene() scene.Scene {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Molecule returns the current molecule and overlay.
func (h *Handle) Molecule() (molecule.Molecule, *simulation.Overlay) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mol, h.overlay
}

// Update replaces the molecule and overlay and redraws. Interaction state is
// reset when the rendered atom list changes.
func (h *Handle) Update(m molecule.Molecule, o *simulation.Overlay) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Active {
		return ErrNotMounted
	}

	h.mol = m
	h.overlay = o
	atoms := simulation.ResolveAtoms(m, o)
	if !slices.Equal(atoms, h.atoms) || h.interaction.Len() != len(atoms) {
		h.atoms = slices.Clone(atoms)
		h.interaction.Reset(len(atoms))
	}
	return h.drawLocked()
}

// PointerEnter hovers atom i.
func (h *Handle) PointerEnter(i int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Active {
		return ErrNotMounted
	}
	h.interaction.PointerEnter(i)
	return nil
}

// PointerLeave clears the hover on atom i.
func (h *Handle) PointerLeave(i int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Active {
		return ErrNotMounted
	}
	h.interaction.PointerLeave(i)
	return nil
}

// Pick casts a ray through normalised device coordinates (x, y in [-1, 1])
// against the last drawn scene and hovers the nearest atom hit. It returns
// the atom index or interaction.NoHover.
func (h *Handle) Pick(x, y float64) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Active {
		return interaction.NoHover, ErrNotMounted
	}

	aspect := 1.0
	if sz, ok := h.surface.(Sizer); ok {
		if w, ht := sz.Size(); w > 0 && ht > 0 {
			aspect = float64(w) / float64(ht)
		}
	}
	cam := h.last.Camera
	ray := interaction.RayFromScreen(x, y, cam.View(), cam.Projection(aspect))
	hit := interaction.Pick(ray, h.last.Targets())
	if hit == interaction.NoHover {
		h.interaction.ClearHover()
	} else {
		h.interaction.PointerEnter(hit)
	}
	return hit, nil
}

// Frame advances the animation one step, then composes and draws. After
// Unmount, or once the handle has Failed, it does nothing and returns
// ErrNotMounted.
func (h *Handle) Frame() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Active {
		return ErrNotMounted
	}
	h.interaction.Advance(h.overlay.QuantumActive())
	return h.drawLocked()
}

// Run drives Frame at fps until ctx is done, the handle is unmounted, or a
// frame fails. A failed frame is returned; the other exits return nil.
func (h *Handle) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.stop:
			return nil
		case <-ticker.C:
			if err := h.Frame(); err != nil {
				if h.Status() == Failed {
					return err
				}
				return nil
			}
		}
	}
}

// Unmount stops the frame loop and releases the surface. It is safe to call
// more than once and from any state.
func (h *Handle) Unmount() error {
	h.stopOnce.Do(func() { close(h.stop) })

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == Active {
		h.state = Uninitialized
	}
	return h.releaseLocked()
}

// Done is closed once the handle is unmounted.
func (h *Handle) Done() <-chan struct{} { return h.stop }

func (h *Handle) drawLocked() error {
	s := h.composer.Compose(h.mol, h.overlay, h.interaction.Snapshot())
	if err := h.surface.Draw(s); err != nil {
		return h.failLocked(fmt.Errorf("drawing frame: %w: %w", ErrCapabilityUnavailable, err))
	}
	h.last = s
	h.frames++
	return nil
}

func (h *Handle) fail(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.failLocked(err)
}

// failLocked moves to Failed, releases the surface and returns err.
func (h *Handle) failLocked(err error) error {
	h.state = Failed
	h.err = err
	h.logger.Errorf("%s failed: %v", h.ID, err)
	if rerr := h.releaseLocked(); rerr != nil {
		h.logger.Warnf("%s: releasing surface: %v", h.ID, rerr)
	}
	h.stopOnce.Do(func() { close(h.stop) })
	return err
}

func (h *Handle) releaseLocked() error {
	if h.surface == nil {
		return nil
	}
	err := h.surface.Close()
	h.surface = nil
	if err != nil {
		return fmt.Errorf("closing surface: %w", err)
	}
	h.logger.Debugf("%s released surface", h.ID)
	return nil
}

// Rotation returns the current rotation for atom i.
func (h *Handle) Rotation(i int) interaction.Rotation {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interaction.Snapshot().Rotation(i)
}

// NDC converts pixel coordinates on a w x h surface to normalised device
// coordinates.
func NDC(px, py float64, w, h int) mgl64.Vec2 {
	if w <= 0 || h <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{2*px/float64(w) - 1, 1 - 2*py/float64(h)}
}
