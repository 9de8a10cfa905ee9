package viewer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ziadkadry99/molview/internal/interaction"
	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/scene"
	"github.com/ziadkadry99/molview/internal/simulation"
)

type fakeSurface struct {
	mu      sync.Mutex
	draws   int
	closed  int
	failAt  int // fail on this draw number (1-based), 0 never
	scenes  []scene.Scene
	drawErr error
}

func (f *fakeSurface) Draw(s scene.Scene) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed > 0 {
		panic("draw on closed surface")
	}
	f.draws++
	if f.failAt > 0 && f.draws >= f.failAt {
		return f.drawErr
	}
	f.scenes = append(f.scenes, s)
	return nil
}

func (f *fakeSurface) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeSurface) Size() (int, int) { return 100, 100 }

func (f *fakeSurface) counts() (draws, closed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draws, f.closed
}

func mountFake(t *testing.T, surf *fakeSurface) *Handle {
	t.Helper()
	shell := NewShell(SurfaceFactoryFunc(func(string) (Surface, error) { return surf, nil }))
	h, err := shell.Mount("test")
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return h
}

func water() molecule.Molecule {
	return molecule.GetOrDefault("water").Molecule()
}

func TestMountActive(t *testing.T) {
	surf := &fakeSurface{}
	h := mountFake(t, surf)

	if h.Status() != Active {
		t.Errorf("Status = %v, want active", h.Status())
	}
	if h.ID == "" {
		t.Error("ID is empty")
	}
	if draws, _ := surf.counts(); draws != 1 {
		t.Errorf("draws after mount = %d, want 1", draws)
	}
	if h.Fallback() != "" {
		t.Errorf("Fallback = %q, want empty", h.Fallback())
	}
}

func TestMountSurfaceCreationFails(t *testing.T) {
	calls := 0
	shell := NewShell(SurfaceFactoryFunc(func(string) (Surface, error) {
		calls++
		return nil, errors.New("no gl")
	}))
	h, err := shell.Mount("test")
	if !errors.Is(err, ErrCapabilityUnavailable) {
		t.Fatalf("err = %v, want ErrCapabilityUnavailable", err)
	}
	if h == nil {
		t.Fatal("handle is nil")
	}
	if h.Status() != Failed {
		t.Errorf("Status = %v, want failed", h.Status())
	}
	if h.Fallback() != FallbackMessage {
		t.Errorf("Fallback = %q, want %q", h.Fallback(), FallbackMessage)
	}

	// Failed is terminal: no retry from frame or update.
	if err := h.Frame(); !errors.Is(err, ErrNotMounted) {
		t.Errorf("Frame err = %v, want ErrNotMounted", err)
	}
	if err := h.Update(water(), nil); !errors.Is(err, ErrNotMounted) {
		t.Errorf("Update err = %v, want ErrNotMounted", err)
	}
	if calls != 1 {
		t.Errorf("factory calls = %d, want 1", calls)
	}
	if err := h.Unmount(); err != nil {
		t.Errorf("Unmount: %v", err)
	}
}

func TestMountFirstFrameFailsReleasesSurface(t *testing.T) {
	surf := &fakeSurface{failAt: 1, drawErr: errors.New("context lost")}
	shell := NewShell(SurfaceFactoryFunc(func(string) (Surface, error) { return surf, nil }))

	h, err := shell.Mount("test")
	if !errors.Is(err, ErrCapabilityUnavailable) {
		t.Fatalf("err = %v, want ErrCapabilityUnavailable", err)
	}
	if h.Status() != Failed {
		t.Errorf("Status = %v, want failed", h.Status())
	}
	if _, closed := surf.counts(); closed != 1 {
		t.Errorf("closed = %d, want 1", closed)
	}
	h.Unmount()
	if _, closed := surf.counts(); closed != 1 {
		t.Errorf("closed after unmount = %d, want 1", closed)
	}
}

func TestNilFactory(t *testing.T) {
	h, err := NewShell(nil).Mount("x")
	if !errors.Is(err, ErrCapabilityUnavailable) {
		t.Errorf("err = %v, want ErrCapabilityUnavailable", err)
	}
	if h.Status() != Failed {
		t.Errorf("Status = %v, want failed", h.Status())
	}
}

func TestUpdateComposes(t *testing.T) {
	surf := &fakeSurface{}
	h := mountFake(t, surf)

	if err := h.Update(water(), nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	s := h.Scene()
	if got := s.Count(scene.KindSphere); got != 3 {
		t.Errorf("spheres = %d, want 3", got)
	}
	if got := len(s.Bonds); got != 3 {
		t.Errorf("bonds = %d, want 3", got)
	}
}

func TestFrameAdvancesOnlyInQuantumMode(t *testing.T) {
	surf := &fakeSurface{}
	h := mountFake(t, surf)
	h.Update(water(), nil)

	h.Frame()
	if r := h.Rotation(0); r != (interaction.Rotation{}) {
		t.Errorf("classical rotation = %+v, want zero", r)
	}

	o := &simulation.Overlay{Success: true, QuantumEnergy: simulation.Float(-76.28)}
	h.Update(water(), o)
	h.Frame()
	h.Frame()
	want := interaction.Step(interaction.Step(interaction.Rotation{}))
	if r := h.Rotation(0); r != want {
		t.Errorf("quantum rotation = %+v, want %+v", r, want)
	}
	sp := h.Scene().Spheres()[0]
	if sp.Rotation != want {
		t.Errorf("scene rotation = %+v, want %+v", sp.Rotation, want)
	}
}

func TestUpdateResetsInteractionOnNewAtoms(t *testing.T) {
	h := mountFake(t, &fakeSurface{})
	o := &simulation.Overlay{Success: true, QuantumEnergy: simulation.Float(-1)}
	h.Update(water(), o)
	h.PointerEnter(2)
	h.Frame()

	// Same atoms keep state.
	h.Update(water(), o)
	if h.Rotation(0) == (interaction.Rotation{}) {
		t.Error("rotation reset on identical atoms")
	}

	single := molecule.Molecule{Atoms: []molecule.Atom{{Symbol: "C"}}}
	h.Update(single, nil)
	if h.Rotation(0) != (interaction.Rotation{}) {
		t.Error("rotation not reset on new atoms")
	}
	if got := h.Scene().Count(scene.KindLabel); got != 0 {
		t.Errorf("labels = %d, want 0 after stale hover cleared", got)
	}
}

func TestHoverShowsLabel(t *testing.T) {
	h := mountFake(t, &fakeSurface{})
	h.Update(water(), nil)

	h.PointerEnter(1)
	h.Frame()
	if got := h.Scene().Count(scene.KindLabel); got != 1 {
		t.Errorf("labels = %d, want 1", got)
	}
	h.PointerLeave(1)
	h.Frame()
	if got := h.Scene().Count(scene.KindLabel); got != 0 {
		t.Errorf("labels = %d, want 0", got)
	}
}

func TestPickCenterHitsOxygen(t *testing.T) {
	h := mountFake(t, &fakeSurface{})
	h.Update(water(), nil)

	hit, err := h.Pick(0, 0)
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if hit != 0 {
		t.Errorf("hit = %d, want 0", hit)
	}
	h.Frame()
	if !h.Scene().Spheres()[0].Hovered {
		t.Error("oxygen not hovered after pick")
	}

	miss, _ := h.Pick(0.95, -0.95)
	if miss != interaction.NoHover {
		t.Errorf("corner hit = %d, want NoHover", miss)
	}
}

func TestUnmountThenFrame(t *testing.T) {
	surf := &fakeSurface{}
	h := mountFake(t, surf)
	h.Update(water(), nil)
	before := h.Frames()

	if err := h.Unmount(); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	if err := h.Frame(); !errors.Is(err, ErrNotMounted) {
		t.Errorf("Frame err = %v, want ErrNotMounted", err)
	}
	if h.Frames() != before {
		t.Errorf("frames = %d, want %d", h.Frames(), before)
	}
	draws, closed := surf.counts()
	if draws != int(before) {
		t.Errorf("draws = %d, want %d", draws, before)
	}
	if closed != 1 {
		t.Errorf("closed = %d, want 1", closed)
	}
	if err := h.Unmount(); err != nil {
		t.Errorf("second Unmount: %v", err)
	}
	if _, closed := surf.counts(); closed != 1 {
		t.Errorf("closed after second unmount = %d, want 1", closed)
	}
}

func TestRunStopsOnUnmount(t *testing.T) {
	surf := &fakeSurface{}
	h := mountFake(t, surf)
	h.Update(water(), nil)

	done := make(chan error, 1)
	go func() { done <- h.Run(context.Background(), 200) }()

	deadline := time.After(2 * time.Second)
	for h.Frames() < 5 {
		select {
		case <-deadline:
			t.Fatal("frame loop did not run")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	h.Unmount()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Unmount")
	}

	draws, _ := surf.counts()
	time.Sleep(30 * time.Millisecond)
	if after, _ := surf.counts(); after != draws {
		t.Errorf("draws grew from %d to %d after unmount", draws, after)
	}
}

func TestRunReturnsFrameFailure(t *testing.T) {
	surf := &fakeSurface{failAt: 3, drawErr: errors.New("lost")}
	h := mountFake(t, surf)

	err := h.Run(context.Background(), 500)
	if !errors.Is(err, ErrCapabilityUnavailable) {
		t.Errorf("Run err = %v, want ErrCapabilityUnavailable", err)
	}
	if h.Status() != Failed {
		t.Errorf("Status = %v, want failed", h.Status())
	}
	if _, closed := surf.counts(); closed != 1 {
		t.Errorf("closed = %d, want 1", closed)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	h := mountFake(t, &fakeSurface{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.Run(ctx, 10); err != nil {
		t.Errorf("Run: %v", err)
	}
	h.Unmount()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNDC(t *testing.T) {
	v := NDC(50, 50, 100, 100)
	if v[0] != 0 || v[1] != 0 {
		t.Errorf("NDC centre = %v, want (0,0)", v)
	}
	v = NDC(0, 0, 100, 100)
	if v[0] != -1 || v[1] != 1 {
		t.Errorf("NDC top-left = %v, want (-1,1)", v)
	}
}
