package render

import (
	"bytes"
	"context"
	"errors"
	"image/gif"
	"image/png"
	"testing"

	"github.com/ziadkadry99/molview/internal/interaction"
	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/progress"
	"github.com/ziadkadry99/molview/internal/scene"
	"github.com/ziadkadry99/molview/internal/simulation"
	"github.com/ziadkadry99/molview/internal/viewer"
)

func water() molecule.Molecule {
	return molecule.GetOrDefault("water").Molecule()
}

func TestNewRasterRejectsBadSizes(t *testing.T) {
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, -1}, {MaxSize + 1, 10}} {
		if _, err := NewRaster(sz[0], sz[1]); !errors.Is(err, viewer.ErrCapabilityUnavailable) {
			t.Errorf("NewRaster(%d, %d) err = %v, want ErrCapabilityUnavailable", sz[0], sz[1], err)
		}
	}
}

func TestRasterDrawsScene(t *testing.T) {
	r, err := NewRaster(200, 200)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	if err := r.Draw(scene.Compose(water(), nil, interaction.Idle())); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	data, err := r.PNG()
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("bounds = %v, want 200x200", b)
	}

	// Oxygen sits at the origin, which projects to the centre.
	cr, cg, _, _ := img.At(100, 100).RGBA()
	if cr <= cg {
		t.Errorf("centre pixel is not red: r=%d g=%d", cr>>8, cg>>8)
	}
}

func TestRasterClosed(t *testing.T) {
	r, _ := NewRaster(10, 10)
	r.Close()
	if err := r.Draw(scene.Scene{}); err == nil {
		t.Error("Draw after Close succeeded")
	}
	if _, err := r.PNG(); err == nil {
		t.Error("PNG after Close succeeded")
	}
}

func TestPaintEmptyScene(t *testing.T) {
	img := Paint(scene.Compose(molecule.Molecule{}, nil, interaction.Idle()), 32, 24)
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("bounds = %v, want 32x24", b)
	}
}

func TestPaintQuantumScene(t *testing.T) {
	o := &simulation.Overlay{Success: true, QuantumEnergy: simulation.Float(-76.28)}
	view := interaction.Snapshot{Hovered: 0}
	data, err := PNG(scene.Compose(water(), o, view), 64, 64)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty png")
	}
}

func TestFactoryMountsViewer(t *testing.T) {
	h, err := viewer.NewShell(Factory(120, 80)).Mount("cli")
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	defer h.Unmount()
	if h.Status() != viewer.Active {
		t.Errorf("Status = %v, want active", h.Status())
	}
	if err := h.Update(water(), nil); err != nil {
		t.Errorf("Update: %v", err)
	}
}

func TestFactoryBadSizeFailsMount(t *testing.T) {
	h, err := viewer.NewShell(Factory(0, 0)).Mount("cli")
	if !errors.Is(err, viewer.ErrCapabilityUnavailable) {
		t.Errorf("err = %v, want ErrCapabilityUnavailable", err)
	}
	if h.Fallback() != viewer.FallbackMessage {
		t.Errorf("Fallback = %q", h.Fallback())
	}
}

type countingReporter struct {
	progress.Nop
	updates int
}

func (c *countingReporter) Update(int, string) { c.updates++ }

func TestTurntable(t *testing.T) {
	var buf bytes.Buffer
	rep := &countingReporter{}
	err := Turntable(context.Background(), &buf, water(), nil, TurntableOptions{
		Frames:   4,
		Width:    48,
		Height:   48,
		Progress: rep,
	})
	if err != nil {
		t.Fatalf("Turntable: %v", err)
	}

	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	if len(g.Image) != 4 {
		t.Errorf("frames = %d, want 4", len(g.Image))
	}
	if g.Delay[0] != DefaultDelay {
		t.Errorf("delay = %d, want %d", g.Delay[0], DefaultDelay)
	}
	if rep.updates != 4 {
		t.Errorf("progress updates = %d, want 4", rep.updates)
	}
}

func TestTurntableCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := Turntable(ctx, &buf, water(), nil, TurntableOptions{Frames: 2, Width: 8, Height: 8})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestTurntableBadSize(t *testing.T) {
	var buf bytes.Buffer
	if err := Turntable(context.Background(), &buf, water(), nil, TurntableOptions{}); err == nil {
		t.Error("Turntable with zero size succeeded")
	}
}
