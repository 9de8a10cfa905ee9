package render

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ziadkadry99/molview/internal/interaction"
	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/progress"
	"github.com/ziadkadry99/molview/internal/scene"
	"github.com/ziadkadry99/molview/internal/simulation"
)

const (
	DefaultFrames = 36
	DefaultDelay  = 4 // 100ths of a second
)

// TurntableOptions configures Turntable.
type TurntableOptions struct {
	Frames   int
	Width    int
	Height   int
	Delay    int
	Composer scene.Composer
	Progress progress.Reporter
}

// Turntable writes an animated GIF of the molecule with the camera orbiting
// once about the Y axis. Quantum-mode atoms spin as they do in the live
// viewer.
func Turntable(ctx context.Context, w io.Writer, m molecule.Molecule, o *simulation.Overlay, opts TurntableOptions) error {
	if opts.Frames <= 0 {
		opts.Frames = DefaultFrames
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.Width > MaxSize || opts.Height > MaxSize {
		return fmt.Errorf("turntable %dx%d: invalid size", opts.Width, opts.Height)
	}
	rep := opts.Progress
	if rep == nil {
		rep = progress.Nop{}
	}

	state := interaction.NewState()
	state.Reset(len(simulation.ResolveAtoms(m, o)))
	quantum := o.QuantumActive()

	anim := &gif.GIF{LoopCount: 0}
	rep.Start(opts.Frames)
	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		state.Advance(quantum)
		s := opts.Composer.Compose(m, o, state.Snapshot())
		angle := 2 * math.Pi * float64(i) / float64(opts.Frames)
		s.Camera.Position = mgl64.Rotate3DY(angle).Mul3x1(s.Camera.Position)

		anim.Image = append(anim.Image, toPaletted(Paint(s, opts.Width, opts.Height)))
		anim.Delay = append(anim.Delay, opts.Delay)
		rep.Update(i+1, fmt.Sprintf("frame %d/%d", i+1, opts.Frames))
	}
	rep.Finish()

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encoding gif: %w", err)
	}
	return nil
}

func toPaletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(b, palette.Plan9)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}
