// Package render rasterises composed scenes with a software painter. Raster
// is a viewer surface that needs no display or GPU.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sort"
	"sync"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/scene"
	"github.com/ziadkadry99/molview/internal/viewer"
)

// MaxSize bounds either dimension of a raster.
const MaxSize = 4096

const (
	background = "#10131a"
	gridColor  = "#444444"
	gridCentre = "#888888"
)

var errClosed = errors.New("raster closed")

// Raster is an in-memory render surface. Each Draw replaces the held image.
type Raster struct {
	width, height int

	mu     sync.Mutex
	img    image.Image
	closed bool
}

// NewRaster returns a w x h raster. Sizes outside 1..MaxSize are reported as
// viewer.ErrCapabilityUnavailable.
func NewRaster(w, h int) (*Raster, error) {
	if w <= 0 || h <= 0 || w > MaxSize || h > MaxSize {
		return nil, fmt.Errorf("raster %dx%d: %w", w, h, viewer.ErrCapabilityUnavailable)
	}
	return &Raster{width: w, height: h}, nil
}

// Factory returns a viewer.SurfaceFactory producing w x h rasters.
func Factory(w, h int) viewer.SurfaceFactory {
	return viewer.SurfaceFactoryFunc(func(string) (viewer.Surface, error) {
		return NewRaster(w, h)
	})
}

func (r *Raster) Size() (int, int) { return r.width, r.height }

func (r *Raster) Draw(s scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errClosed
	}
	r.img = Paint(s, r.width, r.height)
	return nil
}

func (r *Raster) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.img = nil
	return nil
}

// Image returns the last drawn image, or nil.
func (r *Raster) Image() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.img
}

// PNG encodes the last drawn image.
func (r *Raster) PNG() ([]byte, error) {
	img := r.Image()
	if img == nil {
		return nil, errors.New("nothing drawn")
	}
	return encodePNG(img)
}

// PNG paints s at w x h and returns it PNG-encoded.
func PNG(s scene.Scene, w, h int) ([]byte, error) {
	if w <= 0 || h <= 0 || w > MaxSize || h > MaxSize {
		return nil, fmt.Errorf("raster %dx%d: %w", w, h, viewer.ErrCapabilityUnavailable)
	}
	return encodePNG(Paint(s, w, h))
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// projector maps world points to pixels.
type projector struct {
	mvp   mgl64.Mat4
	focal float64 // projection scale on y
	w, h  float64
}

func newProjector(cam scene.Camera, w, h int) projector {
	aspect := float64(w) / float64(h)
	proj := cam.Projection(aspect)
	return projector{
		mvp:   proj.Mul4(cam.View()),
		focal: proj.At(1, 1),
		w:     float64(w),
		h:     float64(h),
	}
}

// project returns pixel coordinates and clip-space depth. ok is false for
// points behind the camera.
func (p projector) project(v mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := p.mvp.Mul4x1(v.Vec4(1))
	if clip.W() <= 1e-9 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * p.w
	y = (1 - ndc.Y()) / 2 * p.h
	return x, y, clip.W(), true
}

// pixels converts a world radius at depth to a pixel radius.
func (p projector) pixels(radius, depth float64) float64 {
	return radius * p.focal / depth * p.h / 2
}

// Paint draws s onto a new w x h image. Lines go under spheres, spheres are
// painted back to front, labels go on top.
func Paint(s scene.Scene, w, h int) image.Image {
	dc := gg.NewContext(w, h)
	dc.SetHexColor(background)
	dc.Clear()

	pr := newProjector(s.Camera, w, h)
	ambient, points := lights(s)

	var spheres []scene.Sphere
	var labels []scene.Label
	for _, p := range s.Primitives {
		switch p.Kind {
		case scene.KindGrid:
			drawGrid(dc, pr, *p.Grid)
		case scene.KindField:
			drawField(dc, pr, *p.Field)
		case scene.KindLine:
			drawLine(dc, pr, *p.Line)
		case scene.KindSphere:
			spheres = append(spheres, *p.Sphere)
		case scene.KindLabel:
			labels = append(labels, *p.Label)
		}
	}

	type placed struct {
		sp         scene.Sphere
		x, y, d, r float64
	}
	var order []placed
	for _, sp := range spheres {
		x, y, d, ok := pr.project(sp.Center)
		if !ok {
			continue
		}
		order = append(order, placed{sp, x, y, d, pr.pixels(sp.Radius, d)})
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].d > order[j].d })
	for _, o := range order {
		shade := lambert(o.sp.Center, s.Camera.Position, ambient, points)
		drawSphere(dc, o.sp, o.x, o.y, o.r, shade)
	}

	for _, l := range labels {
		x, y, _, ok := pr.project(l.Position)
		if !ok {
			continue
		}
		dc.SetRGB255(int(l.Color.R), int(l.Color.G), int(l.Color.B))
		dc.DrawStringAnchored(l.Text, x, y, 0.5, 0.5)
	}

	if s.Status != "" {
		dc.SetHexColor("#cccccc")
		dc.DrawString(s.Status, 8, 16)
	}
	return dc.Image()
}

func lights(s scene.Scene) (ambient float64, points []scene.Light) {
	for _, p := range s.Primitives {
		if p.Kind != scene.KindLight {
			continue
		}
		if p.Light.Type == scene.LightAmbient {
			ambient += p.Light.Intensity
		} else {
			points = append(points, *p.Light)
		}
	}
	return ambient, points
}

// lambert approximates the brightness of the sphere face turned to the camera.
func lambert(center, eye mgl64.Vec3, ambient float64, points []scene.Light) float64 {
	normal := eye.Sub(center)
	if normal.Len() == 0 {
		return math.Min(ambient, 1)
	}
	normal = normal.Normalize()
	shade := ambient
	for _, l := range points {
		dir := l.Position.Sub(center)
		if dir.Len() == 0 {
			continue
		}
		shade += l.Intensity * math.Max(0, normal.Dot(dir.Normalize())) * 0.5
	}
	return math.Min(shade, 1.2)
}

func scale(c molecule.RGB, f float64) (float64, float64, float64) {
	clamp := func(v float64) float64 { return math.Max(0, math.Min(1, v)) }
	return clamp(float64(c.R) / 255 * f), clamp(float64(c.G) / 255 * f), clamp(float64(c.B) / 255 * f)
}

func drawSphere(dc *gg.Context, sp scene.Sphere, x, y, r, shade float64) {
	if r <= 0 {
		return
	}
	if sp.Glow {
		er, eg, eb := scale(sp.Emissive, 1)
		dc.SetRGBA(er, eg, eb, sp.EmissiveIntensity)
		dc.DrawCircle(x, y, r*1.35)
		dc.Fill()
	}

	grad := gg.NewRadialGradient(x-r/3, y-r/3, 0, x, y, r)
	hr, hg, hb := scale(sp.Color, shade*1.3)
	mr, mg, mb := scale(sp.Color, shade)
	dr, dg, db := scale(sp.Color, shade*0.45)
	grad.AddColorStop(0, rgba(hr, hg, hb))
	grad.AddColorStop(0.6, rgba(mr, mg, mb))
	grad.AddColorStop(1, rgba(dr, dg, db))
	dc.SetFillStyle(grad)
	dc.DrawCircle(x, y, r)
	dc.Fill()

	if sp.Hovered {
		dc.SetRGB(1, 1, 1)
		dc.SetLineWidth(1.5)
		dc.DrawCircle(x, y, r)
		dc.Stroke()
	}
}

func drawLine(dc *gg.Context, pr projector, l scene.Line) {
	x1, y1, _, ok1 := pr.project(l.Start)
	x2, y2, _, ok2 := pr.project(l.End)
	if !ok1 || !ok2 {
		return
	}
	dc.SetRGB255(int(l.Color.R), int(l.Color.G), int(l.Color.B))
	dc.SetLineWidth(l.Width)
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()
}

func drawGrid(dc *gg.Context, pr projector, g scene.Grid) {
	if g.Divisions <= 0 || g.Size <= 0 {
		return
	}
	half := g.Size / 2
	step := g.Size / float64(g.Divisions)
	dc.SetLineWidth(1)
	for i := 0; i <= g.Divisions; i++ {
		v := -half + float64(i)*step
		if i*2 == g.Divisions {
			dc.SetHexColor(gridCentre)
		} else {
			dc.SetHexColor(gridColor)
		}
		segment(dc, pr, mgl64.Vec3{v, 0, -half}, mgl64.Vec3{v, 0, half})
		segment(dc, pr, mgl64.Vec3{-half, 0, v}, mgl64.Vec3{half, 0, v})
	}
}

func segment(dc *gg.Context, pr projector, a, b mgl64.Vec3) {
	x1, y1, _, ok1 := pr.project(a)
	x2, y2, _, ok2 := pr.project(b)
	if !ok1 || !ok2 {
		return
	}
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()
}

// drawField draws the wireframe as latitude and longitude rings.
func drawField(dc *gg.Context, pr projector, f scene.Field) {
	r, g, b := scale(f.Color, 1)
	dc.SetRGBA(r, g, b, f.Opacity)
	dc.SetLineWidth(1)

	const rings, steps = 8, 48
	for i := 1; i < rings; i++ {
		lat := math.Pi * float64(i) / rings
		y := f.Radius * math.Cos(lat)
		rr := f.Radius * math.Sin(lat)
		ring(dc, pr, steps, func(t float64) mgl64.Vec3 {
			return f.Center.Add(mgl64.Vec3{rr * math.Cos(t), y, rr * math.Sin(t)})
		})
	}
	for i := 0; i < rings; i++ {
		lon := math.Pi * float64(i) / rings
		ring(dc, pr, steps, func(t float64) mgl64.Vec3 {
			return f.Center.Add(mgl64.Vec3{
				f.Radius * math.Sin(t) * math.Cos(lon),
				f.Radius * math.Cos(t),
				f.Radius * math.Sin(t) * math.Sin(lon),
			})
		})
	}
}

func ring(dc *gg.Context, pr projector, steps int, at func(t float64) mgl64.Vec3) {
	for i := 0; i < steps; i++ {
		t0 := 2 * math.Pi * float64(i) / float64(steps)
		t1 := 2 * math.Pi * float64(i+1) / float64(steps)
		segment(dc, pr, at(t0), at(t1))
	}
}

func rgba(r, g, b float64) color.Color {
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}
