package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/ziadkadry99/molview/internal/bonds"
	"github.com/ziadkadry99/molview/internal/interaction"
	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/simulation"
)

// Fixed presentation values.
const (
	FieldRadius         = 6.0
	GlowIntensity       = 0.2
	LabelOffset         = 0.5
	LabelFontSize       = 0.3
	BondWidthPerOrder   = 2.0
	StatusQuantum       = "Quantum Active"
	StatusClassical     = "Classical View"
	defaultFieldOpacity = 0.1
)

var (
	BondColor  = molecule.RGB{R: 0x66, G: 0x66, B: 0x66}
	FieldColor = molecule.RGB{R: 0x00, G: 0xff, B: 0xff}
	LabelColor = molecule.RGB{R: 0xff, G: 0xff, B: 0xff}
)

// DefaultCamera is the camera every scene starts with.
var DefaultCamera = Camera{
	Position:    mgl64.Vec3{5, 5, 5},
	FOV:         60,
	Near:        0.1,
	Far:         1000,
	MinDistance: 2,
	MaxDistance: 20,
}

// Composer builds scenes. The zero value uses bonds.DefaultMaxDistance.
type Composer struct {
	MaxBondDistance float64
}

// Compose builds a scene with the default bond threshold.
func Compose(m molecule.Molecule, o *simulation.Overlay, view interaction.Snapshot) Scene {
	return Composer{}.Compose(m, o, view)
}

// Compose builds the primitive list for m, with o overriding its atoms when
// present. The result depends only on the arguments.
func (c Composer) Compose(m molecule.Molecule, o *simulation.Overlay, view interaction.Snapshot) Scene {
	threshold := c.MaxBondDistance
	if threshold <= 0 {
		threshold = bonds.DefaultMaxDistance
	}

	atoms := simulation.ResolveAtoms(m, o)
	bondList := bonds.Infer(atoms, threshold)
	quantum := o.QuantumActive()

	s := Scene{
		Molecule:      m.Name,
		Status:        StatusClassical,
		QuantumActive: quantum,
		Camera:        DefaultCamera,
		Bonds:         bondList,
		Primitives:    make([]Primitive, 0, len(atoms)+len(bondList)+6),
	}
	if o != nil {
		s.Status = StatusQuantum
	}
	if len(atoms) == 0 {
		s.Primitives = []Primitive{}
		return s
	}

	s.Primitives = append(s.Primitives,
		Primitive{Kind: KindLight, Light: &Light{Type: LightAmbient, Intensity: 0.6}},
		Primitive{Kind: KindLight, Light: &Light{Type: LightPoint, Position: mgl64.Vec3{10, 10, 10}, Intensity: 1}},
		Primitive{Kind: KindLight, Light: &Light{Type: LightPoint, Position: mgl64.Vec3{-10, -10, -10}, Intensity: 0.5}},
	)

	// Bonds go first so they draw behind atoms.
	for _, b := range bondList {
		a1, a2 := atoms[b.A], atoms[b.B]
		s.Primitives = append(s.Primitives, Primitive{Kind: KindLine, Line: &Line{
			A:     b.A,
			B:     b.B,
			Start: mgl64.Vec3(a1.Position()),
			End:   mgl64.Vec3(a2.Position()),
			Color: BondColor,
			Order: 1,
			Width: BondWidthPerOrder,
		}})
	}

	var label *Label
	for i, a := range atoms {
		sp := atomSphere(i, a, quantum, view)
		s.Primitives = append(s.Primitives, Primitive{Kind: KindSphere, Sphere: &sp})
		if sp.Hovered {
			label = &Label{
				Atom:     i,
				Text:     a.Symbol,
				Position: sp.Center.Add(mgl64.Vec3{0, sp.Radius + LabelOffset, 0}),
				FontSize: LabelFontSize,
				Color:    LabelColor,
			}
		}
	}
	if label != nil {
		s.Primitives = append(s.Primitives, Primitive{Kind: KindLabel, Label: label})
	}

	if quantum {
		s.Primitives = append(s.Primitives, Primitive{Kind: KindField, Field: &Field{
			Radius:    FieldRadius,
			Color:     FieldColor,
			Opacity:   defaultFieldOpacity,
			Wireframe: true,
		}})
	}

	s.Primitives = append(s.Primitives, Primitive{Kind: KindGrid, Grid: &Grid{Size: 10, Divisions: 10}})
	return s
}

func atomSphere(i int, a molecule.Atom, glow bool, view interaction.Snapshot) Sphere {
	el := molecule.Lookup(a.Symbol)
	radius := el.Radius
	hovered := view.IsHovered(i)
	if hovered {
		radius *= interaction.HoverScale
	}

	sp := Sphere{
		Atom:      i,
		Symbol:    a.Symbol,
		Center:    mgl64.Vec3(a.Position()),
		Radius:    radius,
		Color:     el.Color,
		Metalness: 0.3,
		Roughness: 0.4,
		Hovered:   hovered,
	}
	if glow {
		sp.Glow = true
		sp.Emissive = el.Color
		sp.EmissiveIntensity = GlowIntensity
		sp.Rotation = view.Rotation(i)
	}
	sp.Transform = transform(sp.Center, sp.Rotation, radius)
	return sp
}

// transform builds translate * rotateX * rotateY * scale.
func transform(center mgl64.Vec3, r interaction.Rotation, scale float64) mgl64.Mat4 {
	return mgl64.Translate3D(center[0], center[1], center[2]).
		Mul4(mgl64.HomogRotate3DX(r.X)).
		Mul4(mgl64.HomogRotate3DY(r.Y)).
		Mul4(mgl64.Scale3D(scale, scale, scale))
}
