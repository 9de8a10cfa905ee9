// Package scene composes a molecule, its inferred bonds and an optional
// simulation overlay into a flat list of renderable primitives.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/ziadkadry99/molview/internal/bonds"
	"github.com/ziadkadry99/molview/internal/interaction"
	"github.com/ziadkadry99/molview/internal/molecule"
)

// Kind identifies the type of a primitive.
type Kind string

const (
	KindLight  Kind = "light"
	KindLine   Kind = "line"
	KindSphere Kind = "sphere"
	KindLabel  Kind = "label"
	KindField  Kind = "field"
	KindGrid   Kind = "grid"
)

// LightType distinguishes ambient from point lights.
type LightType string

const (
	LightAmbient LightType = "ambient"
	LightPoint   LightType = "point"
)

// Sphere is an atom.
type Sphere struct {
	Atom              int                  `json:"atom"`
	Symbol            string               `json:"symbol"`
	Center            mgl64.Vec3           `json:"center"`
	Radius            float64              `json:"radius"`
	Color             molecule.RGB         `json:"color"`
	Metalness         float64              `json:"metalness"`
	Roughness         float64              `json:"roughness"`
	Glow              bool                 `json:"glow"`
	Emissive          molecule.RGB         `json:"emissive"`
	EmissiveIntensity float64              `json:"emissive_intensity"`
	Hovered           bool                 `json:"hovered"`
	Rotation          interaction.Rotation `json:"rotation"`
	Transform         mgl64.Mat4           `json:"transform"`
}

// Line is a bond drawn between two atom centres.
type Line struct {
	A     int          `json:"a"`
	B     int          `json:"b"`
	Start mgl64.Vec3   `json:"start"`
	End   mgl64.Vec3   `json:"end"`
	Color molecule.RGB `json:"color"`
	Order int          `json:"order"`
	Width float64      `json:"width"`
}

// Label is text floating above a hovered atom.
type Label struct {
	Atom     int          `json:"atom"`
	Text     string       `json:"text"`
	Position mgl64.Vec3   `json:"position"`
	FontSize float64      `json:"font_size"`
	Color    molecule.RGB `json:"color"`
}

// Light is an ambient or point light.
type Light struct {
	Type      LightType  `json:"type"`
	Position  mgl64.Vec3 `json:"position"`
	Intensity float64    `json:"intensity"`
}

// Field is the decorative translucent wireframe sphere shown in quantum mode.
type Field struct {
	Center    mgl64.Vec3   `json:"center"`
	Radius    float64      `json:"radius"`
	Color     molecule.RGB `json:"color"`
	Opacity   float64      `json:"opacity"`
	Wireframe bool         `json:"wireframe"`
}

// Grid is the reference grid on the XZ plane.
type Grid struct {
	Size      float64 `json:"size"`
	Divisions int     `json:"divisions"`
}

// Primitive is one element of the flat scene list. Exactly one payload field
// matching Kind is set.
type Primitive struct {
	Kind   Kind    `json:"kind"`
	Sphere *Sphere `json:"sphere,omitempty"`
	Line   *Line   `json:"line,omitempty"`
	Label  *Label  `json:"label,omitempty"`
	Light  *Light  `json:"light,omitempty"`
	Field  *Field  `json:"field,omitempty"`
	Grid   *Grid   `json:"grid,omitempty"`
}

// Camera is the default orbit camera.
type Camera struct {
	Position    mgl64.Vec3 `json:"position"`
	Target      mgl64.Vec3 `json:"target"`
	FOV         float64    `json:"fov"`
	Near        float64    `json:"near"`
	Far         float64    `json:"far"`
	MinDistance float64    `json:"min_distance"`
	MaxDistance float64    `json:"max_distance"`
}

// View returns the camera's view matrix.
func (c Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, mgl64.Vec3{0, 1, 0})
}

// Projection returns a perspective projection for the given aspect ratio.
func (c Camera) Projection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Scene is the composed output for one frame.
type Scene struct {
	Molecule      string       `json:"molecule,omitempty"`
	Status        string       `json:"status"`
	QuantumActive bool         `json:"quantum_active"`
	Camera        Camera       `json:"camera"`
	Bonds         []bonds.Bond `json:"bonds"`
	Primitives    []Primitive  `json:"primitives"`
}

// Count returns the number of primitives of kind k.
func (s Scene) Count(k Kind) int {
	n := 0
	for _, p := range s.Primitives {
		if p.Kind == k {
			n++
		}
	}
	return n
}

// Spheres returns the atom spheres in atom order.
func (s Scene) Spheres() []Sphere {
	var out []Sphere
	for _, p := range s.Primitives {
		if p.Kind == KindSphere {
			out = append(out, *p.Sphere)
		}
	}
	return out
}

// Lines returns the bond lines.
func (s Scene) Lines() []Line {
	var out []Line
	for _, p := range s.Primitives {
		if p.Kind == KindLine {
			out = append(out, *p.Line)
		}
	}
	return out
}

// Targets returns the atom spheres as pick targets, indexed by atom.
func (s Scene) Targets() []interaction.Target {
	spheres := s.Spheres()
	targets := make([]interaction.Target, len(spheres))
	for i, sp := range spheres {
		targets[i] = interaction.Target{Center: sp.Center, Radius: sp.Radius}
	}
	return targets
}
