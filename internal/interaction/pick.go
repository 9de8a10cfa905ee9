package interaction

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a pointer ray in world space. Dir need not be normalised.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// Target is a pickable sphere.
type Target struct {
	Center mgl64.Vec3
	Radius float64
}

// RayFromScreen unprojects normalised device coordinates (x, y in [-1, 1])
// through the inverse view-projection matrix.
func RayFromScreen(x, y float64, view, proj mgl64.Mat4) Ray {
	inv := proj.Mul4(view).Inv()

	near := inv.Mul4x1(mgl64.Vec4{x, y, -1, 1})
	far := inv.Mul4x1(mgl64.Vec4{x, y, 1, 1})
	near = near.Mul(1 / near[3])
	far = far.Mul(1 / far[3])

	origin := near.Vec3()
	return Ray{Origin: origin, Dir: far.Vec3().Sub(origin).Normalize()}
}

// intersect returns the nearest positive distance along ray to t.
func intersect(ray Ray, t Target) (float64, bool) {
	oc := ray.Origin.Sub(t.Center)
	a := ray.Dir.Dot(ray.Dir)
	if a == 0 {
		return 0, false
	}
	b := 2 * oc.Dot(ray.Dir)
	c := oc.Dot(oc) - t.Radius*t.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	const eps = 1e-9
	if t0 := (-b - sq) / (2 * a); t0 > eps {
		return t0, true
	}
	if t1 := (-b + sq) / (2 * a); t1 > eps {
		return t1, true
	}
	return 0, false
}

// Pick returns the index of the target nearest along the ray, or NoHover.
// Ties go to the lower index.
func Pick(ray Ray, targets []Target) int {
	best := NoHover
	bestT := math.Inf(1)
	for i, t := range targets {
		if d, ok := intersect(ray, t); ok && d < bestT {
			best, bestT = i, d
		}
	}
	return best
}
