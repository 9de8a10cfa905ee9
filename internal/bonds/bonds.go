// Package bonds infers bonds between atoms from their pairwise distances.
package bonds

import (
	"math"

	"github.com/ziadkadry99/molview/internal/molecule"
)

// DefaultMaxDistance is the bonding threshold in Ångströms.
const DefaultMaxDistance = 2.0

// Bond connects two atoms by index. A is always less than B.
type Bond struct {
	A        int     `json:"a"`
	B        int     `json:"b"`
	Distance float64 `json:"distance"`
}

// Distance returns the Euclidean distance between two atoms.
func Distance(a, b molecule.Atom) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Infer returns a bond for every pair of atoms closer than maxDistance.
// Pairs are enumerated in increasing (i, j) order. Pairs exactly at the
// threshold are not bonded; co-located atoms are. A non-positive maxDistance
// selects DefaultMaxDistance.
func Infer(atoms []molecule.Atom, maxDistance float64) []Bond {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	out := []Bond{}
	for i := 0; i < len(atoms); i++ {
		for j := i + 1; j < len(atoms); j++ {
			d := Distance(atoms[i], atoms[j])
			if d < maxDistance {
				out = append(out, Bond{A: i, B: j, Distance: d})
			}
		}
	}
	return out
}
