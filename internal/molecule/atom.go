package molecule

// Atom is a single element placed in 3D space. Coordinates are in Ångströms.
type Atom struct {
	Symbol string  `json:"symbol"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
}

// Position returns the atom coordinates as an array.
func (a Atom) Position() [3]float64 {
	return [3]float64{a.X, a.Y, a.Z}
}

// Molecule is an ordered list of atoms. Atom order is the identity used by
// bond indices and hover state.
type Molecule struct {
	Name  string `json:"name,omitempty"`
	Atoms []Atom `json:"atoms"`
}

// Len returns the number of atoms.
func (m Molecule) Len() int { return len(m.Atoms) }
