// Package interaction owns per-atom hover state and the rotation angles that
// animate atoms in quantum mode.
package interaction

// RotationStep is the angle in radians added on both local axes per frame.
const RotationStep = 0.01

// HoverScale enlarges the hovered atom's sphere.
const HoverScale = 1.3

// NoHover marks that no atom is hovered.
const NoHover = -1

// Rotation is an orientation about the local X and Y axes, in radians.
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Step returns r advanced by one frame.
func Step(r Rotation) Rotation {
	return Rotation{X: r.X + RotationStep, Y: r.Y + RotationStep}
}

// Snapshot is an immutable copy of the interaction state handed to the
// scene composer.
type Snapshot struct {
	Hovered   int
	Rotations []Rotation
}

// Idle is a snapshot with nothing hovered and no rotation.
func Idle() Snapshot { return Snapshot{Hovered: NoHover} }

// IsHovered reports whether atom i is hovered.
func (s Snapshot) IsHovered(i int) bool {
	return s.Hovered >= 0 && s.Hovered == i
}

// Rotation returns the rotation of atom i, zero when unknown.
func (s Snapshot) Rotation(i int) Rotation {
	if i < 0 || i >= len(s.Rotations) {
		return Rotation{}
	}
	return s.Rotations[i]
}

// State is the mutable interaction state. It has a single owner and is not
// safe for concurrent use.
type State struct {
	hovered   int
	rotations []Rotation
}

// NewState returns a state with no hover and no atoms.
func NewState() *State {
	return &State{hovered: NoHover}
}

// Reset sizes the state for n atoms, zeroing all rotations. A hover index
// that no longer exists is cleared.
func (s *State) Reset(n int) {
	if n < 0 {
		n = 0
	}
	s.rotations = make([]Rotation, n)
	if s.hovered >= n {
		s.hovered = NoHover
	}
}

// Len returns the number of atoms tracked.
func (s *State) Len() int { return len(s.rotations) }

// PointerEnter marks atom i as hovered, replacing any previous hover.
// Out-of-range indexes are ignored.
func (s *State) PointerEnter(i int) {
	if i < 0 || i >= len(s.rotations) {
		return
	}
	s.hovered = i
}

// PointerLeave clears the hover if atom i is the hovered one.
func (s *State) PointerLeave(i int) {
	if s.hovered == i {
		s.hovered = NoHover
	}
}

// ClearHover clears any hover.
func (s *State) ClearHover() { s.hovered = NoHover }

// Hovered returns the hovered atom index or NoHover.
func (s *State) Hovered() int { return s.hovered }

// Advance moves the animation forward one frame. Only glowing atoms rotate.
func (s *State) Advance(glowing bool) {
	if !glowing {
		return
	}
	for i := range s.rotations {
		s.rotations[i] = Step(s.rotations[i])
	}
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	rot := make([]Rotation, len(s.rotations))
	copy(rot, s.rotations)
	return Snapshot{Hovered: s.hovered, Rotations: rot}
}
