// Package simulation holds the result shape returned by the quantum
// simulation backend and the client that fetches it.
package simulation

import "github.com/ziadkadry99/molview/internal/molecule"

// Source records where an Overlay came from.
type Source string

const (
	SourceBackend Source = "backend"
	SourceDemo    Source = "demo"
)

// AgriculturalActivity is the backend's agricultural prediction block.
type AgriculturalActivity struct {
	PesticideActivityScore    *float64 `json:"pesticide_activity_score,omitempty"`
	BioavailabilityPrediction string   `json:"bioavailability_prediction,omitempty"`
}

// Overlay is a simulation result. Every field is optional; consumers treat it
// as read-only.
type Overlay struct {
	Success              bool                  `json:"success"`
	AtomData             []molecule.Atom       `json:"atom_data,omitempty"`
	QuantumEnergy        *float64              `json:"quantum_energy,omitempty"`
	ClassicalEnergy      *float64              `json:"classical_energy,omitempty"`
	DipoleMoment         *[3]float64           `json:"dipole_moment,omitempty"`
	ComputationTimeMS    float64               `json:"computation_time_ms,omitempty"`
	MethodUsed           string                `json:"method_used,omitempty"`
	AgriculturalActivity *AgriculturalActivity `json:"agricultural_activity,omitempty"`
	Error                string                `json:"error,omitempty"`
	Source               Source                `json:"source,omitempty"`
}

// QuantumActive reports whether quantum visual mode is on. Only the presence
// of quantum_energy matters, never its sign or magnitude.
func (o *Overlay) QuantumActive() bool {
	return o != nil && o.QuantumEnergy != nil
}

// ResolveAtoms returns the overlay atoms when present and non-empty, else the
// molecule's own atoms.
func ResolveAtoms(m molecule.Molecule, o *Overlay) []molecule.Atom {
	if o != nil && len(o.AtomData) > 0 {
		return o.AtomData
	}
	return m.Atoms
}

// Float returns a pointer to v, for building overlays in literals.
func Float(v float64) *float64 { return &v }
