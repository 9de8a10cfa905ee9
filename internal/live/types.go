package live

import (
	"github.com/ziadkadry99/molview/internal/bonds"
	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/scene"
	"github.com/ziadkadry99/molview/internal/simulation"
)

// moleculeSummary is one row of the catalog listing.
type moleculeSummary struct {
	Key             string            `json:"key"`
	Name            string            `json:"name"`
	Formula         string            `json:"formula"`
	Description     string            `json:"description"`
	Category        molecule.Category `json:"category"`
	AtomCount       int               `json:"atom_count"`
	MolecularWeight float64           `json:"molecular_weight"`
}

type moleculeDetail struct {
	molecule.Entry
	AtomString      string  `json:"atom_string"`
	MolecularWeight float64 `json:"molecular_weight"`
}

type bondsResponse struct {
	Molecule  string       `json:"molecule"`
	Threshold float64      `json:"threshold"`
	Bonds     []bonds.Bond `json:"bonds"`
}

type parseRequest struct {
	MoleculeString string `json:"molecule_string"`
}

type parseResponse struct {
	Atoms      []molecule.Atom `json:"atoms"`
	AtomString string          `json:"atom_string"`
	Records    int             `json:"records"`
	Skipped    int             `json:"skipped"`
}

// sceneRequest picks its atoms from, in order: Atoms, MoleculeString, the
// catalog entry named by Molecule.
type sceneRequest struct {
	Molecule       string              `json:"molecule"`
	Atoms          []molecule.Atom     `json:"atoms"`
	MoleculeString string              `json:"molecule_string"`
	Overlay        *simulation.Overlay `json:"overlay"`
	Hovered        *int                `json:"hovered"`
	BondThreshold  float64             `json:"bond_threshold"`
}

type simulateRequest struct {
	Molecule string          `json:"molecule"`
	Atoms    []molecule.Atom `json:"atoms"`
	Method   string          `json:"method"`
}

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type     string              `json:"type"` // select, overlay, simulate, pointer_enter, pointer_leave, pick
	Molecule string              `json:"molecule,omitempty"`
	Overlay  *simulation.Overlay `json:"overlay,omitempty"`
	Method   string              `json:"method,omitempty"`
	Atom     int                 `json:"atom"`
	X        float64             `json:"x"`
	Y        float64             `json:"y"`
}

// serverMessage is the outgoing WebSocket message format.
type serverMessage struct {
	Type     string              `json:"type"` // session, frame, selected, simulation, picked, error
	Session  string              `json:"session,omitempty"`
	Frame    uint64              `json:"frame,omitempty"`
	Scene    *scene.Scene        `json:"scene,omitempty"`
	Molecule string              `json:"molecule,omitempty"`
	Overlay  *simulation.Overlay `json:"overlay,omitempty"`
	Atom     *int                `json:"atom,omitempty"`
	Error    string              `json:"error,omitempty"`
}
