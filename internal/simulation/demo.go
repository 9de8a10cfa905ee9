package simulation

import "github.com/ziadkadry99/molview/internal/molecule"

type demoValues struct {
	classical, quantum float64
	dipole             [3]float64
	timeMS             float64
	score              float64
	bioavailability    string
	withAtoms          bool
}

var demoResults = map[string]demoValues{
	"water":     {classical: -76.3, quantum: -76.28, dipole: [3]float64{0, 0, 1.85}, timeMS: 150, score: 0.3, bioavailability: "high", withAtoms: true},
	"pesticide": {classical: -245.7, quantum: -245.65, dipole: [3]float64{1.2, 0.8, 2.3}, timeMS: 180, score: 0.85, bioavailability: "high", withAtoms: true},
	"nutrient":  {classical: -1847.2, quantum: -1847.15, dipole: [3]float64{0.5, 1.1, 1.9}, timeMS: 195, score: 0.72, bioavailability: "high", withAtoms: true},
}

// Used for catalog molecules without a dedicated demo result.
var genericDemo = demoValues{classical: -150.0, quantum: -149.95, dipole: [3]float64{0.3, 0.3, 1.2}, timeMS: 170, score: 0.5, bioavailability: "medium"}

// DemoResult returns the canned result for a catalog molecule. Molecules not
// in the catalog get the water result.
func DemoResult(key string) *Overlay {
	entry, ok := molecule.Get(key)
	if !ok {
		entry = molecule.GetOrDefault(molecule.DefaultMolecule)
	}
	v, ok := demoResults[entry.Key]
	if !ok {
		v = genericDemo
	}

	o := &Overlay{
		Success:           true,
		ClassicalEnergy:   Float(v.classical),
		QuantumEnergy:     Float(v.quantum),
		ComputationTimeMS: v.timeMS,
		MethodUsed:        "vqe",
		AgriculturalActivity: &AgriculturalActivity{
			PesticideActivityScore:    Float(v.score),
			BioavailabilityPrediction: v.bioavailability,
		},
		Source: SourceDemo,
	}
	dipole := v.dipole
	o.DipoleMoment = &dipole
	if v.withAtoms {
		o.AtomData = entry.Atoms
	}
	return o
}
