package molecule

import "sort"

// Category groups catalog entries by agricultural use.
type Category string

const (
	CategoryBasic     Category = "basic"
	CategoryPesticide Category = "pesticide"
	CategoryNutrient  Category = "nutrient"
	CategoryNatural   Category = "natural"
)

// ExpectedProperties are the reference values shipped with a demo molecule.
type ExpectedProperties struct {
	Dipole          float64 `json:"dipole"`
	Bioavailability string  `json:"bioavailability"`
	Toxicity        string  `json:"toxicity"`
}

// Entry is a demo molecule with its descriptive metadata.
type Entry struct {
	Key         string             `json:"key"`
	Name        string             `json:"name"`
	Formula     string             `json:"formula"`
	Description string             `json:"description"`
	Relevance   string             `json:"relevance"`
	Category    Category           `json:"category"`
	Atoms       []Atom             `json:"atoms"`
	Expected    ExpectedProperties `json:"expected_properties"`
}

// Molecule returns the entry as a Molecule.
func (e Entry) Molecule() Molecule {
	return Molecule{Name: e.Key, Atoms: e.Atoms}
}

// AtomString returns the entry in backend wire format.
func (e Entry) AtomString() string {
	return FormatMoleculeString(e.Atoms)
}

// DefaultMolecule is used when a requested molecule is unknown.
const DefaultMolecule = "water"

var catalog = map[string]Entry{
	"water": {
		Key:         "water",
		Name:        "Water (H₂O)",
		Formula:     "H₂O",
		Description: "Essential for all life processes",
		Relevance:   "Irrigation efficiency and water management studies",
		Category:    CategoryBasic,
		Atoms: []Atom{
			{Symbol: "O", X: 0, Y: 0, Z: 0},
			{Symbol: "H", X: 0.76, Y: 0.59, Z: 0},
			{Symbol: "H", X: -0.76, Y: 0.59, Z: 0},
		},
		Expected: ExpectedProperties{Dipole: 1.85, Bioavailability: "high", Toxicity: "none"},
	},
	"pesticide": {
		Key:         "pesticide",
		Name:        "Bio-Pesticide Compound",
		Formula:     "C₂H₃NClO",
		Description: "Environmentally safe pesticide for crop protection",
		Relevance:   "Fall armyworm control in maize crops",
		Category:    CategoryPesticide,
		Atoms: []Atom{
			{Symbol: "C", X: 0, Y: 0, Z: 0},
			{Symbol: "C", X: 1.4, Y: 0, Z: 0},
			{Symbol: "N", X: 2.8, Y: 0, Z: 0},
			{Symbol: "O", X: 1.4, Y: 1.4, Z: 0},
			{Symbol: "Cl", X: 0, Y: -1.4, Z: 0},
			{Symbol: "H", X: 2.8, Y: 1.4, Z: 0},
		},
		Expected: ExpectedProperties{Dipole: 2.3, Bioavailability: "high", Toxicity: "low"},
	},
	"nutrient": {
		Key:         "nutrient",
		Name:        "Iron Chelate Complex",
		Formula:     "C₂H₄N₂OFe",
		Description: "Iron delivery system for nutrient-deficient crops",
		Relevance:   "Combat iron deficiency in beans and leafy vegetables",
		Category:    CategoryNutrient,
		Atoms: []Atom{
			{Symbol: "C", X: 0, Y: 0, Z: 0},
			{Symbol: "N", X: 1.4, Y: 0, Z: 0},
			{Symbol: "N", X: 2.8, Y: 0, Z: 0},
			{Symbol: "O", X: 1.4, Y: 1.4, Z: 0},
			{Symbol: "Fe", X: 4.2, Y: 0.7, Z: 0},
		},
		Expected: ExpectedProperties{Dipole: 1.9, Bioavailability: "high", Toxicity: "none"},
	},
	"caffeine": {
		Key:         "caffeine",
		Name:        "Caffeine",
		Formula:     "C₈H₁₀N₄O₂",
		Description: "Natural alkaloid found in coffee plants",
		Relevance:   "Understanding coffee plant biochemistry",
		Category:    CategoryNatural,
		Atoms: []Atom{
			{Symbol: "C", X: 0, Y: 0, Z: 0},
			{Symbol: "C", X: 1.4, Y: 0, Z: 0},
			{Symbol: "C", X: 2.8, Y: 0, Z: 0},
			{Symbol: "N", X: 4.2, Y: 0, Z: 0},
			{Symbol: "N", X: 2.8, Y: 1.4, Z: 0},
			{Symbol: "C", X: 1.4, Y: 1.4, Z: 0},
			{Symbol: "C", X: 0, Y: 1.4, Z: 0},
			{Symbol: "N", X: 0, Y: 2.8, Z: 0},
			{Symbol: "O", X: 4.2, Y: 1.4, Z: 0},
			{Symbol: "O", X: 1.4, Y: 4.2, Z: 0},
		},
		Expected: ExpectedProperties{Dipole: 3.6, Bioavailability: "high", Toxicity: "low"},
	},
}

// Get returns the catalog entry for key.
func Get(key string) (Entry, bool) {
	e, ok := catalog[key]
	if !ok {
		return Entry{}, false
	}
	e.Atoms = append([]Atom(nil), e.Atoms...)
	return e, true
}

// GetOrDefault returns the entry for key, falling back to DefaultMolecule.
func GetOrDefault(key string) Entry {
	if e, ok := Get(key); ok {
		return e
	}
	e, _ := Get(DefaultMolecule)
	return e
}

// Keys returns the catalog keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(catalog))
	for k := range catalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every catalog entry ordered by key.
func All() []Entry {
	keys := Keys()
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		e, _ := Get(k)
		entries = append(entries, e)
	}
	return entries
}
