package molecule

// RGB is an 8-bit colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+i*2] = digits[v>>4]
		b[2+i*2] = digits[v&0x0f]
	}
	return string(b)
}

// Element holds the display properties of a chemical element. Radius is a
// rendering radius, not a physical covalent radius.
type Element struct {
	Symbol string  `json:"symbol"`
	Color  RGB     `json:"color"`
	Radius float64 `json:"radius"`
	Known  bool    `json:"known"`
}

// Appearance used for symbols missing from the table.
var (
	DefaultColor  = RGB{0xcc, 0xcc, 0xcc}
	DefaultRadius = 0.5
)

// CPK colouring.
var elements = map[string]Element{
	"H":  {Symbol: "H", Color: RGB{0xff, 0xff, 0xff}, Radius: 0.3},
	"C":  {Symbol: "C", Color: RGB{0x90, 0x90, 0x90}, Radius: 0.5},
	"N":  {Symbol: "N", Color: RGB{0x30, 0x50, 0xf8}, Radius: 0.5},
	"O":  {Symbol: "O", Color: RGB{0xff, 0x0d, 0x0d}, Radius: 0.5},
	"P":  {Symbol: "P", Color: RGB{0xff, 0x80, 0x00}, Radius: 0.6},
	"S":  {Symbol: "S", Color: RGB{0xff, 0xff, 0x30}, Radius: 0.6},
	"Cl": {Symbol: "Cl", Color: RGB{0x1f, 0xf0, 0x1f}, Radius: 0.7},
	"F":  {Symbol: "F", Color: RGB{0x90, 0xe0, 0x50}, Radius: 0.4},
	"Fe": {Symbol: "Fe", Color: RGB{0xe0, 0x66, 0x33}, Radius: 0.7},
	"Zn": {Symbol: "Zn", Color: RGB{0x7d, 0x80, 0xb0}, Radius: 0.6},
}

// Lookup returns the display properties for symbol. Unknown symbols get the
// default colour and radius with Known set to false.
func Lookup(symbol string) Element {
	if e, ok := elements[symbol]; ok {
		e.Known = true
		return e
	}
	return Element{Symbol: symbol, Color: DefaultColor, Radius: DefaultRadius}
}

// Standard atomic weights in g/mol.
var atomicWeights = map[string]float64{
	"H": 1.008, "C": 12.011, "N": 14.007, "O": 15.999,
	"P": 30.974, "S": 32.065, "Cl": 35.453, "F": 18.998,
	"Fe": 55.845, "Zn": 65.38, "Ca": 40.078, "Mg": 24.305,
}

// MolecularWeight sums the atomic weights of atoms. Untabulated elements
// contribute nothing.
func MolecularWeight(atoms []Atom) float64 {
	total := 0.0
	for _, a := range atoms {
		total += atomicWeights[a.Symbol]
	}
	return total
}
