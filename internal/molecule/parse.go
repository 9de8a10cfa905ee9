package molecule

import (
	"math"
	"strconv"
	"strings"
)

// ParseMoleculeString parses the backend wire format
// "<Symbol> <x> <y> <z>; <Symbol> <x> <y> <z>; ...".
// Records that do not have exactly four whitespace separated fields, or whose
// coordinates are not finite numbers, are skipped.
func ParseMoleculeString(s string) []Atom {
	atoms := []Atom{}
	for _, record := range strings.Split(s, ";") {
		fields := strings.Fields(record)
		if len(fields) != 4 {
			continue
		}
		var coords [3]float64
		ok := true
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				ok = false
				break
			}
			coords[i] = v
		}
		if !ok {
			continue
		}
		atoms = append(atoms, Atom{Symbol: fields[0], X: coords[0], Y: coords[1], Z: coords[2]})
	}
	return atoms
}

// CountRecords counts the non-blank records in a molecule string, including
// the malformed ones ParseMoleculeString skips.
func CountRecords(s string) int {
	n := 0
	for _, rec := range strings.Split(s, ";") {
		if strings.TrimSpace(rec) != "" {
			n++
		}
	}
	return n
}

// FormatMoleculeString serialises atoms into the wire format read by
// ParseMoleculeString. Coordinates use the shortest representation that
// parses back to the same float64.
func FormatMoleculeString(atoms []Atom) string {
	var b strings.Builder
	for i, a := range atoms {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(a.Symbol)
		for _, v := range [3]float64{a.X, a.Y, a.Z} {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return b.String()
}
