// Package diagrams renders molecule bond graphs as Mermaid flowcharts.
package diagrams

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/molview/internal/bonds"
	"github.com/ziadkadry99/molview/internal/molecule"
)

// BondGraph returns a Mermaid "graph LR" with one circular node per atom,
// filled with its element colour, and one edge per bond labelled with the
// bond length.
func BondGraph(atoms []molecule.Atom, list []bonds.Bond) string {
	var b strings.Builder
	b.WriteString("graph LR\n")

	for i, a := range atoms {
		fmt.Fprintf(&b, "    %s((\"%s\"))\n", nodeID(i), escapeMermaid(a.Symbol))
	}
	for _, bd := range list {
		fmt.Fprintf(&b, "    %s ---|%.2f Å| %s\n", nodeID(bd.A), bd.Distance, nodeID(bd.B))
	}
	for i, a := range atoms {
		el := molecule.Lookup(a.Symbol)
		fmt.Fprintf(&b, "    style %s fill:%s,color:%s\n", nodeID(i), el.Color.Hex(), textColor(el.Color))
	}

	return b.String()
}

func nodeID(i int) string { return fmt.Sprintf("a%d", i) }

// textColor picks black or white for legibility on fill.
func textColor(fill molecule.RGB) string {
	lum := 0.299*float64(fill.R) + 0.587*float64(fill.G) + 0.114*float64(fill.B)
	if lum > 140 {
		return "#000000"
	}
	return "#ffffff"
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
