package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/molview/internal/bonds"
	"github.com/ziadkadry99/molview/internal/dashboard"
	"github.com/ziadkadry99/molview/internal/diagrams"
	"github.com/ziadkadry99/molview/internal/interaction"
	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/scene"
	"github.com/ziadkadry99/molview/internal/simulation"
)

// handleListMolecules lists the catalog, optionally filtered by category.
func (s *Server) handleListMolecules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := request.GetString("category", "")

	var sb strings.Builder
	sb.WriteString("# Molecules\n\n")
	n := 0
	for _, e := range molecule.All() {
		if category != "" && string(e.Category) != category {
			continue
		}
		fmt.Fprintf(&sb, "- **%s** (`%s`): %s, %s, %d atoms, %.3f g/mol\n  %s\n",
			e.Name, e.Key, e.Formula, e.Category, len(e.Atoms), molecule.MolecularWeight(e.Atoms), e.Description)
		n++
	}
	if n == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No molecules in category %q.", category)), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleParseMolecule parses a molecule string and reports skipped records.
func (s *Server) handleParseMolecule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("molecule_string")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: molecule_string"), nil
	}

	atoms := molecule.ParseMoleculeString(text)
	records := molecule.CountRecords(text)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Parsed %d atoms from %d records", len(atoms), records)
	if skipped := records - len(atoms); skipped > 0 {
		fmt.Fprintf(&sb, " (%d malformed skipped)", skipped)
	}
	sb.WriteString(".\n\n")
	for i, a := range atoms {
		el := molecule.Lookup(a.Symbol)
		note := ""
		if !el.Known {
			note = " (unknown element, default appearance)"
		}
		fmt.Fprintf(&sb, "%d. %s (%g, %g, %g)%s\n", i, a.Symbol, a.X, a.Y, a.Z, note)
	}
	if len(atoms) > 0 {
		fmt.Fprintf(&sb, "\nNormalised: `%s`\n", molecule.FormatMoleculeString(atoms))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleInferBonds infers bonds for a catalog molecule or molecule string.
func (s *Server) handleInferBonds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, errResult := s.resolveMolecule(request)
	if errResult != nil {
		return errResult, nil
	}
	threshold := request.GetFloat("max_distance", s.bondThreshold)
	if threshold <= 0 {
		threshold = s.bondThreshold
	}

	list := bonds.Infer(m.Atoms, threshold)
	if request.GetString("format", "table") == "mermaid" {
		return mcp.NewToolResultText(diagrams.BondGraph(m.Atoms, list)), nil
	}
	if len(list) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No bonds shorter than %g Å among %d atoms.", threshold, len(m.Atoms))), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d bonds (threshold %g Å):\n\n", len(list), threshold)
	sb.WriteString("| A | B | Distance (Å) |\n|---|---|---|\n")
	for _, b := range list {
		fmt.Fprintf(&sb, "| %d %s | %d %s | %.3f |\n", b.A, m.Atoms[b.A].Symbol, b.B, m.Atoms[b.B].Symbol, b.Distance)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleComposeScene composes a scene and summarises it, or returns it as JSON.
func (s *Server) handleComposeScene(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, errResult := s.resolveMolecule(request)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	var overlay *simulation.Overlay
	if _, ok := args["quantum_energy"]; ok {
		overlay = &simulation.Overlay{Success: true, QuantumEnergy: simulation.Float(request.GetFloat("quantum_energy", 0))}
	}
	view := interaction.Idle()
	if _, ok := args["hovered"]; ok {
		view.Hovered = request.GetInt("hovered", interaction.NoHover)
	}

	sc := scene.Composer{MaxBondDistance: s.bondThreshold}.Compose(m, overlay, view)

	if request.GetString("format", "summary") == "json" {
		data, err := json.MarshalIndent(sc, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding scene: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Scene: %s\n\n", nameOr(m.Name, "custom molecule"))
	fmt.Fprintf(&sb, "Status: %s\n\n", sc.Status)
	for _, k := range []scene.Kind{scene.KindSphere, scene.KindLine, scene.KindLabel, scene.KindField, scene.KindLight, scene.KindGrid} {
		fmt.Fprintf(&sb, "- %s: %d\n", k, sc.Count(k))
	}
	sb.WriteString("\n## Atoms\n\n")
	for _, sp := range sc.Spheres() {
		flags := ""
		if sp.Glow {
			flags += " glow"
		}
		if sp.Hovered {
			flags += " hovered"
		}
		fmt.Fprintf(&sb, "%d. %s r=%.2f %s%s\n", sp.Atom, sp.Symbol, sp.Radius, sp.Color.Hex(), flags)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleSimulateMolecule runs a simulation and summarises it with dashboard metrics.
func (s *Server) handleSimulateMolecule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("molecule")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: molecule"), nil
	}
	entry, ok := molecule.Get(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown molecule %q; available: %s", name, strings.Join(molecule.Keys(), ", "))), nil
	}

	o := s.client.Simulate(ctx, simulation.Request{
		Molecule: entry.Key,
		Method:   request.GetString("method", ""),
	})
	md, err := dashboard.Markdown(dashboard.Compute(entry, o), o)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("building report: %v", err)), nil
	}
	return mcp.NewToolResultText(md), nil
}

// resolveMolecule reads molecule_string or molecule from the request.
func (s *Server) resolveMolecule(request mcp.CallToolRequest) (molecule.Molecule, *mcp.CallToolResult) {
	if text := request.GetString("molecule_string", ""); text != "" {
		return molecule.Molecule{Atoms: molecule.ParseMoleculeString(text)}, nil
	}
	name := request.GetString("molecule", "")
	if name == "" {
		return molecule.Molecule{}, mcp.NewToolResultError("one of molecule or molecule_string is required")
	}
	entry, ok := molecule.Get(name)
	if !ok {
		return molecule.Molecule{}, mcp.NewToolResultError(fmt.Sprintf("unknown molecule %q; available: %s", name, strings.Join(molecule.Keys(), ", ")))
	}
	return entry.Molecule(), nil
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
