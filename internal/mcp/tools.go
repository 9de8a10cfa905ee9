package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listMoleculesTool defines the list_molecules MCP tool.
var listMoleculesTool = mcp.NewTool("list_molecules",
	mcp.WithDescription("List the demo molecule catalog with formula, category and atom count."),
	mcp.WithString("category",
		mcp.Description("Only list molecules in this category"),
		mcp.Enum("basic", "pesticide", "nutrient", "natural"),
	),
)

// parseMoleculeTool defines the parse_molecule MCP tool.
var parseMoleculeTool = mcp.NewTool("parse_molecule",
	mcp.WithDescription("Parse a molecule string of semicolon-separated \"<symbol> <x> <y> <z>\" records. Malformed records are skipped."),
	mcp.WithString("molecule_string",
		mcp.Required(),
		mcp.Description("Molecule string, e.g. \"O 0 0 0; H 0.76 0.59 0; H -0.76 0.59 0\""),
	),
)

// inferBondsTool defines the infer_bonds MCP tool.
var inferBondsTool = mcp.NewTool("infer_bonds",
	mcp.WithDescription("Infer bonds between atoms closer than a distance threshold (Ångström)."),
	mcp.WithString("molecule",
		mcp.Description("Catalog molecule name; ignored when molecule_string is given"),
	),
	mcp.WithString("molecule_string",
		mcp.Description("Molecule string to use instead of a catalog entry"),
	),
	mcp.WithNumber("max_distance",
		mcp.Description("Bond distance threshold, exclusive (default 2.0)"),
	),
	mcp.WithString("format",
		mcp.Description("Output as a Markdown table or a Mermaid bond graph"),
		mcp.Enum("table", "mermaid"),
	),
)

// composeSceneTool defines the compose_scene MCP tool.
var composeSceneTool = mcp.NewTool("compose_scene",
	mcp.WithDescription("Compose the 3D scene for a molecule and summarise its primitives. Passing quantum_energy turns on quantum mode."),
	mcp.WithString("molecule",
		mcp.Description("Catalog molecule name; ignored when molecule_string is given"),
	),
	mcp.WithString("molecule_string",
		mcp.Description("Molecule string to use instead of a catalog entry"),
	),
	mcp.WithNumber("quantum_energy",
		mcp.Description("Quantum energy in Hartree from a simulation result"),
	),
	mcp.WithNumber("hovered",
		mcp.Description("Index of the hovered atom"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default summary)"),
		mcp.Enum("summary", "json"),
	),
)

// simulateMoleculeTool defines the simulate_molecule MCP tool.
var simulateMoleculeTool = mcp.NewTool("simulate_molecule",
	mcp.WithDescription("Run a simulation for a catalog molecule. Falls back to demo data when the backend is unavailable."),
	mcp.WithString("molecule",
		mcp.Required(),
		mcp.Description("Catalog molecule name"),
	),
	mcp.WithString("method",
		mcp.Description("Computation method (default vqe)"),
		mcp.Enum("vqe", "hf", "dft"),
	),
)
