package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/molview/internal/bonds"
	"github.com/ziadkadry99/molview/internal/simulation"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes molecule parsing, bond inference
// and scene composition tools.
type Server struct {
	client        *simulation.Client
	bondThreshold float64
	mcp           *server.MCPServer
}

// NewServer creates a new MCP server. A nil client serves demo results only.
func NewServer(client *simulation.Client, bondThreshold float64) *Server {
	if client == nil {
		client = simulation.NewClient(simulation.Options{})
	}
	if bondThreshold <= 0 {
		bondThreshold = bonds.DefaultMaxDistance
	}
	s := &Server{
		client:        client,
		bondThreshold: bondThreshold,
	}

	s.mcp = server.NewMCPServer(
		"molview",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listMoleculesTool, s.handleListMolecules)
	s.mcp.AddTool(parseMoleculeTool, s.handleParseMolecule)
	s.mcp.AddTool(inferBondsTool, s.handleInferBonds)
	s.mcp.AddTool(composeSceneTool, s.handleComposeScene)
	s.mcp.AddTool(simulateMoleculeTool, s.handleSimulateMolecule)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
