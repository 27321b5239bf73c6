// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the rtps MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"rtps Phase Space Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: brightness_temperature_luminosity ---
	s.AddTool(mcp.NewTool("brightness_temperature_luminosity",
		mcp.WithDescription("Compute the pseudo-luminosity (Jy kpc^2) of a transient with the given brightness temperature at the given transient width."),
		mcp.WithNumber("tb", mcp.Description("Brightness temperature in K."), mcp.Required()),
		mcp.WithArray("vw", mcp.Description("Transient widths ν·W in GHz s."), mcp.Required(), mcp.Items(map[string]any{"type": "number"})),
	), h.handleBrightnessTemperature)

	// --- 2. Tool: convert_luminosity ---
	s.AddTool(mcp.NewTool("convert_luminosity",
		mcp.WithDescription("Convert spectral luminosities between erg/s/Hz and Jy kpc^2."),
		mcp.WithString("direction", mcp.Description("Conversion direction."), mcp.Required(),
			mcp.Enum(string(schema.CGSToAstroKind), string(schema.AstroToCGSKind))),
		mcp.WithArray("values", mcp.Description("Luminosities to convert."), mcp.Required(), mcp.Items(map[string]any{"type": "number"})),
	), h.handleConvertLuminosity)

	// --- 3. Tool: list_source_classes ---
	s.AddTool(mcp.NewTool("list_source_classes",
		mcp.WithDescription("Load every source-class table and summarize its point count and ranges."),
		mcp.WithString("data_dir", mcp.Description("Directory holding the class tables (defaults to the configured data directory).")),
	), h.handleListSourceClasses)

	// --- 4. Tool: render_phase_space ---
	s.AddTool(mcp.NewTool("render_phase_space",
		mcp.WithDescription("Render the transient phase space figure and save it to disk."),
		mcp.WithString("data_dir", mcp.Description("Directory holding the class tables.")),
		mcp.WithString("output_dir", mcp.Description("Directory the figure files are written to.")),
		mcp.WithString("basename", mcp.Description("Output file name without extension.")),
		mcp.WithArray("formats", mcp.Description("Image formats such as png, pdf, svg or eps."), mcp.Items(map[string]any{"type": "string"})),
	), h.handleRenderPhaseSpace)

	return s
}

// StartMCPServer starts the rtps MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
