package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/rtps/core"
	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/internal/outwriter"
	"github.com/huangsam/rtps/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

func (h *toolHandler) handleBrightnessTemperature(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tB, err := request.RequireFloat("tb")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid tb: %v", err)), nil
	}
	if tB <= 0 {
		return mcp.NewToolResultError(fmt.Sprintf("tb must be positive (received %g)", tB)), nil
	}
	values, err := request.RequireFloatSlice("vw")
	if err != nil || len(values) == 0 {
		return mcp.NewToolResultError("vw must be a non-empty list of numbers"), nil
	}
	return conversionResult(schema.TBKind, tB, values)
}

func (h *toolHandler) handleConvertLuminosity(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	direction := request.GetString("direction", "")
	values, err := request.RequireFloatSlice("values")
	if err != nil || len(values) == 0 {
		return mcp.NewToolResultError("values must be a non-empty list of numbers"), nil
	}
	return conversionResult(schema.ConversionKind(direction), 0, values)
}

func conversionResult(kind schema.ConversionKind, tB float64, values []float64) (*mcp.CallToolResult, error) {
	results, err := core.Convert(kind, tB, values)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("conversion failed: %v", err)), nil
	}
	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListSourceClasses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
	}

	summaries, err := core.LoadSummaries(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading failed: %v", err)), nil
	}

	jsonData, err := outwriter.MarshalClassSummaries(summaries)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRenderPhaseSpace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Show = false
	cfg.Save = true
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.DataDir = d
	}
	if d := request.GetString("output_dir", ""); d != "" {
		cfg.OutputDir = d
	}
	if b := request.GetString("basename", ""); b != "" {
		basename, err := contract.ValidateBasename(b)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid basename: %v", err)), nil
		}
		cfg.Basename = basename
	}
	if raw := request.GetStringSlice("formats", nil); len(raw) > 0 {
		formats, err := contract.ParseFormats(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid formats: %v", err)), nil
		}
		if len(formats) > 0 {
			cfg.Formats = formats
		}
	}

	result, err := core.RenderPhaseSpace(core.WithoutHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
