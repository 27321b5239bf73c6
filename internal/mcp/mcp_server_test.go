package mcp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/rtps/core"
	"github.com/huangsam/rtps/internal/contract"
	mcp_internal "github.com/huangsam/rtps/internal/mcp"
	"github.com/huangsam/rtps/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDataDir writes a two-row table for every class of the default catalog.
func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for i, c := range core.DefaultCatalog() {
		content := fmt.Sprintf("vW (GHz s),L (Jy kpc^2)\n1e-%d,1e%d\n2e-%d,3e%d\n", i%9, i%12, i%9, i%12)
		require.NoError(t, os.WriteFile(filepath.Join(dir, c.FileName), []byte(content), 0o644))
	}
	return dir
}

func baseConfig(dataDir, outputDir string) *contract.Config {
	return &contract.Config{
		DataDir:      dataDir,
		Save:         true,
		Basename:     "rtps",
		Formats:      []string{".png"},
		OutputDir:    outputDir,
		FigWidth:     contract.DefaultFigWidth,
		FigHeight:    contract.DefaultFigHeight,
		Workers:      2,
		Precision:    3,
		Output:       schema.JSONOut,
		CacheBackend: schema.NoneBackend,
		RunsBackend:  schema.NoneBackend,
	}
}

func callTool(t *testing.T, name string, args map[string]any, cfg *contract.Config) *mcp.CallToolResult {
	t.Helper()
	var mgr contract.CacheManager
	s := mcp_internal.NewMCPServer(cfg, mgr)

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	cfg := baseConfig(t.TempDir(), t.TempDir())

	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		contains string
	}{
		{
			name:     "brightness temperature missing tb",
			tool:     "brightness_temperature_luminosity",
			args:     map[string]any{"vw": []any{1.0}},
			contains: "invalid tb",
		},
		{
			name:     "brightness temperature non-positive tb",
			tool:     "brightness_temperature_luminosity",
			args:     map[string]any{"tb": 0.0, "vw": []any{1.0}},
			contains: "tb must be positive",
		},
		{
			name:     "brightness temperature empty vw",
			tool:     "brightness_temperature_luminosity",
			args:     map[string]any{"tb": 1e12, "vw": []any{}},
			contains: "vw must be a non-empty list",
		},
		{
			name:     "convert unknown direction",
			tool:     "convert_luminosity",
			args:     map[string]any{"direction": "sideways", "values": []any{1.0}},
			contains: "unknown conversion",
		},
		{
			name:     "convert non-numeric values",
			tool:     "convert_luminosity",
			args:     map[string]any{"direction": "cgs_to_astro", "values": []any{true}},
			contains: "values must be a non-empty list",
		},
		{
			name:     "render invalid basename",
			tool:     "render_phase_space",
			args:     map[string]any{"basename": "a/b"},
			contains: "invalid basename",
		},
		{
			name:     "render invalid format",
			tool:     "render_phase_space",
			args:     map[string]any{"formats": []any{"bmp"}},
			contains: "invalid formats",
		},
		{
			name:     "list classes missing tables",
			tool:     "list_source_classes",
			args:     map[string]any{},
			contains: "loading failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, tt.tool, tt.args, cfg)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.contains)
		})
	}
}

func TestMCPServerHandlers_Conversions(t *testing.T) {
	cfg := baseConfig(t.TempDir(), t.TempDir())

	t.Run("brightness temperature", func(t *testing.T) {
		res := callTool(t, "brightness_temperature_luminosity", map[string]any{
			"tb": 1e12,
			"vw": []any{1.0, 2.0},
		}, cfg)
		require.False(t, res.IsError, resultText(t, res))

		var results []schema.ConversionResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &results))
		require.Len(t, results, 2)
		assert.Equal(t, schema.TBKind, results[0].Kind)
		assert.Equal(t, 1e12, results[0].TB)
		assert.Equal(t, 2.0, results[1].Input)
		// L scales with the square of the width
		assert.InDelta(t, 4.0, results[1].Output/results[0].Output, 1e-9)
	})

	t.Run("round trip", func(t *testing.T) {
		res := callTool(t, "convert_luminosity", map[string]any{
			"direction": "cgs_to_astro",
			"values":    []any{1e30},
		}, cfg)
		require.False(t, res.IsError, resultText(t, res))

		var toAstro []schema.ConversionResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &toAstro))
		require.Len(t, toAstro, 1)

		res = callTool(t, "convert_luminosity", map[string]any{
			"direction": "astro_to_cgs",
			"values":    []any{toAstro[0].Output},
		}, cfg)
		require.False(t, res.IsError, resultText(t, res))

		var toCGS []schema.ConversionResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &toCGS))
		require.Len(t, toCGS, 1)
		assert.InEpsilon(t, 1e30, toCGS[0].Output, 1e-12)
	})
}

func TestMCPServerHandlers_ListSourceClasses(t *testing.T) {
	cfg := baseConfig(t.TempDir(), t.TempDir())
	dataDir := writeDataDir(t)

	res := callTool(t, "list_source_classes", map[string]any{"data_dir": dataDir}, cfg)
	require.False(t, res.IsError, resultText(t, res))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
	require.Len(t, decoded, len(core.DefaultCatalog()))
	assert.Equal(t, core.DefaultCatalog()[0].Key, decoded[0]["key"])
	assert.Equal(t, float64(2), decoded[0]["points"])

	// The base config is not modified by a call
	assert.NotEqual(t, dataDir, cfg.DataDir)
}

func TestMCPServerHandlers_RenderPhaseSpace(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "figures")
	cfg := baseConfig(writeDataDir(t), t.TempDir())

	res := callTool(t, "render_phase_space", map[string]any{
		"output_dir": outDir,
		"basename":   "phase",
		"formats":    []any{"svg", ".png"},
	}, cfg)
	require.False(t, res.IsError, resultText(t, res))

	var result schema.RenderResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
	assert.Equal(t, []string{filepath.Join(outDir, "phase.svg"), filepath.Join(outDir, "phase.png")}, result.Files)
	assert.Equal(t, 2*len(core.DefaultCatalog()), result.Points)
	assert.Zero(t, result.Skipped)

	for _, f := range result.Files {
		assert.FileExists(t, f)
	}
	assert.Equal(t, "rtps", cfg.Basename)
}
