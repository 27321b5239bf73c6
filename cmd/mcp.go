package cmd

import (
	"github.com/huangsam/rtps/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the rtps MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents convert luminosities,
summarize the source classes and render the phase space figure.

Tools:
  brightness_temperature_luminosity
  convert_luminosity
  list_source_classes
  render_phase_space`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
