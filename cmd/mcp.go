package cmd

import (
	"github.com/huangsam/onboard/core"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the onboard MCP server",
	Long:  `Launch an MCP server that allows AI agents to audit pages, validate manifests and rank scores via standard tools.`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr so stdout stays reserved for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		engine, err := core.LoadEngine(cfg)
		if err != nil {
			contract.LogFatal("Cannot load scoring engine", err)
		}
		return mcp.StartMCPServer(rootCtx, engine, storeManager)
	},
}
