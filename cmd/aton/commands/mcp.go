package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/aton/logger"
	"github.com/teranos/aton/mcp"
)

// MCPCmd represents the mcp command
var MCPCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve aton tools over the Model Context Protocol",
	Long: `Serve aton tools over the Model Context Protocol.

Speaks MCP on stdin/stdout for agent hosts; logs go to stderr. Exposes
aton_encode, aton_decode, aton_query, and aton_stats as tools.

Example Claude Desktop configuration:
  {
    "mcpServers": {
      "aton": {
        "command": "aton",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCPCommand,
}

func runMCPCommand(cmd *cobra.Command, args []string) error {
	return mcp.NewMCPServer(logger.Logger).Serve()
}
