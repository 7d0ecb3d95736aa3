package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/aton/cmd/aton/commands"
	"github.com/teranos/aton/config"
	"github.com/teranos/aton/logger"
)

var rootCmd = &cobra.Command{
	Use:   "aton",
	Short: "ATON - Token-efficient text encoding for tabular data",
	Long: `ATON - Token-efficient text encoding for tabular data.

ATON renders record sets as compact text that costs fewer language-model
tokens than JSON: repeated strings collapse into a dictionary, majority
values move into per-table defaults, and rows become positional.

Available commands:
  encode - Encode JSON or YAML records as ATON text
  decode - Decode ATON text back into JSON
  query  - Run a query against an ATON document
  stats  - Estimate token savings for a dataset
  stream - Encode a table as sequential chunks
  export - Encode tables from a SQLite database
  config - Manage aton configuration
  mcp    - Serve ATON tools over the Model Context Protocol

Examples:
  aton encode data.json                                # Encode a file
  cat data.json | aton encode --compression ultra      # Encode stdin
  aton decode data.aton                                # Back to JSON
  aton query data.aton "users WHERE age > 30 LIMIT 5"  # Query a document
  aton export app.db --tables users,orders             # Encode from SQLite`,

	// Errors are printed once in main; keep cobra from repeating them
	// (and from dumping usage after runtime failures).
	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")

		// Config may legitimately be absent; logging still has to work.
		jsonLogs := false
		if cfg, err := config.Load(); err == nil {
			jsonLogs = cfg.Log.JSON
			if cfg.Log.Theme != "" {
				logger.SetTheme(cfg.Log.Theme)
			}
		}

		// Initialize reads ATON_LOG_THEME last, so the env var still wins.
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debugw("logging initialized",
			"level", logger.LevelName(verbosity),
			"shows", logger.VerbosityDescription(verbosity),
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.EncodeCmd)
	rootCmd.AddCommand(commands.DecodeCmd)
	rootCmd.AddCommand(commands.QueryCmd)
	rootCmd.AddCommand(commands.StatsCmd)
	rootCmd.AddCommand(commands.StreamCmd)
	rootCmd.AddCommand(commands.ExportCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.MCPCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
