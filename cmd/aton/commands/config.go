package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/aton/config"
	"github.com/teranos/aton/display"
	"github.com/teranos/aton/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage aton configuration",
	Long: `Manage aton configuration.

Configuration sources (in order of precedence):
1. Environment variables (ATON_* prefix)
2. Project config (./aton.toml)
3. User config (~/.aton/aton.toml)
4. Default values

Examples:
  aton config show                # Show current configuration
  aton config show --format json  # Show configuration in JSON format
  aton config init                # Write a default user config file`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current configuration merged from all sources",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default user config file",
	Long:  "Write a config file with default settings to ~/.aton/aton.toml, refusing to overwrite an existing one",
	RunE:  runConfigInit,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	switch configFormat {
	case "json":
		return display.OutputJSON(cfg, false)
	case "toml":
		text, err := config.Render(cfg)
		if err != nil {
			return err
		}
		fmt.Print(text)
	default:
		return errors.Newf("unsupported format: %s (supported: toml, json)", configFormat)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.UserConfigPath()
	if err := config.Init(path); err != nil {
		return err
	}
	fmt.Printf("Wrote default configuration to %s\n", path)
	return nil
}
