package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/aton/codec"
	"github.com/teranos/aton/compress"
	"github.com/teranos/aton/config"
	"github.com/teranos/aton/display"
	"github.com/teranos/aton/ingest"
)

var statsCompression string

// StatsCmd represents the stats command
var StatsCmd = &cobra.Command{
	Use:   "stats [FILE]",
	Short: "Report token savings without emitting the encoded text",
	Long: `Report token savings without emitting the encoded text.

Encodes the input in memory and compares token estimates for the compact
JSON form against the ATON form.

Examples:
  aton stats data.json
  aton stats data.json -c ultra
  cat data.json | aton stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatsCommand,
}

func init() {
	StatsCmd.Flags().StringVarP(&statsCompression, "compression", "c", "", "Compression mode: fast, balanced, ultra, adaptive")
}

func runStatsCommand(cmd *cobra.Command, args []string) error {
	name, data, err := readInput(args)
	if err != nil {
		return err
	}

	ds, err := ingest.Parse(data, ingest.DetectFormat(name, data))
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts, err := cfg.EncoderOptions()
	if err != nil {
		return err
	}
	if statsCompression != "" {
		mode, err := compress.ParseMode(statsCompression)
		if err != nil {
			return err
		}
		opts.Compression = mode
	}

	stats, err := codec.CompressionStats(ds, opts)
	if err != nil {
		return err
	}
	fmt.Println(display.RenderStats(stats))
	return nil
}
