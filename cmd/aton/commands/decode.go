package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/aton/codec"
	"github.com/teranos/aton/display"
	"github.com/teranos/aton/logger"
)

var (
	decodeOutput     string
	decodeCompact    bool
	decodeNoValidate bool
)

// DecodeCmd represents the decode command
var DecodeCmd = &cobra.Command{
	Use:   "decode [FILE]",
	Short: "Decode ATON text back to JSON",
	Long: `Decode ATON text back to JSON.

Input is a file argument or stdin. Output is a top-level object mapping
table names to arrays of records, pretty-printed unless --compact is set.

Examples:
  aton decode data.aton                     # Decode a file
  cat data.aton | aton decode               # Decode stdin
  aton decode data.aton --compact -o data.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecodeCommand,
}

func init() {
	DecodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "Write output to a file instead of stdout")
	DecodeCmd.Flags().BoolVar(&decodeCompact, "compact", false, "Emit compact JSON instead of indented")
	DecodeCmd.Flags().BoolVar(&decodeNoValidate, "no-validate", false, "Skip row width checks against the schema")
}

func runDecodeCommand(cmd *cobra.Command, args []string) error {
	_, data, err := readInput(args)
	if err != nil {
		return err
	}

	decoder := codec.NewDecoder(codec.DecoderOptions{Validate: !decodeNoValidate}).WithLogger(logger.Logger)
	ds, err := decoder.Decode(string(data))
	if err != nil {
		return err
	}

	out, err := display.MarshalJSON(ds, decodeCompact)
	if err != nil {
		return err
	}
	return writeOutput(decodeOutput, string(out))
}
