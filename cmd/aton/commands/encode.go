package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/teranos/aton/codec"
	"github.com/teranos/aton/compress"
	"github.com/teranos/aton/config"
	"github.com/teranos/aton/display"
	"github.com/teranos/aton/errors"
	"github.com/teranos/aton/ingest"
	"github.com/teranos/aton/logger"
)

var (
	encodeOutput      string
	encodeQuery       string
	encodeCompression string
	encodeQueryable   bool
	encodeNoOptimize  bool
	encodeNoValidate  bool
	encodeNoCompress  bool
	encodeShowStats   bool
	encodeWatch       bool
)

// EncodeCmd represents the encode command
var EncodeCmd = &cobra.Command{
	Use:   "encode [FILE]",
	Short: "Encode JSON or YAML records as ATON text",
	Long: `Encode JSON or YAML records as ATON text.

Input is a file argument or stdin. A top-level object maps table names to
arrays of records; a bare array of records lands in the "data" table.
The format is picked by extension, then by sniffing the payload.

Examples:
  aton encode data.json                     # Encode a JSON file
  aton encode data.yaml -o data.aton        # YAML in, file out
  cat data.json | aton encode               # Encode stdin
  aton encode data.json --stats             # Report token savings on stderr
  aton encode data.json -q "users WHERE active = true"
  aton encode data.json --watch -o data.aton`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncodeCommand,
}

func init() {
	EncodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "Write output to a file instead of stdout")
	EncodeCmd.Flags().StringVarP(&encodeQuery, "query", "q", "", "Filter records with a query before encoding")
	EncodeCmd.Flags().StringVarP(&encodeCompression, "compression", "c", "", "Compression mode: fast, balanced, ultra, adaptive")
	EncodeCmd.Flags().BoolVar(&encodeQueryable, "queryable", false, "Mark tables queryable in the output")
	EncodeCmd.Flags().BoolVar(&encodeNoOptimize, "no-optimize", false, "Disable defaults inference")
	EncodeCmd.Flags().BoolVar(&encodeNoValidate, "no-validate", false, "Skip dataset validation")
	EncodeCmd.Flags().BoolVar(&encodeNoCompress, "no-compress", false, "Disable dictionary compression (same as --compression fast)")
	EncodeCmd.Flags().BoolVar(&encodeShowStats, "stats", false, "Print a compression report to stderr after encoding")
	EncodeCmd.Flags().BoolVarP(&encodeWatch, "watch", "w", false, "Re-encode whenever FILE changes")
}

func runEncodeCommand(cmd *cobra.Command, args []string) error {
	opts, err := encoderOptions()
	if err != nil {
		return err
	}

	if encodeWatch {
		if len(args) == 0 || args[0] == "-" {
			return errors.New("--watch needs a file argument")
		}
		return watchAndEncode(args[0], opts)
	}

	name, data, err := readInput(args)
	if err != nil {
		return err
	}
	return encodeOnce(name, data, opts)
}

// encoderOptions merges the configured encoder options with command flags.
func encoderOptions() (codec.EncoderOptions, error) {
	cfg, err := config.Load()
	if err != nil {
		return codec.EncoderOptions{}, err
	}
	opts, err := cfg.EncoderOptions()
	if err != nil {
		return codec.EncoderOptions{}, err
	}

	if encodeCompression != "" {
		mode, err := compress.ParseMode(encodeCompression)
		if err != nil {
			return codec.EncoderOptions{}, err
		}
		opts.Compression = mode
	}
	if encodeNoCompress {
		opts.Compression = compress.ModeFast
	}
	if encodeNoOptimize {
		opts.Optimize = false
	}
	if encodeNoValidate {
		opts.Validate = false
	}
	if encodeQueryable {
		opts.Queryable = true
	}
	return opts, nil
}

func encodeOnce(name string, data []byte, opts codec.EncoderOptions) error {
	ds, err := ingest.Parse(data, ingest.DetectFormat(name, data))
	if err != nil {
		return err
	}

	encoder := codec.NewEncoder(opts).WithLogger(logger.Logger)

	var text string
	if encodeQuery != "" {
		text, err = encoder.EncodeWithQuery(ds, encodeQuery)
	} else {
		text, err = encoder.Encode(ds)
	}
	if err != nil {
		return err
	}

	if err := writeOutput(encodeOutput, text); err != nil {
		return err
	}

	if encodeShowStats {
		stats, err := codec.CompressionStats(ds, opts)
		if err != nil {
			return errors.Wrap(err, "failed to compute stats")
		}
		fmt.Fprintln(os.Stderr, display.RenderStats(stats))
	}
	return nil
}

// watchAndEncode re-encodes the file on every change. Editors fire bursts
// of events per save; the limiter takes the first of a burst and drops the
// rest.
func watchAndEncode(path string, opts codec.EncoderOptions) error {
	encodeFromFile := func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", path)
		}
		return encodeOnce(path, data, opts)
	}

	// Encode once up front so output exists before the first change
	if err := encodeFromFile(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return errors.Wrapf(err, "failed to watch %s", path)
	}

	limiter := rate.NewLimiter(rate.Every(500*time.Millisecond), 1)

	logger.Infow("watching for changes", logger.FieldFile, path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !limiter.Allow() {
				continue
			}
			logger.Debugw("input changed", logger.FieldFile, event.Name, "op", event.Op.String())
			if err := encodeFromFile(); err != nil {
				logger.Errorw("re-encode failed", logger.FieldError, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("watch error", logger.FieldError, err)
		}
	}
}
