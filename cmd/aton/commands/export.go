package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/aton/codec"
	"github.com/teranos/aton/compress"
	"github.com/teranos/aton/config"
	"github.com/teranos/aton/db"
	"github.com/teranos/aton/logger"
)

var (
	exportTables      []string
	exportQuery       string
	exportOutput      string
	exportCompression string
)

// ExportCmd represents the export command
var ExportCmd = &cobra.Command{
	Use:   "export DATABASE",
	Short: "Export SQLite tables as ATON text",
	Long: `Export SQLite tables as ATON text.

The database is opened read-only. Without --tables every user table is
exported; sqlite internal tables are always skipped.

Examples:
  aton export app.db
  aton export app.db --tables users,orders -o app.aton
  aton export app.db -q "users WHERE active = true"`,
	Args: cobra.ExactArgs(1),
	RunE: runExportCommand,
}

func init() {
	ExportCmd.Flags().StringSliceVar(&exportTables, "tables", nil, "Tables to export (default all)")
	ExportCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "Filter records with a query before encoding")
	ExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write output to a file instead of stdout")
	ExportCmd.Flags().StringVarP(&exportCompression, "compression", "c", "", "Compression mode: fast, balanced, ultra, adaptive")
}

func runExportCommand(cmd *cobra.Command, args []string) error {
	database, err := db.Open(args[0], logger.Logger)
	if err != nil {
		return err
	}
	defer database.Close()

	ds, err := db.NewExporter(database).WithLogger(logger.Logger).Export(cmd.Context(), exportTables...)
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
	if exportCompression != "" {
		mode, err := compress.ParseMode(exportCompression)
		if err != nil {
			return err
		}
		opts.Compression = mode
	}

	encoder := codec.NewEncoder(opts).WithLogger(logger.Logger)

	var text string
	if exportQuery != "" {
		text, err = encoder.EncodeWithQuery(ds, exportQuery)
	} else {
		text, err = encoder.Encode(ds)
	}
	if err != nil {
		return err
	}
	return writeOutput(exportOutput, text)
}
