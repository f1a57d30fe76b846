package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"listing-dedup/config"
	"listing-dedup/pipeline"
	"listing-dedup/report"
	"listing-dedup/source"
	"listing-dedup/storage"
	"listing-dedup/utils"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process the data directory and write the report",
		Long: `Reads every CSV file in DATA_DIR (sorted by name), deduplicates the
merged rows and writes REPORT_PATH plus the deduplicated EXPORT_PATH.

Configuration comes from the environment (or a .env file):
  DATA_DIR, REPORT_PATH, EXPORT_PATH, EXPORT_FORMAT (csv|parquet),
  PDF_PATH, CHROME_BIN, MAX_CONCURRENCY, MAX_RETRIES, PROFILE_PATH, LOG_LEVEL`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := utils.NewLogger(cfg.LogLevel)
			defer logger.Sync()

			profile, err := cfg.LoadProfile()
			if err != nil {
				return err
			}

			logger.Info("=== Listing dedup starting ===")
			logger.Info("Config: data: %s | report: %s | export: %s (%s) | concurrency: %d",
				cfg.DataDir, cfg.ReportPath, cfg.ExportPath, cfg.ExportFormat, cfg.MaxConcurrency)

			src := source.NewDirSource(cfg.DataDir, cfg.MaxConcurrency, cfg.MaxRetries, logger)
			res, err := pipeline.New(profile, src, logger).Run(cmd.Context())
			if err != nil {
				return err
			}

			html, err := report.NewHTMLRenderer(profile)
			if err != nil {
				return err
			}
			export, err := storage.NewRecordWriter(cfg.ExportFormat, cfg.ExportPath)
			if err != nil {
				return err
			}

			emitter := &pipeline.Emitter{
				ReportPath: cfg.ReportPath,
				HTML:       html,
				Console:    report.NewConsoleRenderer(os.Stdout, profile),
				ExportPath: cfg.ExportPath,
				Export:     export,
				Logger:     logger,
			}
			if cfg.PDFPath != "" {
				emitter.PDFPath = cfg.PDFPath
				emitter.PDF = report.NewPDFRenderer(cfg.ChromeBin, cfg.MaxRetries, logger)
			}

			if err := emitter.Emit(cmd.Context(), res); err != nil {
				return err
			}

			d := res.Report.Dedup
			fmt.Fprintf(cmd.OutOrStdout(), "  Done. %d → %d rows (%d duplicates) | Report → %s\n\n",
				d.OriginalCount, d.FinalCount, d.DuplicateCount, cfg.ReportPath)
			return nil
		},
	}
}
