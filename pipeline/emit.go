package pipeline

import (
	"context"
	"fmt"

	"listing-dedup/models"
	"listing-dedup/report"
	"listing-dedup/storage"
	"listing-dedup/utils"
)

// Emitter writes the outputs of a run. Nil members are skipped.
type Emitter struct {
	ReportPath string
	HTML       *report.HTMLRenderer
	Console    *report.ConsoleRenderer

	ExportPath string
	Export     storage.RecordWriter

	PDFPath string
	PDF     *report.PDFRenderer

	Logger *utils.Logger
}

// Emit renders the report and writes the optional outputs. Only a failure
// to write the HTML report is returned; export and PDF failures are logged.
func (e *Emitter) Emit(ctx context.Context, res *Result) error {
	if e.Console != nil {
		e.Console.Print(res.Report)
	}

	if e.HTML != nil {
		if err := e.HTML.RenderFile(ctx, e.ReportPath, res.Report); err != nil {
			return fmt.Errorf("pipeline: emit report: %w", err)
		}
		e.Logger.Info("[pipeline] Report written to %s", e.ReportPath)
	}

	if e.Export != nil {
		e.export(ctx, res.Deduplicated)
	}

	if e.PDF != nil && e.HTML != nil && e.PDFPath != "" {
		if err := e.PDF.Render(ctx, e.ReportPath, e.PDFPath); err != nil {
			e.Logger.Error("[pipeline] PDF snapshot failed: %v", err)
		}
	}
	return nil
}

func (e *Emitter) export(ctx context.Context, ds *models.Dataset) {
	if ds.Len() == 0 {
		e.Logger.Info("[pipeline] Nothing to export")
		return
	}
	if err := e.Export.Write(ctx, ds); err != nil {
		e.Logger.Error("[pipeline] Export failed: %v", err)
		return
	}
	e.Logger.Info("[pipeline] Deduplicated dataset (%d rows) exported to %s", ds.Len(), e.ExportPath)
}
