package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"listing-dedup/utils"
)

// PDFRenderer prints a rendered HTML report to PDF with headless Chrome.
type PDFRenderer struct {
	chromeBin string
	logger    *utils.Logger
	retry     *utils.RetryConfig
	timeout   time.Duration
}

// NewPDFRenderer creates a PDFRenderer. An empty chromeBin lets chromedp
// find the browser on its own.
func NewPDFRenderer(chromeBin string, maxRetries int, logger *utils.Logger) *PDFRenderer {
	return &PDFRenderer{
		chromeBin: chromeBin,
		logger:    logger,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		timeout: 60 * time.Second,
	}
}

// Render prints the HTML file at htmlPath into pdfPath.
func (p *PDFRenderer) Render(ctx context.Context, htmlPath, pdfPath string) error {
	absHTML, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("pdf: resolve %q: %w", htmlPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(pdfPath), 0755); err != nil {
		return fmt.Errorf("pdf: create output dir: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(p.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	var buf []byte
	err = p.retry.Do(ctx, "print-pdf", func() error {
		// Suppress chromedp log noise
		tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
		defer cancelTab()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, p.timeout)
		defer cancelTimeout()

		return chromedp.Run(tabCtx,
			chromedp.Navigate("file://"+filepath.ToSlash(absHTML)),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.ActionFunc(func(ctx context.Context) error {
				var err error
				buf, _, err = page.PrintToPDF().
					WithPrintBackground(true).
					WithLandscape(true).
					Do(ctx)
				return err
			}),
		)
	})
	if err != nil {
		return fmt.Errorf("pdf: render: %w", err)
	}

	if err := os.WriteFile(pdfPath, buf, 0644); err != nil {
		return fmt.Errorf("pdf: write %q: %w", pdfPath, err)
	}
	p.logger.Info("[pdf] Report snapshot saved to %s (%d bytes)", pdfPath, len(buf))
	return nil
}
