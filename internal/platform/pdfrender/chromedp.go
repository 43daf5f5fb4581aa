package pdfrender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const defaultRenderTimeout = 30 * time.Second

// ChromeConfig contains configuration for the headless Chrome renderer.
type ChromeConfig struct {
	// Timeout bounds a single render. Defaults to 30s.
	Timeout time.Duration
	// NoSandbox runs Chrome without its sandbox, required when the process
	// runs as root in a container.
	NoSandbox bool
	Logger    *slog.Logger
}

// ChromeRenderer renders invoice documents to PDF through the Chrome
// DevTools protocol.
type ChromeRenderer struct {
	cfg         ChromeConfig
	logger      *slog.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromeRenderer creates the renderer and its shared browser allocator.
// Call Close when done to tear the allocator down.
func NewChromeRenderer(cfg ChromeConfig) *ChromeRenderer {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultRenderTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &ChromeRenderer{
		cfg:         cfg,
		logger:      logger,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}
}

// Close tears down the browser allocator.
func (r *ChromeRenderer) Close() {
	r.allocCancel()
}

// RenderInvoice builds the invoice HTML and prints it to an A4 PDF.
func (r *ChromeRenderer) RenderInvoice(ctx context.Context, doc InvoiceDocument) ([]byte, error) {
	html, err := BuildInvoiceHTML(doc)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx)
	defer browserCancel()

	var pdfData []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginRight(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("pdf rendering timed out after %v: %w", r.cfg.Timeout, err)
		}
		r.logger.Error("PDF rendering failed", slog.String("error", err.Error()), slog.String("invoice_number", doc.Number))
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, errors.New("generated PDF is empty")
	}

	r.logger.Debug("Invoice PDF rendered",
		slog.String("invoice_number", doc.Number),
		slog.Int("bytes", len(pdfData)),
		slog.Duration("duration", time.Since(start)),
	)
	return pdfData, nil
}

var _ Renderer = (*ChromeRenderer)(nil)
