package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/claude/planfit/internal/assets"
	"github.com/claude/planfit/internal/models"
)

// ErrRenderEngineUnavailable means no headless browser could be launched for
// PDF rendering. Distinct from generic failures so the user can act on it
// (install Chrome/Chromium or set export.chrome_path).
var ErrRenderEngineUnavailable = errors.New("no headless browser available for PDF rendering")

// browserNames are probed on PATH when no explicit path is configured.
var browserNames = []string{
	"google-chrome", "google-chrome-stable", "chromium", "chromium-browser",
	"headless-shell", "chrome",
}

// PDFRenderer drives an external headless browser in print layout. The
// browser is an opaque subprocess dependency: input is a fully-resolved HTML
// string, output is PDF bytes.
type PDFRenderer struct {
	execPath string
}

// NewPDFRenderer creates a renderer. chromePath may be empty, in which case
// well-known browser binaries are looked up on PATH at render time.
func NewPDFRenderer(chromePath string) *PDFRenderer {
	return &PDFRenderer{execPath: chromePath}
}

func (r *PDFRenderer) browserPath() (string, error) {
	if r.execPath != "" {
		if _, err := os.Stat(r.execPath); err != nil {
			return "", fmt.Errorf("%w: configured path %s: %v", ErrRenderEngineUnavailable, r.execPath, err)
		}
		return r.execPath, nil
	}
	for _, name := range browserNames {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", ErrRenderEngineUnavailable
}

// Render converts a self-contained HTML document into paginated A4 PDF
// bytes.
func (r *PDFRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	path, err := r.browserPath()
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(path),
		chromedp.NoSandbox,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var pdf []byte
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	return pdf, nil
}

// PDF builds the self-contained HTML for the plan and renders it to PDF.
func (r *PDFRenderer) PDF(ctx context.Context, plan *models.WorkoutPlan, cache *assets.ImageCache) ([]byte, error) {
	doc, err := HTML(plan, cache)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, string(doc))
}
