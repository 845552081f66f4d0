package document

import (
	"context"
	"fmt"
	"io"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// Renderer converts an HTML page to PDF bytes written to w.
type Renderer interface {
	Render(ctx context.Context, html string, w io.Writer) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, html string, w io.Writer) error

func (f RendererFunc) Render(ctx context.Context, html string, w io.Writer) error {
	return f(ctx, html, w)
}

// WKHTMLRenderer runs the wkhtmltopdf binary.
type WKHTMLRenderer struct {
	cfg RendererConfig
}

var _ Renderer = (*WKHTMLRenderer)(nil)

// NewWKHTMLRenderer creates a renderer. The binary is located on first use.
func NewWKHTMLRenderer(cfg RendererConfig) *WKHTMLRenderer {
	if cfg.Binary != "" {
		wkhtmltopdf.SetPath(cfg.Binary)
	}
	return &WKHTMLRenderer{cfg: cfg}
}

func (r *WKHTMLRenderer) Render(ctx context.Context, html string, w io.Writer) error {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return fmt.Errorf("document: wkhtmltopdf: %w", err)
	}
	if r.cfg.PageSize != "" {
		pdfg.PageSize.Set(r.cfg.PageSize)
	}
	if r.cfg.DPI > 0 {
		pdfg.Dpi.Set(r.cfg.DPI)
	}

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.Encoding.Set("UTF-8")
	pdfg.AddPage(page)
	pdfg.SetOutput(w)

	if err := pdfg.CreateContext(ctx); err != nil {
		return fmt.Errorf("document: wkhtmltopdf: %w", err)
	}
	return nil
}

// Available reports whether the wkhtmltopdf binary can be found.
func (r *WKHTMLRenderer) Available() bool {
	_, err := wkhtmltopdf.NewPDFGenerator()
	return err == nil
}
