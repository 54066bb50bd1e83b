package builder

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"

	"github.com/muhammadolammi/resumeascode/internal/logger"
)

// Letter paper size in inches.
const (
	letterWidth  = 8.5
	letterHeight = 11.0
)

// PDFRenderer turns an HTML document into PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer prints HTML to PDF with a headless Chromium driven by rod.
type ChromeRenderer struct {
	// Bin is the browser executable. Empty means look it up or download it.
	Bin     string
	Timeout time.Duration
}

// NewChromeRenderer returns a renderer with a one minute timeout.
func NewChromeRenderer(bin string) *ChromeRenderer {
	return &ChromeRenderer{Bin: bin, Timeout: time.Minute}
}

func (c *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	l := launcher.New().Headless(true).Context(ctx)
	if c.Bin != "" {
		l = l.Bin(c.Bin)
	} else if path, ok := launcher.LookPath(); ok {
		l = l.Bin(path)
	}
	defer l.Cleanup()

	controlURL, err := l.Launch()
	if err != nil {
		return nil, errors.Wrap(err, "failed to launch browser")
	}
	logger.G(ctx).WithField("control_url", controlURL).Debug("browser launched")

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to browser")
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open page")
	}
	if err := page.SetDocumentContent(html); err != nil {
		return nil, errors.Wrap(err, "failed to load document")
	}
	if err := page.WaitLoad(); err != nil {
		return nil, errors.Wrap(err, "failed waiting for page load")
	}

	width, height := letterWidth, letterHeight
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:        &width,
		PaperHeight:       &height,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to print pdf")
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read pdf stream")
	}
	return data, nil
}

// WritePDF renders html with r and writes the result to path.
func WritePDF(ctx context.Context, r PDFRenderer, html, path string) error {
	data, err := r.RenderPDF(ctx, html)
	if err != nil {
		return err
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "failed to write %s", path)
}
