package export

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/piwi3910/RodCut/internal/model"
)

// ErrNoChrome is returned when no Chrome or Chromium executable can be found.
var ErrNoChrome = errors.New("no chrome executable found")

// DetectChromePath returns the first Chrome or Chromium binary found in the
// usual install locations, or "".
func DetectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// PrintHTMLToPDF prints an HTML document to A4 PDF with headless Chrome.
// An empty chromePath is autodetected.
func PrintHTMLToPDF(ctx context.Context, htmlDoc, chromePath string) ([]byte, error) {
	if chromePath == "" {
		chromePath = DetectChromePath()
	}
	if chromePath == "" {
		return nil, ErrNoChrome
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.ExecPath(chromePath),
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return pdf, nil
}

// PrintPlan renders the plan as HTML and prints it with headless Chrome.
// Unlike WritePDF it supports right-to-left Arabic reports.
func PrintPlan(ctx context.Context, plan model.CuttingPlan, opts Options, chromePath string) ([]byte, error) {
	doc, err := RenderHTML(plan, opts)
	if err != nil {
		return nil, err
	}
	return PrintHTMLToPDF(ctx, doc, chromePath)
}
