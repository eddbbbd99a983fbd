package fetch

import (
	"context"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultRenderTimeout bounds a headless render. Rendering needs more
// headroom than a plain GET because the browser executes scripts.
const DefaultRenderTimeout = 30 * time.Second

// Rendered loads urlStr in a headless browser and returns the HTML after
// scripts have run. Requires Chrome/Chromium on the system.
func Rendered(ctx context.Context, urlStr string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to settle.
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{
			URL:     urlStr,
			Message: "browser rendering failed",
			Cause:   err,
		}
	}

	return html, nil
}
