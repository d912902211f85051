package google

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/chromedp/chromedp"

	"keyword-scraper/config"
	"keyword-scraper/utils"
)

const fallbackUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Session owns the single browser instance used for a whole run. All
// keywords share one tab, the way a human session would, and Close releases
// the browser on every exit path.
type Session struct {
	logger  *utils.Logger
	tab     context.Context
	cancels []context.CancelFunc
}

// NewSession launches headless Chrome and returns a ready Session. The
// browser is started eagerly so a missing binary fails the run up front.
func NewSession(cfg *config.Config, logger *utils.Logger) (*Session, error) {
	chromeBin := cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Info("[google] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("lang", "en-US"),
		chromedp.Flag("accept-lang", "en-US"),
		chromedp.UserAgent(randomUserAgent()),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	tab, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	s := &Session{
		logger:  logger,
		tab:     tab,
		cancels: []context.CancelFunc{cancelTab, cancelAlloc},
	}

	if err := chromedp.Run(tab); err != nil {
		s.Close()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return s, nil
}

// Close tears the browser down. Safe to call more than once.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

// randomUserAgent returns a rotating desktop user agent, falling back to a
// pinned Chrome UA when the rotation source is unavailable.
func randomUserAgent() string {
	if ua := browser.Random(); ua != "" {
		return ua
	}
	return fallbackUserAgent
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
