package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// browser owns one headless Chrome process and replaces it after maxPages
// pages, since Chrome's memory baseline only grows.
type browser struct {
	mu       sync.Mutex
	rod      *rod.Browser
	launcher *launcher.Launcher
	pages    int
	maxPages int
}

func newBrowser(maxPages int) (*browser, error) {
	b := &browser{maxPages: maxPages}
	r, l, err := launch()
	if err != nil {
		return nil, err
	}
	b.rod, b.launcher = r, l
	return b, nil
}

func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	r := rod.New().ControlURL(u)
	if err := r.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return r, l, nil
}

// acquire returns the browser to open the next page in and counts the page.
// A failed relaunch keeps the current process.
func (b *browser) acquire() *rod.Browser {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxPages > 0 && b.pages >= b.maxPages {
		if r, l, err := launch(); err == nil {
			_ = b.rod.Close()
			b.launcher.Kill()
			b.rod, b.launcher, b.pages = r, l, 0
		}
	}
	b.pages++
	return b.rod
}

func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.rod != nil {
		err = b.rod.Close()
		b.rod = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
