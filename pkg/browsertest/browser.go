// Package browsertest wraps Rod with the Chrome configuration the Roomshare
// e2e suite uses: headless, container-friendly, fixed viewport, with console
// error capture and screenshots for debugging failed flows.
package browsertest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Config configures Chrome launch options.
type Config struct {
	Headless bool          // Run in headless mode (default: true)
	Timeout  time.Duration // Default operation timeout (default: 30s)
}

// DefaultConfig returns sensible defaults for e2e testing.
func DefaultConfig() Config {
	return Config{
		Headless: true,
		Timeout:  30 * time.Second,
	}
}

// Client wraps a Rod browser with the suite's Chrome configuration.
type Client struct {
	browser *rod.Browser
	page    *rod.Page
	timeout time.Duration

	mu            sync.Mutex
	consoleErrors []string
}

// New launches headless Chrome and connects to it. The browser runs with:
//   - No sandbox (for container compatibility)
//   - GPU disabled
//   - A 1280x900 window, matching the suite's reference viewport
func New(cfg Config) (*Client, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("window-size", "1280,900")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	return &Client{
		browser: browser,
		timeout: cfg.Timeout,
	}, nil
}

// Open creates a fresh page without navigating. Use this when request
// interception must be installed before the first navigation.
func (c *Client) Open() *rod.Page {
	page := c.browser.MustPage()
	c.page = page
	c.captureConsole(page)
	return page
}

// Navigate opens a URL with timeout and returns the page for further
// interaction. If Open was called earlier, the existing page is reused so
// installed interception rules stay in effect.
func (c *Client) Navigate(url string) (*rod.Page, error) {
	page := c.page
	if page == nil {
		page = c.Open()
	}

	if err := page.Timeout(c.timeout).Navigate(url); err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	// Cancel timeout so Close() works
	page.CancelTimeout()
	return page, nil
}

// captureConsole records console.error output from the page. The suite
// asserts on it the way the reference flows collected console_errors.
func (c *Client) captureConsole(page *rod.Page) {
	go page.EachEvent(func(e *proto.RuntimeConsoleAPICalled) {
		if e.Type != proto.RuntimeConsoleAPICalledTypeError {
			return
		}
		msg := ""
		for i, arg := range e.Args {
			if i > 0 {
				msg += " "
			}
			if arg.Value.Val() != nil {
				msg += arg.Value.String()
			} else {
				msg += arg.Description
			}
		}
		c.mu.Lock()
		c.consoleErrors = append(c.consoleErrors, msg)
		c.mu.Unlock()
	})()
}

// ConsoleErrors returns every console.error message seen so far.
func (c *Client) ConsoleErrors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.consoleErrors))
	copy(out, c.consoleErrors)
	return out
}

// Page returns the current page, or nil if none open.
func (c *Client) Page() *rod.Page {
	return c.page
}

// Eval executes JavaScript on the current page and returns the result.
func (c *Client) Eval(js string) (any, error) {
	if c.page == nil {
		return nil, errors.New("no page open, call Navigate first")
	}
	result, err := c.page.Eval(js)
	if err != nil {
		return nil, fmt.Errorf("eval failed: %w", err)
	}
	return result.Value, nil
}

// EvalInt executes JavaScript expected to evaluate to a number.
func (c *Client) EvalInt(js string) (int, error) {
	if c.page == nil {
		return 0, errors.New("no page open, call Navigate first")
	}
	result, err := c.page.Eval(js)
	if err != nil {
		return 0, fmt.Errorf("eval failed: %w", err)
	}
	return result.Value.Int(), nil
}

// WaitStable waits for the page to be stable (no DOM changes).
func (c *Client) WaitStable() error {
	if c.page == nil {
		return errors.New("no page open")
	}
	return c.page.WaitStable(c.timeout)
}

// Screenshot writes a viewport screenshot of the current page to path,
// creating parent directories as needed.
func (c *Client) Screenshot(path string) error {
	if c.page == nil {
		return errors.New("no page open")
	}
	data, err := c.page.Screenshot(false, nil)
	if err != nil {
		return fmt.Errorf("screenshot failed: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Close cleans up browser resources.
// Always call this (via defer) to prevent orphaned Chrome processes.
func (c *Client) Close() error {
	if c.browser != nil {
		return c.browser.Close()
	}
	return nil
}
