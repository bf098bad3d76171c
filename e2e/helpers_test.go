//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-rod/rod"

	"github.com/roomshare/e2e/internal/roomshare"
	"github.com/roomshare/e2e/pkg/browsertest"
)

const (
	cardCountJS = `() => document.querySelectorAll('[data-testid=listing-card]').length`

	waitTimeout = 15 * time.Second
)

// startFixture runs a Roomshare fixture on a random port and registers its
// shutdown with the test.
func startFixture(t *testing.T, cfg roomshare.Config) (*roomshare.Server, string) {
	t.Helper()

	srv, err := roomshare.NewServer(cfg)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	addr, err := srv.Start()
	if err != nil {
		t.Fatalf("failed to start fixture: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			t.Errorf("fixture shutdown error: %v", err)
		}
	})
	return srv, addr
}

// newBrowser launches headless Chrome and registers its cleanup.
func newBrowser(t *testing.T) *browsertest.Client {
	t.Helper()

	client, err := browsertest.New(browsertest.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create browser: %v", err)
	}
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Errorf("browser close error: %v", err)
		}
	})
	return client
}

// cardCount reads the number of rendered listing cards.
func cardCount(t *testing.T, client *browsertest.Client) int {
	t.Helper()
	n, err := client.EvalInt(cardCountJS)
	if err != nil {
		t.Fatalf("failed to count cards: %v", err)
	}
	return n
}

// waitForCards polls until exactly want cards are rendered. The continuation
// round-trips through the network stack, so appends are not synchronous with
// the click.
func waitForCards(t *testing.T, client *browsertest.Client, want int) {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for {
		n := cardCount(t, client)
		if n == want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d cards, have %d", want, n)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// waitForCondition polls a boolean JS expression until it holds.
func waitForCondition(t *testing.T, page *rod.Page, js string) {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for {
		result, err := page.Eval(js)
		if err != nil {
			t.Fatalf("failed to evaluate %s: %v", js, err)
		}
		if result.Value.Bool() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition never held: %s", js)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// listingID reads the listing id of the index-th rendered card.
func listingID(t *testing.T, page *rod.Page, index int) string {
	t.Helper()
	js := fmt.Sprintf(
		`() => document.querySelectorAll('[data-testid=listing-card]')[%d].dataset.listingId`,
		index)
	result, err := page.Eval(js)
	if err != nil {
		t.Fatalf("failed to read card %d: %v", index, err)
	}
	return result.Value.Str()
}

// clickLoadMore clicks the load-more button.
func clickLoadMore(t *testing.T, page *rod.Page) {
	t.Helper()
	if _, err := page.Eval(`() => document.querySelector('[data-testid=load-more]').click()`); err != nil {
		t.Fatalf("failed to click load-more: %v", err)
	}
}
