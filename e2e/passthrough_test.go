//go:build e2e

package e2e

import (
	"testing"

	"github.com/roomshare/e2e/internal/roomshare"
	"github.com/roomshare/e2e/pkg/searchmock"
)

// TestSearch_PassThroughUnmatched installs the harness and then drives only
// traffic the matcher must NOT claim: the initial page GET and the map's
// search API GET. Both must reach the fixture untouched.
func TestSearch_PassThroughUnmatched(t *testing.T) {
	srv, addr := startFixture(t, roomshare.DefaultConfig())
	client := newBrowser(t)

	page := client.Open()
	sess, err := searchmock.Install(page, searchmock.Config{TotalListings: 36})
	if err != nil {
		t.Fatalf("failed to install harness: %v", err)
	}
	t.Cleanup(func() {
		if err := sess.Stop(); err != nil {
			t.Errorf("harness stop error: %v", err)
		}
	})

	if _, err := client.Navigate("http://" + addr + "/search"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if err := client.WaitStable(); err != nil {
		t.Fatalf("page not stable: %v", err)
	}
	waitForCards(t, client, 12)

	// The map pane fills in asynchronously from the fixture's search API.
	waitForCondition(t, page, `() => document.querySelector('[data-testid=map-mode]').textContent !== ''`)

	if sess.MatchedCalls() != 0 {
		t.Errorf("harness matched %d calls, want 0", sess.MatchedCalls())
	}
	stats := srv.Stats()
	if stats.SearchPageHits != 1 {
		t.Errorf("fixture page hits = %d, want 1", stats.SearchPageHits)
	}
	if stats.SearchAPIHits != 1 {
		t.Errorf("fixture search API hits = %d, want 1", stats.SearchAPIHits)
	}
}

// TestSearch_FixtureContinuation runs the flow with no harness installed:
// load-more must round-trip to the fixture and append its catalog listings.
func TestSearch_FixtureContinuation(t *testing.T) {
	srv, addr := startFixture(t, roomshare.DefaultConfig())
	client := newBrowser(t)

	page, err := client.Navigate("http://" + addr + "/search")
	if err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if err := client.WaitStable(); err != nil {
		t.Fatalf("page not stable: %v", err)
	}
	waitForCards(t, client, 12)

	clickLoadMore(t, page)
	waitForCards(t, client, 24)

	if got := listingID(t, page, 12); got != "lst-000012" {
		t.Errorf("first appended card = %q, want fixture listing lst-000012", got)
	}
	if hits := srv.Stats().ContinuationHits; hits != 1 {
		t.Errorf("fixture continuation hits = %d, want 1", hits)
	}
}
