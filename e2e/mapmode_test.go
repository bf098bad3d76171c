//go:build e2e

package e2e

import (
	"strconv"
	"testing"

	"github.com/roomshare/e2e/internal/roomshare"
	"github.com/roomshare/e2e/pkg/searchmock"
)

// TestSearchMap_PinThreshold stubs the search API with fabricated result
// sets on either side of the pin threshold and checks the map pane follows
// the mode the payload declares.
func TestSearchMap_PinThreshold(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		wantMode string
	}{
		{"below threshold uses pins", searchmock.PinThreshold - 1, "pins"},
		{"at threshold switches to geojson", searchmock.PinThreshold, "geojson"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, addr := startFixture(t, roomshare.DefaultConfig())
			client := newBrowser(t)

			page := client.Open()
			stub, err := searchmock.InstallSearch(page, searchmock.ListingBatch(0, tt.total))
			if err != nil {
				t.Fatalf("failed to install search stub: %v", err)
			}
			t.Cleanup(func() {
				if err := stub.Stop(); err != nil {
					t.Errorf("stub stop error: %v", err)
				}
			})

			if _, err := client.Navigate("http://" + addr + "/search"); err != nil {
				t.Fatalf("failed to navigate: %v", err)
			}
			waitForCondition(t, page, `() => document.querySelector('[data-testid=map-mode]').textContent !== ''`)

			mode, err := page.Eval(`() => document.querySelector('[data-testid=map-mode]').textContent`)
			if err != nil {
				t.Fatalf("failed to read map mode: %v", err)
			}
			if got := mode.Value.Str(); got != tt.wantMode {
				t.Errorf("map mode = %q, want %q", got, tt.wantMode)
			}

			count, err := page.Eval(`() => document.querySelector('[data-testid=map-pin-count]').textContent`)
			if err != nil {
				t.Fatalf("failed to read pin count: %v", err)
			}
			if got := count.Value.Str(); got != strconv.Itoa(tt.total) {
				t.Errorf("pin count = %q, want %d", got, tt.total)
			}

			if stub.Calls() != 1 {
				t.Errorf("stub answered %d calls, want 1", stub.Calls())
			}
		})
	}
}
