package roomshare

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/roomshare/e2e/pkg/searchmock"
)

// catalogIDPrefix is the fixture's listing ID prefix. It is deliberately
// different from the harness's mock prefix so a test can always tell which
// side produced a card.
const catalogIDPrefix = "lst-"

type city struct {
	name  string
	state string
	lat   float64
	lng   float64
}

// The suggested cities from the search page, with their downtown coordinates.
var cities = []city{
	{"Austin", "TX", 30.2672, -97.7431},
	{"Denver", "CO", 39.7392, -104.9903},
	{"Portland", "OR", 45.5152, -122.6784},
	{"Chicago", "IL", 41.8781, -87.6298},
}

var catalogEpoch = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

// catalogListings generates the fixture's deterministic catalog. It reuses
// the shared listing record shape but none of the harness's identity or
// cursor conventions.
func catalogListings(n int) []searchmock.Listing {
	out := make([]searchmock.Listing, 0, n)
	for i := 0; i < n; i++ {
		c := cities[i%len(cities)]
		out = append(out, searchmock.Listing{
			ID:          fmt.Sprintf("%s%06d", catalogIDPrefix, i),
			Title:       fmt.Sprintf("Room in %s, %s", c.name, c.state),
			Description: fmt.Sprintf("Furnished room %d in %s. Month-to-month, utilities included.", i, c.name),
			Price:       700 + i*10,
			Images: []string{
				fmt.Sprintf("https://images.roomshare.test/listings/%d/cover.jpg", i),
			},
			Amenities:  []string{"wifi", "kitchen"},
			HouseRules: []string{"no-smoking"},
			Languages:  []string{"en"},
			RoomType:   []string{"private", "shared", "entire"}[i%3],
			Lat:        c.lat + float64(i/len(cities))*0.003,
			Lng:        c.lng + float64(i/len(cities))*0.003,
			CreatedAt:  catalogEpoch.Add(time.Duration(i) * 6 * time.Hour),
		})
	}
	return out
}

// Fixture cursors are std base64 of "v1:<offset>", a different alphabet and
// payload than the harness's cursors, so the two token spaces never collide.
func encodeCatalogCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte("v1:" + strconv.Itoa(offset)))
}

func decodeCatalogCursor(token string) (int, error) {
	b, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("cursor is not base64: %w", err)
	}
	rest, ok := strings.CutPrefix(string(b), "v1:")
	if !ok {
		return 0, fmt.Errorf("cursor %q has no version prefix", b)
	}
	offset, err := strconv.Atoi(rest)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("cursor offset %q is not a non-negative integer", rest)
	}
	return offset, nil
}
