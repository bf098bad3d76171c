package searchmock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNextBatch_Invariant(t *testing.T) {
	items := ListingBatch(0, 12)

	withCursor := NewNextBatch(items, EncodeCursor(12), 36)
	require.NotNil(t, withCursor.NextCursor)
	assert.True(t, withCursor.HasNextPage, "hasNextPage must be true iff nextCursor is set")
	assert.Equal(t, 36, withCursor.Total)

	lastPage := NewNextBatch(items, "", 0)
	assert.Nil(t, lastPage.NextCursor)
	assert.False(t, lastPage.HasNextPage)
	assert.Equal(t, len(items), lastPage.Total, "total defaults to len(items)")
}

func TestPageEnvelope_OffsetWalk(t *testing.T) {
	// The concrete scenario the suite's pagination tests rely on:
	// 36 listings, page size 12, three full pages.
	all := ListingBatch(0, 36)

	tests := []struct {
		offset     int
		firstID    string
		lastID     string
		count      int
		wantCursor int // -1 = no cursor
	}{
		{0, "mock-listing-0000", "mock-listing-0011", 12, 12},
		{12, "mock-listing-0012", "mock-listing-0023", 12, 24},
		{24, "mock-listing-0024", "mock-listing-0035", 12, -1},
		{36, "", "", 0, -1}, // a 4th call gets the clamped empty slice
		{99, "", "", 0, -1}, // past the end clamps the same way
	}
	for _, tt := range tests {
		b := PageEnvelope(all, tt.offset, 12)
		require.Len(t, b.Items, tt.count, "offset %d", tt.offset)
		assert.Equal(t, 36, b.Total)
		if tt.count > 0 {
			assert.Equal(t, tt.firstID, b.Items[0].ID)
			assert.Equal(t, tt.lastID, b.Items[len(b.Items)-1].ID)
		}
		if tt.wantCursor < 0 {
			assert.Nil(t, b.NextCursor, "offset %d", tt.offset)
			assert.False(t, b.HasNextPage)
			continue
		}
		require.NotNil(t, b.NextCursor, "offset %d", tt.offset)
		assert.True(t, b.HasNextPage)
		c, err := DecodeCursor(*b.NextCursor)
		require.NoError(t, err)
		assert.Equal(t, tt.wantCursor, c.Offset)
	}
}

func TestNewSearchResponse_ThresholdExact(t *testing.T) {
	below := NewSearchResponse(ListingBatch(0, PinThreshold-1))
	assert.Equal(t, ModePins, below.Meta.Mode)
	assert.Len(t, below.Map.Pins, PinThreshold-1, "pins are 1:1 with items below the threshold")

	at := NewSearchResponse(ListingBatch(0, PinThreshold))
	assert.Equal(t, ModeGeoJSON, at.Meta.Mode)
	assert.Nil(t, at.Map.Pins, "pins omitted at and above the threshold")
	assert.Len(t, at.Map.GeoJSON.Features, PinThreshold)
}

func TestNewSearchResponse_MirrorsItemOrder(t *testing.T) {
	items := ListingBatch(5, 10)
	resp := NewSearchResponse(items)

	require.Len(t, resp.Map.GeoJSON.Features, len(items))
	require.Len(t, resp.Map.Pins, len(items))
	for i, l := range items {
		f := resp.Map.GeoJSON.Features[i]
		assert.Equal(t, "Feature", f.Type)
		assert.Equal(t, "Point", f.Geometry.Type)
		assert.Equal(t, [2]float64{l.Lng, l.Lat}, f.Geometry.Coordinates, "coordinates are [lng, lat]")
		assert.Equal(t, l.ID, f.Properties["id"])
		assert.Equal(t, l.ID, resp.Map.Pins[i].ID)
	}

	assert.Equal(t, len(items), resp.List.Total)
	assert.Nil(t, resp.List.NextCursor, "a full response carries the whole result set")
	assert.NotEmpty(t, resp.Meta.QueryHash)
	assert.False(t, resp.Meta.GeneratedAt.IsZero())
}
