package searchmock

import (
	"time"

	"github.com/google/uuid"
)

// Mode selects how the search response's map section should be rendered.
type Mode string

const (
	// ModePins: few enough results that each gets an individual pin.
	ModePins Mode = "pins"
	// ModeGeoJSON: result set large enough that the client renders the raw
	// feature collection instead of individual pins.
	ModeGeoJSON Mode = "geojson"
)

// PinThreshold is the exact item count at which the map section switches
// from individual pins to geojson-only. Tests assert on this boundary.
const PinThreshold = 50

// DefaultPageSize matches the application's search page size.
const DefaultPageSize = 12

// NextBatch is the envelope returned by a pagination continuation call.
type NextBatch struct {
	Items       []Listing `json:"items"`
	NextCursor  *string   `json:"nextCursor"`
	HasNextPage bool      `json:"hasNextPage"`
	Total       int       `json:"total"`
}

// NewNextBatch assembles a NextBatch. nextCursor == "" means no further page.
// total <= 0 defaults to len(items). HasNextPage is true iff a cursor is set;
// the two can never disagree.
func NewNextBatch(items []Listing, nextCursor string, total int) NextBatch {
	if total <= 0 {
		total = len(items)
	}
	b := NextBatch{Items: items, Total: total}
	if nextCursor != "" {
		c := nextCursor
		b.NextCursor = &c
		b.HasNextPage = true
	}
	return b
}

// PageEnvelope is the canonical pagination computation: it clamps offset into
// [0, len(all)], slices one page, and derives hasNextPage and the next cursor
// from the same arithmetic. Both the response builders and the interception
// session go through here, so the envelope can never contradict the decision
// that produced it.
func PageEnvelope(all []Listing, offset, pageSize int) NextBatch {
	total := len(all)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + pageSize
	if end > total {
		end = total
	}
	cursor := ""
	if offset+pageSize < total {
		cursor = EncodeCursor(offset + pageSize)
	}
	return NewNextBatch(all[offset:end], cursor, total)
}

// SearchMeta describes one search evaluation.
type SearchMeta struct {
	QueryHash   string    `json:"queryHash"`
	GeneratedAt time.Time `json:"generatedAt"`
	Mode        Mode      `json:"mode"`
}

// SearchList is the paged list section of a search response.
type SearchList struct {
	Items      []Listing `json:"items"`
	NextCursor *string   `json:"nextCursor"`
	Total      int       `json:"total"`
}

// SearchMap is the map section: always a feature collection, plus individual
// pins when the result set is below PinThreshold.
type SearchMap struct {
	GeoJSON FeatureCollection `json:"geojson"`
	Pins    []Pin             `json:"pins,omitempty"`
}

// SearchResponse mirrors the search API's full nested response shape.
type SearchResponse struct {
	Meta SearchMeta `json:"meta"`
	List SearchList `json:"list"`
	Map  SearchMap  `json:"map"`
}

// Pin is the lightweight per-listing map marker.
type Pin struct {
	ID    string  `json:"id"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Price int     `json:"price"`
}

// FeatureCollection is a minimal GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON point feature for a listing.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry holds a GeoJSON point. Coordinates are [lng, lat].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewSearchResponse builds the full search response for items. Features (and
// pins, when present) mirror the item order 1:1. Mode and pin inclusion both
// switch at PinThreshold, on the same comparison.
func NewSearchResponse(items []Listing) SearchResponse {
	batch := PageEnvelope(items, 0, len(items))
	resp := SearchResponse{
		Meta: SearchMeta{
			QueryHash:   uuid.NewString(),
			GeneratedAt: time.Now().UTC(),
			Mode:        ModeGeoJSON,
		},
		List: SearchList{
			Items:      batch.Items,
			NextCursor: batch.NextCursor,
			Total:      batch.Total,
		},
		Map: SearchMap{GeoJSON: featureCollection(items)},
	}
	if len(items) < PinThreshold {
		resp.Meta.Mode = ModePins
		resp.Map.Pins = pins(items)
	}
	return resp
}

func featureCollection(items []Listing) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(items))}
	for _, l := range items {
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: Geometry{Type: "Point", Coordinates: [2]float64{l.Lng, l.Lat}},
			Properties: map[string]any{
				"id":    l.ID,
				"price": l.Price,
			},
		})
	}
	return fc
}

func pins(items []Listing) []Pin {
	out := make([]Pin, 0, len(items))
	for _, l := range items {
		out = append(out, Pin{ID: l.ID, Lat: l.Lat, Lng: l.Lng, Price: l.Price})
	}
	return out
}
