package searchmock

import (
	"fmt"
	"time"
)

// IDPrefix is the lexical prefix of every generated listing ID. Fixture and
// production listings use different prefixes, so the two ID spaces are
// disjoint by construction.
const IDPrefix = "mock-listing-"

// Generated coordinates cluster inside a fixed bounding box around the base
// point. The wrap period keeps arbitrarily large indices inside the box.
const (
	baseLat = 30.2672  // Austin, TX
	baseLng = -97.7431 //
	geoWrap = 25
	latStep = 0.004
	lngStep = 0.006
)

var (
	roomTypes = []string{"private", "shared", "entire"}

	defaultAmenities  = []string{"wifi", "kitchen", "washer", "parking"}
	defaultHouseRules = []string{"no-smoking", "no-pets"}
	defaultLanguages  = []string{"en", "es"}
)

// listingEpoch anchors generated createdAt timestamps. The value is
// informational only; tests must not depend on it beyond determinism.
var listingEpoch = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

// Listing is one fabricated rental listing, shaped like the search API's
// listing records.
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	Images      []string  `json:"images"`
	Amenities   []string  `json:"amenities"`
	HouseRules  []string  `json:"houseRules"`
	Languages   []string  `json:"languages"`
	RoomType    string    `json:"roomType"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Overrides replaces generated defaults field-by-field. Nil pointers and nil
// slices leave the generated value in place; set fields win wholesale (a full
// merge, not a deep one).
type Overrides struct {
	ID          *string
	Title       *string
	Description *string
	Price       *int
	Images      []string
	Amenities   []string
	HouseRules  []string
	Languages   []string
	RoomType    *string
	Lat         *float64
	Lng         *float64
}

// NewListing generates the listing for index. Generation is pure: identical
// (index, overrides) pairs always yield structurally identical listings.
func NewListing(index int, o *Overrides) Listing {
	l := Listing{
		ID:          fmt.Sprintf("%s%04d", IDPrefix, index),
		Title:       fmt.Sprintf("Cozy room near downtown #%d", index),
		Description: fmt.Sprintf("Deterministic test listing %d. Sunny room, fast wifi, friendly housemates.", index),
		Price:       650 + index*15,
		Images: []string{
			fmt.Sprintf("https://images.roomshare.test/mock/%d/cover.jpg", index),
			fmt.Sprintf("https://images.roomshare.test/mock/%d/room.jpg", index),
			fmt.Sprintf("https://images.roomshare.test/mock/%d/kitchen.jpg", index),
		},
		Amenities:  defaultAmenities,
		HouseRules: defaultHouseRules,
		Languages:  defaultLanguages,
		RoomType:   roomTypes[index%len(roomTypes)],
		Lat:        baseLat + float64(index%geoWrap)*latStep,
		Lng:        baseLng + float64(index%geoWrap)*lngStep,
		CreatedAt:  listingEpoch.Add(time.Duration(index) * time.Hour),
	}
	if o == nil {
		return l
	}
	if o.ID != nil {
		l.ID = *o.ID
	}
	if o.Title != nil {
		l.Title = *o.Title
	}
	if o.Description != nil {
		l.Description = *o.Description
	}
	if o.Price != nil {
		l.Price = *o.Price
	}
	if o.Images != nil {
		l.Images = o.Images
	}
	if o.Amenities != nil {
		l.Amenities = o.Amenities
	}
	if o.HouseRules != nil {
		l.HouseRules = o.HouseRules
	}
	if o.Languages != nil {
		l.Languages = o.Languages
	}
	if o.RoomType != nil {
		l.RoomType = *o.RoomType
	}
	if o.Lat != nil {
		l.Lat = *o.Lat
	}
	if o.Lng != nil {
		l.Lng = *o.Lng
	}
	return l
}

// ListingBatch generates count listings for indices start..start+count-1,
// in ascending index order.
func ListingBatch(start, count int) []Listing {
	out := make([]Listing, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, NewListing(start+i, nil))
	}
	return out
}
