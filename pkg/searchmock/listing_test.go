package searchmock

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestNewListing_Deterministic(t *testing.T) {
	title := "Overridden title"
	price := 1234
	cases := []struct {
		name      string
		index     int
		overrides *Overrides
	}{
		{"no overrides", 0, nil},
		{"mid index", 17, nil},
		{"large index wraps geo", 10_007, nil},
		{"with overrides", 3, &Overrides{Title: &title, Price: &price}},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			a := NewListing(tt.index, tt.overrides)
			b := NewListing(tt.index, tt.overrides)
			if !reflect.DeepEqual(a, b) {
				t.Errorf("NewListing(%d) not reproducible:\n%+v\n%+v", tt.index, a, b)
			}
		})
	}
}

func TestNewListing_Fields(t *testing.T) {
	l := NewListing(7, nil)

	if l.ID != "mock-listing-0007" {
		t.Errorf("ID = %q, want zero-padded mock-listing-0007", l.ID)
	}
	if !strings.HasPrefix(l.ID, IDPrefix) {
		t.Errorf("ID %q missing prefix %q", l.ID, IDPrefix)
	}
	if len(l.Images) != 3 || len(l.Amenities) != 4 || len(l.HouseRules) != 2 || len(l.Languages) != 2 {
		t.Errorf("fixed-size lists wrong: images=%d amenities=%d rules=%d languages=%d",
			len(l.Images), len(l.Amenities), len(l.HouseRules), len(l.Languages))
	}

	// Price strictly increases with the index.
	prev := NewListing(0, nil).Price
	for i := 1; i < 40; i++ {
		p := NewListing(i, nil).Price
		if p <= prev {
			t.Fatalf("price not monotone at index %d: %d then %d", i, prev, p)
		}
		prev = p
	}
}

func TestNewListing_GeoBounded(t *testing.T) {
	// Coordinates must stay inside the wrap box however large the index gets.
	maxLat := baseLat + float64(geoWrap-1)*latStep
	maxLng := baseLng + float64(geoWrap-1)*lngStep
	for _, i := range []int{0, 1, geoWrap - 1, geoWrap, geoWrap + 3, 999, 123456} {
		l := NewListing(i, nil)
		if l.Lat < baseLat || l.Lat > maxLat {
			t.Errorf("index %d: lat %v outside [%v, %v]", i, l.Lat, baseLat, maxLat)
		}
		if l.Lng < baseLng || l.Lng > maxLng {
			t.Errorf("index %d: lng %v outside [%v, %v]", i, l.Lng, baseLng, maxLng)
		}
	}
}

func TestNewListing_OverridesMerge(t *testing.T) {
	id := "mock-listing-custom"
	roomType := "entire"
	o := &Overrides{
		ID:        &id,
		RoomType:  &roomType,
		Amenities: []string{"hot-tub"},
	}
	l := NewListing(5, o)

	if l.ID != id || l.RoomType != roomType {
		t.Errorf("override fields not applied: id=%q roomType=%q", l.ID, l.RoomType)
	}
	if !reflect.DeepEqual(l.Amenities, []string{"hot-tub"}) {
		t.Errorf("amenities = %v, want wholesale replacement", l.Amenities)
	}
	// Untouched fields keep their generated values.
	base := NewListing(5, nil)
	if l.Title != base.Title || l.Price != base.Price || l.Lat != base.Lat {
		t.Errorf("non-overridden fields changed: %+v vs %+v", l, base)
	}
}

func TestListingBatch_Contiguous(t *testing.T) {
	const start, count = 12, 24
	batch := ListingBatch(start, count)
	if len(batch) != count {
		t.Fatalf("len = %d, want %d", len(batch), count)
	}
	for i, l := range batch {
		want := fmt.Sprintf("%s%04d", IDPrefix, start+i)
		if l.ID != want {
			t.Errorf("batch[%d].ID = %q, want %q", i, l.ID, want)
		}
	}
}
