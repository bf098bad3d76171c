package searchmock

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Cursor is the decoded form of a pagination resume token issued by this
// package. Mock is always true for harness-issued cursors; the application's
// own cursors use a different encoding entirely, so the two token spaces
// never collide.
type Cursor struct {
	Offset int  `json:"offset"`
	Mock   bool `json:"mock"`
}

// cursorEncoding is unpadded base64url: safe in query strings and header
// values, no whitespace, no characters needing escaping.
var cursorEncoding = base64.RawURLEncoding

// EncodeCursor encodes offset into an opaque URL-safe token tagged with the
// mock marker. Distinct offsets yield distinct tokens.
func EncodeCursor(offset int) string {
	b, _ := json.Marshal(Cursor{Offset: offset, Mock: true})
	return cursorEncoding.EncodeToString(b)
}

// DecodeCursor reverses EncodeCursor. It fails on tokens this package did not
// issue, including the application's own cursors.
func DecodeCursor(token string) (Cursor, error) {
	b, err := cursorEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("cursor is not base64url: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return Cursor{}, fmt.Errorf("cursor payload is not valid: %w", err)
	}
	if !c.Mock {
		return Cursor{}, fmt.Errorf("cursor %q does not carry the mock marker", token)
	}
	return c, nil
}
