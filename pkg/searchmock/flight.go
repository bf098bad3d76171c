package searchmock

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlightContentType is the content type the streaming-component client
// expects on an action reply.
const FlightContentType = "text/x-component"

// flightHeader is row 0 of an action reply: row index, a back-reference to
// row 1 as "the result", and the fixed auxiliary fields the client parser
// skips over. The back-reference must name the exact row the payload is
// written to; there is no negotiation or fallback. This targets one fixed
// wire shape, and changes to the client's framing must be mirrored here.
const flightHeader = `0:{"a":"$@1","f":"","b":"dev"}` + "\n"

// EncodeActionReply serializes v as the two-row action reply frame:
//
//	0:{"a":"$@1","f":"","b":"dev"}
//	1:<v as JSON>
//
// Both rows are newline-terminated.
func EncodeActionReply(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode action reply payload: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(flightHeader)
	buf.WriteString("1:")
	buf.Write(payload)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// DecodeActionReply extracts the row-1 payload from a frame produced by
// EncodeActionReply (or by a server speaking the same framing). It checks
// that row 0 back-references the row the payload actually sits on.
func DecodeActionReply(frame []byte) (json.RawMessage, error) {
	rows := bytes.Split(bytes.TrimRight(frame, "\n"), []byte("\n"))
	if len(rows) != 2 {
		return nil, fmt.Errorf("action reply has %d rows, want 2", len(rows))
	}
	head, ok := bytes.CutPrefix(rows[0], []byte("0:"))
	if !ok {
		return nil, fmt.Errorf("row 0 is not indexed: %q", rows[0])
	}
	var meta struct {
		A string `json:"a"`
	}
	if err := json.Unmarshal(head, &meta); err != nil {
		return nil, fmt.Errorf("row 0 metadata: %w", err)
	}
	if meta.A != "$@1" {
		return nil, fmt.Errorf("row 0 references %q, want %q", meta.A, "$@1")
	}
	payload, ok := bytes.CutPrefix(rows[1], []byte("1:"))
	if !ok {
		return nil, fmt.Errorf("row 1 is not indexed: %q", rows[1])
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("row 1 payload is not valid JSON")
	}
	return json.RawMessage(payload), nil
}
