package cart

import (
	"encoding/json"
	"errors"
	"fmt"
)

// The session wire format is a versioned document with an ordered array of
// lines. An array rather than a JSON object keyed by item id, so decoding
// reproduces insertion order exactly.
const codecVersion = 1

type sessionDoc struct {
	Version int    `json:"v"`
	Lines   []Line `json:"lines"`
}

var ErrUnknownVersion = errors.New("unknown cart encoding version")

// Encode serializes the cart for session storage.
func (c *Cart) Encode() ([]byte, error) {
	doc := sessionDoc{Version: codecVersion, Lines: c.Lines()}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return data, nil
}

// Decode rebuilds a cart from its serialized session form. Decoding the
// output of Encode yields an identical cart: same line order, quantities
// and captured item snapshots.
func Decode(data []byte) (*Cart, error) {
	var doc sessionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if doc.Version != codecVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, doc.Version)
	}
	c := New()
	for _, line := range doc.Lines {
		c.Add(line.Item, line.Quantity)
	}
	return c, nil
}
