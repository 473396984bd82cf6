package outbound

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// Replacement is sent for runes the remote charset cannot represent.
const Replacement = '?'

// Encoder converts a display rune to the bytes of the remote charset.
type Encoder interface {
	Encode(r rune) []byte
}

// UTF8 encodes runes as UTF-8.
type UTF8 struct{}

// Encode implements Encoder.
func (UTF8) Encode(r rune) []byte {
	if !utf8.ValidRune(r) {
		return []byte{Replacement}
	}
	return utf8.AppendRune(nil, r)
}

// Charset encodes runes into a golang.org/x/text encoding.
type Charset struct {
	name string
	enc  *encoding.Encoder
}

// Encode implements Encoder.
func (c *Charset) Encode(r rune) []byte {
	out, err := c.enc.Bytes(utf8.AppendRune(nil, r))
	if err != nil || len(out) == 0 {
		return []byte{Replacement}
	}
	return out
}

// Name is the charset label the encoder was built from.
func (c *Charset) Name() string {
	return c.name
}

// NewEncoder looks up a charset by its WHATWG or IANA name. An empty name
// and any UTF-8 label select the UTF8 fast path.
func NewEncoder(name string) (Encoder, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	switch label {
	case "", "utf-8", "utf8":
		return UTF8{}, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		enc, err = ianaindex.IANA.Encoding(label)
		if err != nil {
			return nil, fmt.Errorf("unknown charset %q: %w", name, err)
		}
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q is not supported", name)
	}

	return &Charset{name: label, enc: enc.NewEncoder()}, nil
}
