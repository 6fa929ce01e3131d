// Package wire holds the value types that cross the boundary between a unit
// and its host: opaque binary payloads, response attributes, and coins.
//
// All types here marshal to the stable JSON forms the host understands.
// Callers should treat these as plain data; behavior lives elsewhere.
package wire

import "encoding/base64"

// Binary is an opaque byte payload.
//
// JSON note: encoded as base64 by encoding/json.
type Binary []byte

// String returns the base64 rendering used on the wire.
func (b Binary) String() string {
	return base64.StdEncoding.EncodeToString(b)
}

// Attribute is one (key, value) pair emitted with a response.
// Duplicates are permitted and insertion order is preserved.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Attr builds an Attribute.
func Attr(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Coin is an amount of a single token denomination.
//
// Amount is a decimal string to avoid JSON number precision loss.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// NewCoin builds a Coin from an integer amount.
func NewCoin(amount uint64, denom string) Coin {
	return Coin{Denom: denom, Amount: itoa(amount)}
}

// NewCoins builds a one-element coin list, the common case in tests.
func NewCoins(amount uint64, denom string) []Coin {
	return []Coin{NewCoin(amount, denom)}
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for v > 0 {
		pos--
		buf[pos] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[pos:])
}
