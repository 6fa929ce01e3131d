// Package addr defines unit and caller identities and the codec collaborator
// that converts between their display and canonical forms.
//
// A canonical identity is a fixed-length binary value; the display form is a
// human-readable string rendering of it. The core never inspects either form
// beyond equality, so the codec is the single authority on validity.
package addr

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

var ErrInvalidAddress = errors.New("addr: invalid address")

// Canonical is the binary form of an identity.
type Canonical []byte

// Equal reports byte equality of two canonical identities.
func (c Canonical) Equal(other Canonical) bool {
	return bytes.Equal(c, other)
}

// String returns a hex rendering for diagnostics. It is not the display form.
func (c Canonical) String() string {
	return hex.EncodeToString(c)
}

// Codec converts between display and canonical identity forms.
//
// Contract:
// - ToCanonical MUST reject strings that are not valid display addresses.
// - ToDisplay(ToCanonical(s)) MUST return s for any valid display address s.
// - Neither method may mutate its input or keep references to it.
type Codec interface {
	ToCanonical(display string) (Canonical, error)
	ToDisplay(id Canonical) (string, error)
}

// CIDCodec renders identities as CIDv1 strings (raw multicodec, sha2-256
// multihash). The canonical form is the binary CID.
type CIDCodec struct{}

func (CIDCodec) ToCanonical(display string) (Canonical, error) {
	id, err := cid.Decode(display)
	if err != nil || !id.Defined() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, display)
	}
	return Canonical(id.Bytes()), nil
}

func (CIDCodec) ToDisplay(c Canonical) (string, error) {
	id, err := cid.Cast(c)
	if err != nil || !id.Defined() {
		return "", fmt.Errorf("%w: canonical bytes are not a cid", ErrInvalidAddress)
	}
	return id.String(), nil
}

// FromBytes derives a canonical identity from arbitrary source material,
// typically a public key. The result is the binary CIDv1 (raw + sha2-256)
// of the input.
func FromBytes(data []byte) (Canonical, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return nil, err
	}
	return Canonical(cid.NewCidV1(cid.Raw, sum).Bytes()), nil
}
