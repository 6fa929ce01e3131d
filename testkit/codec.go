package testkit

import (
	"errors"
	"fmt"

	"xdao.co/reflector/addr"
)

// CanonicalLength is the fixed size of mock canonical identities.
const CanonicalLength = 32

// Codec is a deterministic, reversible addr.Codec for tests. The canonical
// form is a length byte, the display bytes, and zero padding up to
// CanonicalLength. Display addresses must be 3..=CanonicalLength-1 bytes, so
// too-short and too-long inputs exercise the generic validation-error path.
type Codec struct{}

var _ addr.Codec = Codec{}

func (Codec) ToCanonical(display string) (addr.Canonical, error) {
	if len(display) < 3 {
		return nil, fmt.Errorf("%w: display address too short", addr.ErrInvalidAddress)
	}
	if len(display) > CanonicalLength-1 {
		return nil, fmt.Errorf("%w: display address too long", addr.ErrInvalidAddress)
	}
	out := make(addr.Canonical, CanonicalLength)
	out[0] = byte(len(display))
	copy(out[1:], display)
	return out, nil
}

func (Codec) ToDisplay(id addr.Canonical) (string, error) {
	if len(id) != CanonicalLength {
		return "", fmt.Errorf("%w: unexpected canonical length %d", addr.ErrInvalidAddress, len(id))
	}
	n := int(id[0])
	if n < 3 || n > CanonicalLength-1 {
		return "", errors.New("corrupted canonical address")
	}
	return string(id[1 : 1+n]), nil
}
