package addr

import (
	"errors"
	"testing"
)

func TestCIDCodecRoundTrip(t *testing.T) {
	id, err := FromBytes([]byte("some public key material"))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	codec := CIDCodec{}
	display, err := codec.ToDisplay(id)
	if err != nil {
		t.Fatalf("ToDisplay: %v", err)
	}
	back, err := codec.ToCanonical(display)
	if err != nil {
		t.Fatalf("ToCanonical: %v", err)
	}
	if !id.Equal(back) {
		t.Fatalf("round trip mismatch: %s vs %s", id, back)
	}

	again, err := codec.ToDisplay(back)
	if err != nil {
		t.Fatalf("ToDisplay(back): %v", err)
	}
	if again != display {
		t.Fatalf("display not stable: %q vs %q", again, display)
	}
}

func TestCIDCodecRejectsInvalidDisplay(t *testing.T) {
	codec := CIDCodec{}
	for _, display := range []string{"", "x", "not-a-cid-at-all"} {
		_, err := codec.ToCanonical(display)
		if !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("ToCanonical(%q): got err=%v want ErrInvalidAddress", display, err)
		}
	}
}

func TestCIDCodecRejectsInvalidCanonical(t *testing.T) {
	codec := CIDCodec{}
	if _, err := codec.ToDisplay(Canonical{0x01, 0x02}); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("ToDisplay: got err=%v want ErrInvalidAddress", err)
	}
	if _, err := codec.ToDisplay(nil); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("ToDisplay(nil): got err=%v want ErrInvalidAddress", err)
	}
}

func TestFromBytesDeterministic(t *testing.T) {
	a, err := FromBytes([]byte("caller"))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	b, err := FromBytes([]byte("caller"))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("expected deterministic derivation")
	}
	c, err := FromBytes([]byte("other"))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if a.Equal(c) {
		t.Fatalf("expected distinct inputs to derive distinct identities")
	}
}
