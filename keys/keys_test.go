package keys

import (
	"crypto/ed25519"
	"encoding/base64"
	"strings"
	"testing"
)

func TestCallerKeyFromSeedFormat(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = 0x42
	}
	key, err := CallerKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("CallerKeyFromSeed: %v", err)
	}
	if !strings.HasPrefix(key, "ed25519:") {
		t.Fatalf("expected ed25519 prefix, got %q", key)
	}
	b64 := strings.TrimPrefix(key, "ed25519:")
	pub, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("expected valid base64: %v", err)
	}
	if len(pub) != ed25519.PublicKeySize {
		t.Fatalf("expected %d pubkey bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
}

func TestPublicKeyBytesRoundTrip(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	key, err := CallerKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("CallerKeyFromSeed: %v", err)
	}
	pub, err := PublicKeyBytes(key)
	if err != nil {
		t.Fatalf("PublicKeyBytes: %v", err)
	}
	want := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	if string(pub) != string(want) {
		t.Fatalf("public key bytes mismatch")
	}
}

func TestPublicKeyBytesRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"ed25519",
		"ed25519:!!!",
		"ed25519:" + base64.StdEncoding.EncodeToString([]byte("short")),
		"rsa:" + base64.StdEncoding.EncodeToString(make([]byte, 32)),
	}
	for _, c := range cases {
		if _, err := PublicKeyBytes(c); err == nil {
			t.Fatalf("expected error for %q", c)
		}
	}
}

func TestAddressDeterministic(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = 7
	key, err := CallerKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("CallerKeyFromSeed: %v", err)
	}
	a, err := Address(key)
	if err != nil {
		t.Fatalf("Address: %v", err)
	}
	b, err := Address(key)
	if err != nil {
		t.Fatalf("Address: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("expected deterministic address derivation")
	}
}

func TestDerivePurposeSeed(t *testing.T) {
	root := make([]byte, ed25519.SeedSize)
	for i := range root {
		root[i] = byte(i)
	}

	a, err := DerivePurposeSeed(root, "treasury")
	if err != nil {
		t.Fatalf("DerivePurposeSeed: %v", err)
	}
	b, err := DerivePurposeSeed(root, "treasury")
	if err != nil {
		t.Fatalf("DerivePurposeSeed: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("expected deterministic derivation")
	}

	c, err := DerivePurposeSeed(root, "ops")
	if err != nil {
		t.Fatalf("DerivePurposeSeed: %v", err)
	}
	if string(a) == string(c) {
		t.Fatalf("expected different purposes to derive different seeds")
	}

	if _, err := DerivePurposeSeed(root[:8], "treasury"); err == nil {
		t.Fatalf("expected error for short root seed")
	}
	if _, err := DerivePurposeSeed(root, ""); err == nil {
		t.Fatalf("expected error for empty purpose")
	}
}

func TestDilithium3CallerKeyFromSeed(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(255 - i)
	}
	key, err := Dilithium3CallerKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("Dilithium3CallerKeyFromSeed: %v", err)
	}
	if !strings.HasPrefix(key, "dilithium3:") {
		t.Fatalf("expected dilithium3 prefix, got %q", key)
	}
	if _, err := PublicKeyBytes(key); err != nil {
		t.Fatalf("PublicKeyBytes: %v", err)
	}
	if _, err := Address(key); err != nil {
		t.Fatalf("Address: %v", err)
	}
}
