// Package keys provides caller-key helpers for the reflector runtime.
//
// A caller key is the string form "<alg>:<base64 public key>" with alg one of
// ed25519 or dilithium3. The caller's canonical identity is derived from the
// raw public key bytes; see addr.FromBytes.
package keys

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"golang.org/x/crypto/sha3"

	"xdao.co/reflector/addr"
)

const (
	AlgEd25519    = "ed25519"
	AlgDilithium3 = "dilithium3"
)

// CallerKeyFromSeed returns the caller key string for an Ed25519 seed.
func CallerKeyFromSeed(seed []byte) (string, error) {
	if len(seed) != ed25519.SeedSize {
		return "", fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return AlgEd25519 + ":" + base64.StdEncoding.EncodeToString(pub), nil
}

// Dilithium3CallerKeyFromSeed returns the caller key string for a Dilithium3 seed.
func Dilithium3CallerKeyFromSeed(seed []byte) (string, error) {
	if len(seed) != mode3.SeedSize {
		return "", fmt.Errorf("dilithium3 seed must be %d bytes, got %d", mode3.SeedSize, len(seed))
	}
	var s [mode3.SeedSize]byte
	copy(s[:], seed)
	pk, _ := mode3.NewKeyFromSeed(&s)
	return AlgDilithium3 + ":" + base64.StdEncoding.EncodeToString(pk.Bytes()), nil
}

// PublicKeyBytes returns the raw public key bytes for a caller key string.
//
// Supported encodings:
// - ed25519:<base64>
// - dilithium3:<base64>
func PublicKeyBytes(callerKey string) ([]byte, error) {
	if callerKey == "" {
		return nil, errors.New("missing caller key")
	}
	alg, enc, ok := strings.Cut(callerKey, ":")
	if !ok {
		return nil, fmt.Errorf("invalid caller key encoding: %q", callerKey)
	}
	pub, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, fmt.Errorf("invalid caller key base64: %w", err)
	}
	switch alg {
	case AlgEd25519:
		if len(pub) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("invalid ed25519 public key length: %d", len(pub))
		}
		return pub, nil
	case AlgDilithium3:
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(pub); err != nil {
			return nil, fmt.Errorf("invalid dilithium3 public key: %w", err)
		}
		return pub, nil
	default:
		return nil, fmt.Errorf("unsupported caller key algorithm: %q", alg)
	}
}

// Address returns the canonical identity for a caller key string.
func Address(callerKey string) (addr.Canonical, error) {
	pub, err := PublicKeyBytes(callerKey)
	if err != nil {
		return nil, err
	}
	return addr.FromBytes(pub)
}

// DerivePurposeSeed deterministically derives a purpose-scoped Ed25519 seed
// from a root seed, so one root can control several units without key reuse.
func DerivePurposeSeed(rootSeed []byte, purpose string) ([]byte, error) {
	if len(rootSeed) != ed25519.SeedSize {
		return nil, fmt.Errorf("root seed must be %d bytes", ed25519.SeedSize)
	}
	if purpose == "" {
		return nil, errors.New("purpose must not be empty")
	}

	h := sha3.New256()
	_, _ = h.Write(rootSeed)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte("xdao-reflector-keys-v1"))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte("purpose:"))
	_, _ = h.Write([]byte(purpose))
	sum := h.Sum(nil)
	if len(sum) < ed25519.SeedSize {
		return nil, errors.New("kdf output too short")
	}
	out := make([]byte, ed25519.SeedSize)
	copy(out, sum[:ed25519.SeedSize])
	return out, nil
}
