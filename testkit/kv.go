package testkit

import (
	"bytes"
	"testing"

	"xdao.co/reflector/store"
)

// NewKV constructs a fresh, empty KV instance for a test.
// The returned KV MUST be isolated from other tests.
type NewKV func(t *testing.T) store.KV

// RunKVConformance exercises the store.KV contract against any backend.
func RunKVConformance(t *testing.T, newKV NewKV) {
	t.Helper()

	t.Run("SetGetRoundTrip", func(t *testing.T) {
		kv := newKV(t)
		key := []byte("config")
		want := []byte(`{"owner":"AAECAw=="}`)

		if err := kv.Set(key, want); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := kv.Get(key)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Get bytes mismatch: got %q want %q", got, want)
		}
	})

	t.Run("SetReplaces", func(t *testing.T) {
		kv := newKV(t)
		key := []byte("config")

		if err := kv.Set(key, []byte("one")); err != nil {
			t.Fatalf("Set(1) failed: %v", err)
		}
		if err := kv.Set(key, []byte("two")); err != nil {
			t.Fatalf("Set(2) failed: %v", err)
		}
		got, err := kv.Get(key)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != "two" {
			t.Fatalf("Set did not replace: got %q", got)
		}
	})

	t.Run("HasAndNotFound", func(t *testing.T) {
		kv := newKV(t)
		key := []byte("missing")

		if kv.Has(key) {
			t.Fatalf("Has returned true for missing key")
		}
		if _, err := kv.Get(key); !store.IsNotFound(err) {
			t.Fatalf("Get missing: got err=%v want ErrNotFound", err)
		}

		if err := kv.Set(key, []byte("present")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if !kv.Has(key) {
			t.Fatalf("Has returned false after Set")
		}
	})

	t.Run("RejectEmptyKey", func(t *testing.T) {
		kv := newKV(t)
		if kv.Has(nil) {
			t.Fatalf("Has should be false for empty key")
		}
		if _, err := kv.Get(nil); err == nil {
			t.Fatalf("Get should fail for empty key")
		}
		if err := kv.Set(nil, []byte("v")); err == nil {
			t.Fatalf("Set should fail for empty key")
		}
	})

	t.Run("EmptyValueIsStored", func(t *testing.T) {
		kv := newKV(t)
		key := []byte("empty")
		if err := kv.Set(key, nil); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := kv.Get(key)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected empty value, got %q", got)
		}
		if !kv.Has(key) {
			t.Fatalf("Has returned false for stored empty value")
		}
	})
}
