package store_test

import (
	"testing"

	"xdao.co/reflector/store"
	"xdao.co/reflector/testkit"
)

func TestMemConformance(t *testing.T) {
	testkit.RunKVConformance(t, func(t *testing.T) store.KV {
		return store.NewMem()
	})
}

func TestMemIsolatesStoredBytes(t *testing.T) {
	kv := store.NewMem()
	value := []byte("original")
	if err := kv.Set([]byte("k"), value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value[0] = 'X'

	got, err := kv.Get([]byte("k"))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "original" {
		t.Fatalf("stored value aliased caller's slice: %q", got)
	}

	got[0] = 'Y'
	again, err := kv.Get([]byte("k"))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(again) != "original" {
		t.Fatalf("returned value aliased stored slice: %q", again)
	}
}
