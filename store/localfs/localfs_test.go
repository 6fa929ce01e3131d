package localfs_test

import (
	"testing"

	"xdao.co/reflector/store"
	"xdao.co/reflector/store/localfs"
	"xdao.co/reflector/testkit"
)

func TestLocalFSConformance(t *testing.T) {
	testkit.RunKVConformance(t, func(t *testing.T) store.KV {
		kv, err := localfs.New(t.TempDir())
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		return kv
	})
}

func TestLocalFSSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	kv, err := localfs.New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := kv.Set([]byte("config"), []byte("persisted")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened, err := localfs.New(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got, err := reopened.Get([]byte("config"))
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(got) != "persisted" {
		t.Fatalf("got %q, want %q", got, "persisted")
	}
}
