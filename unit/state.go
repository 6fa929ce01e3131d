package unit

import (
	"encoding/json"
	"fmt"

	"xdao.co/reflector/addr"
	"xdao.co/reflector/store"
)

// configKey is the single logical key this unit owns in its store.
var configKey = []byte("config")

// Record is the unit's persisted state: the current owner. It is written at
// initialization and never deleted; the owner field is the only value any
// entry point mutates.
type Record struct {
	Owner addr.Canonical `json:"owner"`
}

func loadRecord(kv store.KV) (Record, error) {
	raw, err := kv.Get(configKey)
	if err != nil {
		return Record{}, fmt.Errorf("loading state: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, fmt.Errorf("parsing state: %w", err)
	}
	return rec, nil
}

func saveRecord(kv store.KV, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("serializing state: %w", err)
	}
	if err := kv.Set(configKey, raw); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}
