// Package testkit provides mock collaborators and conformance suites for
// exercising units without a real host.
package testkit

import (
	"xdao.co/reflector/query"
	"xdao.co/reflector/store"
	"xdao.co/reflector/unit"
)

// MockUnitAddr is the display address of the unit under test.
const MockUnitAddr = "unit-under-test"

// Deps owns one test's collaborator set, with the concrete types exposed so
// tests can reach in and adjust them.
type Deps struct {
	Store   *store.Mem
	Codec   Codec
	Querier *Querier
}

// NewDeps returns a fresh collaborator set: empty in-memory store, the
// reversible mock codec, and an empty mock querier.
func NewDeps() *Deps {
	return &Deps{
		Store:   store.NewMem(),
		Codec:   Codec{},
		Querier: NewQuerier(),
	}
}

// UnitDeps bundles the mocks into the form the entry points take.
func (d *Deps) UnitDeps() unit.Deps {
	return unit.Deps{
		Store:   d.Store,
		Addr:    d.Codec,
		Querier: query.NewWrapper[unit.SpecialQuery](d.Querier),
	}
}

// MockEnv returns an Env placing the unit at MockUnitAddr.
func MockEnv() unit.Env {
	return unit.Env{UnitAddr: MockUnitAddr}
}

// MockInfo returns call info for the given sender display address.
func MockInfo(sender string) unit.Info {
	return unit.Info{Sender: sender}
}
