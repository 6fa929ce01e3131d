// Package query implements the layered query protocol between a unit and its
// host.
//
// A forwarded query comes back through two result layers. The outer layer is
// the transport outcome: could the host route the request and parse the
// collaborator's answer at all. The inner layer is the logical outcome: did
// the collaborator accept the request. Only Ok(Ok(value)) carries a usable
// value; the two failure layers stay distinct all the way to the caller,
// because they diagnose different parts of the system.
package query

import "xdao.co/reflector/wire"

// HostResult is the outer, transport-layer result.
//
// Exactly one of Ok or Err is set. Err is a human-readable description of a
// routing, serialization, or resource failure.
type HostResult[T any] struct {
	Ok  *T     `json:"ok,omitempty"`
	Err string `json:"error,omitempty"`
}

// HostOk wraps a successfully transported inner result.
func HostOk[T any](v T) HostResult[T] {
	return HostResult[T]{Ok: &v}
}

// HostErr reports a transport-layer failure.
func HostErr[T any](desc string) HostResult[T] {
	return HostResult[T]{Err: desc}
}

// UnitResult is the inner, logical result produced by the queried collaborator.
//
// Exactly one of Ok or Err is set. Err is the collaborator's own rejection.
type UnitResult[T any] struct {
	Ok  *T     `json:"ok,omitempty"`
	Err string `json:"error,omitempty"`
}

// UnitOk wraps a collaborator's successful value.
func UnitOk[T any](v T) UnitResult[T] {
	return UnitResult[T]{Ok: &v}
}

// UnitErr reports a collaborator-level rejection.
func UnitErr[T any](desc string) UnitResult[T] {
	return UnitResult[T]{Err: desc}
}

// RawResult is the layered result shape the Querier collaborator returns.
type RawResult = HostResult[UnitResult[wire.Binary]]

// Querier is the host collaborator that answers forwarded queries.
//
// Contract:
// - RawQuery takes a serialized Request and never panics; every failure is
//   expressed inside the layered result.
// - RawQuery MUST NOT re-enter the querying unit's mutating entry points.
type Querier interface {
	RawQuery(request []byte) RawResult
}
