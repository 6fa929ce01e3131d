package query

import (
	"encoding/json"
	"fmt"

	"xdao.co/reflector/wire"
)

// Wrapper forwards structured requests through a Querier and de-layers the
// results into ordinary Go errors: *HostError for the outer layer,
// *RejectedError for the inner one.
type Wrapper[C any] struct {
	Q Querier
}

// NewWrapper builds a Wrapper over q.
func NewWrapper[C any](q Querier) Wrapper[C] {
	return Wrapper[C]{Q: q}
}

// Raw serializes req, forwards it verbatim, and returns the de-layered value.
func (w Wrapper[C]) Raw(req Request[C]) (wire.Binary, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("serializing query request: %w", err)
	}
	return DeLayer(w.Q.RawQuery(raw))
}

// Into forwards req and decodes the de-layered value into out.
func (w Wrapper[C]) Into(req Request[C], out any) error {
	value, err := w.Raw(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(value, out); err != nil {
		return fmt.Errorf("parsing query response: %w", err)
	}
	return nil
}

// Custom forwards a custom-dialect query and decodes the response into out.
func (w Wrapper[C]) Custom(q C, out any) error {
	return w.Into(NewCustom[C](q), out)
}

// UnitRaw fetches raw bytes for key from another unit's storage. A missing
// key comes back as an empty payload, not an error: absence of a key is
// valid domain data.
func (w Wrapper[C]) UnitRaw(unitAddr string, key wire.Binary) (wire.Binary, error) {
	return w.Raw(NewRaw[C](unitAddr, key))
}

// AllBalances fetches every balance held by address.
func (w Wrapper[C]) AllBalances(address string) ([]wire.Coin, error) {
	var resp AllBalancesResponse
	if err := w.Into(NewAllBalances[C](address), &resp); err != nil {
		return nil, err
	}
	return resp.Amount, nil
}

// DeLayer collapses a layered raw result into (value, error), keeping the
// two failure layers as distinct error types. The layers are never merged:
// a *HostError means "could not ask", a *RejectedError means "was told no".
func DeLayer(res RawResult) (wire.Binary, error) {
	if res.Err != "" {
		return nil, &HostError{Desc: res.Err}
	}
	if res.Ok == nil {
		return nil, &HostError{Desc: "empty transport result"}
	}
	inner := *res.Ok
	if inner.Err != "" {
		return nil, &RejectedError{Desc: inner.Err}
	}
	if inner.Ok == nil {
		return nil, &RejectedError{Desc: "empty collaborator result"}
	}
	return *inner.Ok, nil
}
