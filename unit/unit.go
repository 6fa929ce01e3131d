// Package unit implements the reflector unit: a minimal stateful execution
// unit that reflects arbitrary outbound messages on behalf of its owner and
// demonstrates the layered query protocol.
//
// The unit has three entry points. Init stores the caller as owner. Handle
// mutates: it either re-emits caller-supplied messages (owner-gated) or
// transfers ownership. Query is read-only and never touches the guard.
// Each invocation is one synchronous unit of work; the surrounding host is
// expected to commit storage effects only when the call returns without
// error.
package unit

import (
	"encoding/json"
	"errors"
	"fmt"

	"xdao.co/reflector/addr"
	"xdao.co/reflector/msg"
	"xdao.co/reflector/query"
	"xdao.co/reflector/store"
	"xdao.co/reflector/wire"
)

// Deps bundles the collaborators a call executes against. Every entry point
// receives an explicit Deps value; there is no ambient state.
type Deps struct {
	Store   store.KV
	Addr    addr.Codec
	Querier query.Wrapper[SpecialQuery]
}

// Env describes the unit's own place in the host environment.
type Env struct {
	// UnitAddr is this unit's display address.
	UnitAddr string
}

// Info describes the incoming call.
type Info struct {
	// Sender is the caller's display address, already authenticated by the host.
	Sender string
}

// Init stores the caller as the unit's owner. When m.CallbackID is set, the
// returned envelope carries exactly one execute message back to the caller
// so it can correlate the acknowledgement of its own instantiation request.
func Init(deps Deps, env Env, info Info, m InitMsg) (*msg.Envelope[CustomMsg], error) {
	owner, err := deps.Addr.ToCanonical(info.Sender)
	if err != nil {
		return nil, fmt.Errorf("resolving sender address: %w", err)
	}
	if err := saveRecord(deps.Store, Record{Owner: owner}); err != nil {
		return nil, err
	}

	resp := msg.New[CustomMsg]()
	if m.CallbackID != nil {
		payload, err := json.Marshal(CallbackMsg{
			InitCallback: &InitCallback{ID: *m.CallbackID, UnitAddr: env.UnitAddr},
		})
		if err != nil {
			return nil, fmt.Errorf("serializing init callback: %w", err)
		}
		resp.AddMessage(msg.Execute[CustomMsg](info.Sender, payload, nil))
	}
	return resp, nil
}

// Handle routes a mutation command.
func Handle(deps Deps, env Env, info Info, m HandleMsg) (*msg.Envelope[CustomMsg], error) {
	switch {
	case m.Reflect != nil:
		return handleReflect(deps, info, m.Reflect.Msgs)
	case m.ChangeOwner != nil:
		return handleChangeOwner(deps, info, m.ChangeOwner.Owner)
	default:
		return nil, errors.New("unit: unknown handle message")
	}
}

func handleReflect(deps Deps, info Info, msgs []msg.Msg[CustomMsg]) (*msg.Envelope[CustomMsg], error) {
	rec, err := loadRecord(deps.Store)
	if err != nil {
		return nil, err
	}
	sender, err := deps.Addr.ToCanonical(info.Sender)
	if err != nil {
		return nil, fmt.Errorf("resolving sender address: %w", err)
	}
	if err := authorize(sender, rec.Owner); err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, ErrMessagesEmpty
	}

	resp := msg.New[CustomMsg]()
	resp.Messages = msgs
	resp.AddAttribute("action", "reflect")
	return resp, nil
}

// handleChangeOwner performs an atomic read-modify-write of the owner
// record: load, authorize, validate the new address, then write. Any failure
// short-circuits before the write, so the owner is never partially updated.
func handleChangeOwner(deps Deps, info Info, newOwner string) (*msg.Envelope[CustomMsg], error) {
	rec, err := loadRecord(deps.Store)
	if err != nil {
		return nil, err
	}
	sender, err := deps.Addr.ToCanonical(info.Sender)
	if err != nil {
		return nil, fmt.Errorf("resolving sender address: %w", err)
	}
	if err := authorize(sender, rec.Owner); err != nil {
		return nil, err
	}
	owner, err := deps.Addr.ToCanonical(newOwner)
	if err != nil {
		return nil, fmt.Errorf("resolving new owner address: %w", err)
	}
	rec.Owner = owner
	if err := saveRecord(deps.Store, rec); err != nil {
		return nil, err
	}

	resp := msg.New[CustomMsg]()
	resp.AddAttribute("action", "change_owner")
	resp.AddAttribute("owner", newOwner)
	return resp, nil
}

// Query routes a read-only query and returns the JSON-encoded response.
// Queries never consult the guard and never mutate the store.
func Query(deps Deps, env Env, m QueryMsg) (wire.Binary, error) {
	switch {
	case m.Owner != nil:
		resp, err := queryOwner(deps)
		if err != nil {
			return nil, err
		}
		return toBinary(resp)
	case m.Capitalized != nil:
		resp, err := queryCapitalized(deps, m.Capitalized.Text)
		if err != nil {
			return nil, err
		}
		return toBinary(resp)
	case m.Chain != nil:
		resp, err := queryChain(deps, m.Chain.Request)
		if err != nil {
			return nil, err
		}
		return toBinary(resp)
	case m.Raw != nil:
		resp, err := queryRaw(deps, m.Raw.Unit, m.Raw.Key)
		if err != nil {
			return nil, err
		}
		return toBinary(resp)
	default:
		return nil, errors.New("unit: unknown query message")
	}
}

func queryOwner(deps Deps) (OwnerResponse, error) {
	rec, err := loadRecord(deps.Store)
	if err != nil {
		return OwnerResponse{}, err
	}
	display, err := deps.Addr.ToDisplay(rec.Owner)
	if err != nil {
		return OwnerResponse{}, fmt.Errorf("rendering owner address: %w", err)
	}
	return OwnerResponse{Owner: display}, nil
}

// queryCapitalized delegates the transform to the custom-query collaborator
// and returns its answer verbatim; the unit does not uppercase anything
// itself.
func queryCapitalized(deps Deps, text string) (CapitalizedResponse, error) {
	req := SpecialQuery{Capitalized: &CapitalizedText{Text: text}}
	var resp SpecialResponse
	if err := deps.Querier.Custom(req, &resp); err != nil {
		return CapitalizedResponse{}, err
	}
	return CapitalizedResponse{Text: resp.Msg}, nil
}

// queryChain forwards an arbitrary structured request to the host. The
// wrapper keeps the transport and logical failure layers distinct; both pass
// through here untouched.
func queryChain(deps Deps, request query.Request[SpecialQuery]) (ChainResponse, error) {
	data, err := deps.Querier.Raw(request)
	if err != nil {
		return ChainResponse{}, err
	}
	return ChainResponse{Data: data}, nil
}

// queryRaw reads one key from another unit's storage. A missing key is an
// empty payload, not an error.
func queryRaw(deps Deps, unitAddr string, key wire.Binary) (RawResponse, error) {
	data, err := deps.Querier.UnitRaw(unitAddr, key)
	if err != nil {
		return RawResponse{}, err
	}
	return RawResponse{Data: data}, nil
}

func toBinary(v any) (wire.Binary, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializing query response: %w", err)
	}
	return wire.Binary(raw), nil
}
