package testkit

import (
	"encoding/json"
	"fmt"
	"strings"

	"xdao.co/reflector/query"
	"xdao.co/reflector/unit"
	"xdao.co/reflector/wire"
)

// Querier is an in-memory query.Querier covering the built-in request arms
// and the reflector unit's SpecialQuery dialect.
//
// Unknown units map to a transport-layer failure (the host cannot route the
// request); a known unit with a missing raw key yields an empty payload.
type Querier struct {
	// Balances maps a display address to its coins.
	Balances map[string][]wire.Coin

	// RawStorage maps a unit's display address to its raw key space.
	RawStorage map[string]map[string][]byte

	// Custom overrides the SpecialQuery handling when non-nil.
	Custom func(q unit.SpecialQuery) query.UnitResult[wire.Binary]
}

var _ query.Querier = (*Querier)(nil)

// NewQuerier returns an empty Querier; populate the maps as needed.
func NewQuerier() *Querier {
	return &Querier{
		Balances:   map[string][]wire.Coin{},
		RawStorage: map[string]map[string][]byte{},
	}
}

// SetBalances configures the coins held by address.
func (q *Querier) SetBalances(address string, coins []wire.Coin) {
	q.Balances[address] = coins
}

// SetRaw stores one raw key for a unit, creating the unit's key space.
func (q *Querier) SetRaw(unitAddr string, key, value []byte) {
	m := q.RawStorage[unitAddr]
	if m == nil {
		m = map[string][]byte{}
		q.RawStorage[unitAddr] = m
	}
	m[string(key)] = value
}

// RegisterUnit makes a unit routable without storing any keys.
func (q *Querier) RegisterUnit(unitAddr string) {
	if q.RawStorage[unitAddr] == nil {
		q.RawStorage[unitAddr] = map[string][]byte{}
	}
}

func (q *Querier) RawQuery(request []byte) query.RawResult {
	var req query.Request[unit.SpecialQuery]
	if err := json.Unmarshal(request, &req); err != nil {
		return query.HostErr[query.UnitResult[wire.Binary]]("parsing query request: " + err.Error())
	}

	switch {
	case req.Bank != nil:
		return q.bankQuery(req.Bank)
	case req.Unit != nil:
		return q.unitQuery(req.Unit)
	case req.Custom != nil:
		if q.Custom != nil {
			return query.HostOk(q.Custom(*req.Custom))
		}
		return query.HostOk(specialQuery(*req.Custom))
	default:
		return query.HostErr[query.UnitResult[wire.Binary]]("unsupported query request")
	}
}

func (q *Querier) bankQuery(b *query.BankQuery) query.RawResult {
	switch {
	case b.AllBalances != nil:
		return unitOkJSON(query.AllBalancesResponse{Amount: q.Balances[b.AllBalances.Address]})
	case b.Balance != nil:
		amount := wire.NewCoin(0, b.Balance.Denom)
		for _, c := range q.Balances[b.Balance.Address] {
			if c.Denom == b.Balance.Denom {
				amount = c
				break
			}
		}
		return unitOkJSON(query.BalanceResponse{Amount: amount})
	default:
		return query.HostErr[query.UnitResult[wire.Binary]]("unsupported bank query")
	}
}

func (q *Querier) unitQuery(u *query.UnitQuery) query.RawResult {
	switch {
	case u.Raw != nil:
		space, ok := q.RawStorage[u.Raw.UnitAddr]
		if !ok {
			return query.HostErr[query.UnitResult[wire.Binary]](fmt.Sprintf("no such unit: %s", u.Raw.UnitAddr))
		}
		value := space[string(u.Raw.Key)]
		return query.HostOk(query.UnitOk(wire.Binary(value)))
	case u.Smart != nil:
		return query.HostErr[query.UnitResult[wire.Binary]]("smart queries are not routed by this mock")
	default:
		return query.HostErr[query.UnitResult[wire.Binary]]("unsupported unit query")
	}
}

// specialQuery is the default SpecialQuery collaborator: ping answers pong,
// capitalized answers the uppercase transform.
func specialQuery(sq unit.SpecialQuery) query.UnitResult[wire.Binary] {
	switch {
	case sq.Ping != nil:
		return unitOkJSONInner(unit.SpecialResponse{Msg: "pong"})
	case sq.Capitalized != nil:
		return unitOkJSONInner(unit.SpecialResponse{Msg: strings.ToUpper(sq.Capitalized.Text)})
	default:
		return query.UnitErr[wire.Binary]("unsupported special query")
	}
}

func unitOkJSON(v any) query.RawResult {
	return query.HostOk(unitOkJSONInner(v))
}

func unitOkJSONInner(v any) query.UnitResult[wire.Binary] {
	raw, err := json.Marshal(v)
	if err != nil {
		return query.UnitErr[wire.Binary]("serializing response: " + err.Error())
	}
	return query.UnitOk(wire.Binary(raw))
}
