package query

import "xdao.co/reflector/wire"

// Request is the structured query union, generic over the custom query
// dialect C. Exactly one arm is set; the JSON form is externally tagged.
type Request[C any] struct {
	Bank   *BankQuery `json:"bank,omitempty"`
	Unit   *UnitQuery `json:"unit,omitempty"`
	Custom *C         `json:"custom,omitempty"`
}

// BankQuery reads token balances from the host's bank module.
type BankQuery struct {
	Balance     *BalanceQuery     `json:"balance,omitempty"`
	AllBalances *AllBalancesQuery `json:"all_balances,omitempty"`
}

type BalanceQuery struct {
	Address string `json:"address"`
	Denom   string `json:"denom"`
}

type AllBalancesQuery struct {
	Address string `json:"address"`
}

type BalanceResponse struct {
	Amount wire.Coin `json:"amount"`
}

type AllBalancesResponse struct {
	Amount []wire.Coin `json:"amount"`
}

// UnitQuery reads from another unit, either through its query entry point
// (Smart) or directly from its storage (Raw).
type UnitQuery struct {
	Smart *SmartQuery `json:"smart,omitempty"`
	Raw   *RawQuery   `json:"raw,omitempty"`
}

type SmartQuery struct {
	UnitAddr string      `json:"unit_addr"`
	Payload  wire.Binary `json:"payload"`
}

type RawQuery struct {
	UnitAddr string      `json:"unit_addr"`
	Key      wire.Binary `json:"key"`
}

// NewBalance builds a bank balance request.
func NewBalance[C any](address, denom string) Request[C] {
	return Request[C]{Bank: &BankQuery{Balance: &BalanceQuery{Address: address, Denom: denom}}}
}

// NewAllBalances builds a bank all-balances request.
func NewAllBalances[C any](address string) Request[C] {
	return Request[C]{Bank: &BankQuery{AllBalances: &AllBalancesQuery{Address: address}}}
}

// NewSmart builds a cross-unit smart query request.
func NewSmart[C any](unitAddr string, payload wire.Binary) Request[C] {
	return Request[C]{Unit: &UnitQuery{Smart: &SmartQuery{UnitAddr: unitAddr, Payload: payload}}}
}

// NewRaw builds a cross-unit raw storage request.
func NewRaw[C any](unitAddr string, key wire.Binary) Request[C] {
	return Request[C]{Unit: &UnitQuery{Raw: &RawQuery{UnitAddr: unitAddr, Key: key}}}
}

// NewCustom builds a custom-dialect request.
func NewCustom[C any](q C) Request[C] {
	return Request[C]{Custom: &q}
}
