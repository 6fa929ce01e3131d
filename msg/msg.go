// Package msg defines the outbound message union and the response envelope a
// unit returns from its entry points.
//
// An outbound message describes an effect for the host to carry out after the
// call returns. The union has a fixed set of built-in arms plus one open
// Custom arm, so integrators can ship domain-specific effects without
// touching this package. Exactly one arm of a union value may be set; the
// JSON wire form is externally tagged by the arm's field name.
package msg

import "xdao.co/reflector/wire"

// Empty is the custom payload type for units that define no custom messages.
type Empty struct{}

// Msg is one outbound message, generic over the custom payload type T.
type Msg[T any] struct {
	Bank    *BankMsg    `json:"bank,omitempty"`
	Staking *StakingMsg `json:"staking,omitempty"`
	Unit    *UnitMsg    `json:"unit,omitempty"`
	Custom  *T          `json:"custom,omitempty"`
}

// BankMsg moves funds between addresses.
type BankMsg struct {
	Send *BankSend `json:"send,omitempty"`
}

type BankSend struct {
	ToAddress string      `json:"to_address"`
	Amount    []wire.Coin `json:"amount"`
}

// StakingMsg adjusts validator delegations.
type StakingMsg struct {
	Delegate   *StakingDelegate   `json:"delegate,omitempty"`
	Undelegate *StakingUndelegate `json:"undelegate,omitempty"`
}

type StakingDelegate struct {
	Validator string    `json:"validator"`
	Amount    wire.Coin `json:"amount"`
}

type StakingUndelegate struct {
	Validator string    `json:"validator"`
	Amount    wire.Coin `json:"amount"`
}

// UnitMsg calls into another unit.
type UnitMsg struct {
	Execute     *UnitExecute     `json:"execute,omitempty"`
	Instantiate *UnitInstantiate `json:"instantiate,omitempty"`
}

type UnitExecute struct {
	// UnitAddr is the display address of the unit to call.
	UnitAddr string      `json:"unit_addr"`
	Payload  wire.Binary `json:"payload"`
	Send     []wire.Coin `json:"send"`
}

type UnitInstantiate struct {
	CodeID  uint64      `json:"code_id"`
	Payload wire.Binary `json:"payload"`
	Send    []wire.Coin `json:"send"`
	Label   string      `json:"label"`
}

// Send builds a bank-send outbound message.
func Send[T any](toAddress string, amount []wire.Coin) Msg[T] {
	return Msg[T]{Bank: &BankMsg{Send: &BankSend{ToAddress: toAddress, Amount: amount}}}
}

// Delegate builds a staking-delegate outbound message.
func Delegate[T any](validator string, amount wire.Coin) Msg[T] {
	return Msg[T]{Staking: &StakingMsg{Delegate: &StakingDelegate{Validator: validator, Amount: amount}}}
}

// Undelegate builds a staking-undelegate outbound message.
func Undelegate[T any](validator string, amount wire.Coin) Msg[T] {
	return Msg[T]{Staking: &StakingMsg{Undelegate: &StakingUndelegate{Validator: validator, Amount: amount}}}
}

// Execute builds a cross-unit execute message.
func Execute[T any](unitAddr string, payload wire.Binary, send []wire.Coin) Msg[T] {
	return Msg[T]{Unit: &UnitMsg{Execute: &UnitExecute{UnitAddr: unitAddr, Payload: payload, Send: send}}}
}

// Instantiate builds a cross-unit instantiate message.
func Instantiate[T any](codeID uint64, payload wire.Binary, send []wire.Coin, label string) Msg[T] {
	return Msg[T]{Unit: &UnitMsg{Instantiate: &UnitInstantiate{CodeID: codeID, Payload: payload, Send: send, Label: label}}}
}

// Custom wraps a domain-specific payload in the open union arm.
func Custom[T any](v T) Msg[T] {
	return Msg[T]{Custom: &v}
}
