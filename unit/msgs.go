package unit

import (
	"xdao.co/reflector/msg"
	"xdao.co/reflector/query"
	"xdao.co/reflector/wire"
)

// InitMsg configures initialization. CallbackID, when present, asks the unit
// to acknowledge its own instantiation back to the caller.
type InitMsg struct {
	CallbackID *string `json:"callback_id,omitempty"`
}

// HandleMsg is the mutation command union. Exactly one arm is set.
type HandleMsg struct {
	Reflect     *ReflectMsg     `json:"reflect,omitempty"`
	ChangeOwner *ChangeOwnerMsg `json:"change_owner,omitempty"`
}

// ReflectMsg asks the unit to re-emit the given messages as its own.
type ReflectMsg struct {
	Msgs []msg.Msg[CustomMsg] `json:"msgs"`
}

// ChangeOwnerMsg hands control of the unit to a new owner, given in display form.
type ChangeOwnerMsg struct {
	Owner string `json:"owner"`
}

// QueryMsg is the read-only query union. Exactly one arm is set.
type QueryMsg struct {
	Owner       *OwnerQuery       `json:"owner,omitempty"`
	Capitalized *CapitalizedQuery `json:"capitalized,omitempty"`
	Chain       *ChainQuery       `json:"chain,omitempty"`
	Raw         *RawQuery         `json:"raw,omitempty"`
}

type OwnerQuery struct{}

type CapitalizedQuery struct {
	Text string `json:"text"`
}

// ChainQuery forwards an arbitrary structured request to the host.
type ChainQuery struct {
	Request query.Request[SpecialQuery] `json:"request"`
}

// RawQuery reads one key from another unit's storage.
type RawQuery struct {
	Unit string      `json:"unit"`
	Key  wire.Binary `json:"key"`
}

type OwnerResponse struct {
	Owner string `json:"owner"`
}

type CapitalizedResponse struct {
	Text string `json:"text"`
}

type ChainResponse struct {
	Data wire.Binary `json:"data"`
}

type RawResponse struct {
	Data wire.Binary `json:"data"`
}

// CustomMsg is this unit's custom outbound payload: either a raw blob the
// host forwards untouched, or a debug string.
type CustomMsg struct {
	Raw   *wire.Binary `json:"raw,omitempty"`
	Debug *string      `json:"debug,omitempty"`
}

// RawCustom wraps blob in the custom outbound arm.
func RawCustom(blob wire.Binary) msg.Msg[CustomMsg] {
	return msg.Custom(CustomMsg{Raw: &blob})
}

// DebugCustom wraps text in the custom outbound arm.
func DebugCustom(text string) msg.Msg[CustomMsg] {
	return msg.Custom(CustomMsg{Debug: &text})
}

// CallbackMsg is the payload of the init acknowledgement sent back to the
// caller; the caller correlates it by ID.
type CallbackMsg struct {
	InitCallback *InitCallback `json:"init_callback,omitempty"`
}

type InitCallback struct {
	ID       string `json:"id"`
	UnitAddr string `json:"unit_addr"`
}

// SpecialQuery is this unit's custom query dialect, answered by the host's
// custom-query collaborator rather than by the unit itself.
type SpecialQuery struct {
	Ping        *PingQuery       `json:"ping,omitempty"`
	Capitalized *CapitalizedText `json:"capitalized,omitempty"`
}

type PingQuery struct{}

type CapitalizedText struct {
	Text string `json:"text"`
}

// SpecialResponse is the collaborator's answer to a SpecialQuery.
type SpecialResponse struct {
	Msg string `json:"msg"`
}
