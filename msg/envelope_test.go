package msg

import (
	"encoding/json"
	"reflect"
	"testing"

	"xdao.co/reflector/wire"
)

func TestNewEnvelopeIsEmpty(t *testing.T) {
	e := New[Empty]()
	if len(e.Messages) != 0 {
		t.Fatalf("fresh envelope has messages: %v", e.Messages)
	}
	if len(e.Attributes) != 0 {
		t.Fatalf("fresh envelope has attributes: %v", e.Attributes)
	}
	if e.Data != nil {
		t.Fatalf("fresh envelope has data: %v", e.Data)
	}
}

func TestEnvelopePreservesOrder(t *testing.T) {
	e := New[Empty]()
	e.AddMessage(Send[Empty]("friend", wire.NewCoins(1, "token")))
	e.AddMessage(Delegate[Empty]("validator", wire.NewCoin(100, "stake")))
	e.AddAttribute("action", "demo")
	e.AddAttribute("action", "demo")

	if len(e.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(e.Messages))
	}
	if e.Messages[0].Bank == nil || e.Messages[1].Staking == nil {
		t.Fatalf("message order not preserved: %+v", e.Messages)
	}
	// Duplicate attributes are kept.
	if len(e.Attributes) != 2 {
		t.Fatalf("got %d attributes, want 2", len(e.Attributes))
	}
}

func TestSetDataLastWriteWins(t *testing.T) {
	e := New[Empty]()
	e.SetData([]byte("first"))
	e.SetData([]byte("second"))
	if e.Data == nil || string(*e.Data) != "second" {
		t.Fatalf("got data %v, want %q", e.Data, "second")
	}
}

func TestEnvelopeJSONRoundTrip(t *testing.T) {
	e := New[Empty]()
	e.AddMessage(Send[Empty]("you", wire.NewCoins(1015, "earth")))
	e.AddAttribute("action", "release")
	e.SetData([]byte{0xAA, 0xBB})

	raw, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Envelope[Empty]
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(*e, back) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", back, *e)
	}
}

func TestMsgExternallyTaggedJSON(t *testing.T) {
	m := Execute[Empty]("unit-addr", wire.Binary(`{"do":"it"}`), nil)
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var tags map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tags); err != nil {
		t.Fatalf("unmarshal tags: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("expected exactly one union tag, got %v", tags)
	}
	if _, ok := tags["unit"]; !ok {
		t.Fatalf("expected unit tag, got %v", tags)
	}
}

func TestCustomArmCarriesPayload(t *testing.T) {
	type debugPayload struct {
		Note string `json:"note"`
	}
	m := Custom(debugPayload{Note: "hi"})
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Msg[debugPayload]
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Custom == nil || back.Custom.Note != "hi" {
		t.Fatalf("custom payload lost: %+v", back)
	}
}
