package unit_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"xdao.co/reflector/msg"
	"xdao.co/reflector/query"
	"xdao.co/reflector/testkit"
	"xdao.co/reflector/unit"
	"xdao.co/reflector/wire"
)

func initUnit(t *testing.T, deps *testkit.Deps, sender string) {
	t.Helper()
	_, err := unit.Init(deps.UnitDeps(), testkit.MockEnv(), testkit.MockInfo(sender), unit.InitMsg{})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
}

func queryOwner(t *testing.T, deps *testkit.Deps) string {
	t.Helper()
	raw, err := unit.Query(deps.UnitDeps(), testkit.MockEnv(), unit.QueryMsg{Owner: &unit.OwnerQuery{}})
	if err != nil {
		t.Fatalf("Query(Owner): %v", err)
	}
	var resp unit.OwnerResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("parsing owner response: %v", err)
	}
	return resp.Owner
}

func TestProperInitialization(t *testing.T) {
	deps := testkit.NewDeps()

	resp, err := unit.Init(deps.UnitDeps(), testkit.MockEnv(), testkit.MockInfo("creator"), unit.InitMsg{})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(resp.Messages) != 0 {
		t.Fatalf("got %d messages, want 0", len(resp.Messages))
	}
	if len(resp.Attributes) != 0 || resp.Data != nil {
		t.Fatalf("init envelope should carry no attributes and no data: %+v", resp)
	}

	if owner := queryOwner(t, deps); owner != "creator" {
		t.Fatalf("got owner %q, want %q", owner, "creator")
	}
}

func TestInitWithCallback(t *testing.T) {
	deps := testkit.NewDeps()
	caller := "calling-unit"
	id := "foobar"

	resp, err := unit.Init(deps.UnitDeps(), testkit.MockEnv(), testkit.MockInfo(caller),
		unit.InitMsg{CallbackID: &id})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(resp.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(resp.Messages))
	}

	m := resp.Messages[0]
	if m.Unit == nil || m.Unit.Execute == nil {
		t.Fatalf("expected unit execute message, got %+v", m)
	}
	if m.Unit.Execute.UnitAddr != caller {
		t.Fatalf("callback addressed to %q, want %q", m.Unit.Execute.UnitAddr, caller)
	}
	var parsed unit.CallbackMsg
	if err := json.Unmarshal(m.Unit.Execute.Payload, &parsed); err != nil {
		t.Fatalf("parsing callback payload: %v", err)
	}
	if parsed.InitCallback == nil {
		t.Fatalf("expected init callback payload, got %+v", parsed)
	}
	if parsed.InitCallback.ID != "foobar" || parsed.InitCallback.UnitAddr != testkit.MockUnitAddr {
		t.Fatalf("unexpected callback payload: %+v", parsed.InitCallback)
	}

	if owner := queryOwner(t, deps); owner != caller {
		t.Fatalf("got owner %q, want %q", owner, caller)
	}
}

func TestReflect(t *testing.T) {
	deps := testkit.NewDeps()
	initUnit(t, deps, "creator")

	payload := []msg.Msg[unit.CustomMsg]{
		msg.Send[unit.CustomMsg]("friend", wire.NewCoins(1, "token")),
	}

	resp, err := unit.Handle(deps.UnitDeps(), testkit.MockEnv(), testkit.MockInfo("creator"),
		unit.HandleMsg{Reflect: &unit.ReflectMsg{Msgs: payload}})
	if err != nil {
		t.Fatalf("Handle(Reflect): %v", err)
	}

	got, err := json.Marshal(resp.Messages)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("reflected messages mismatch:\n got %s\nwant %s", got, want)
	}
	if len(resp.Attributes) != 1 || resp.Attributes[0] != wire.Attr("action", "reflect") {
		t.Fatalf("unexpected attributes: %+v", resp.Attributes)
	}
	if resp.Data != nil {
		t.Fatalf("reflect envelope should carry no data")
	}

	// Reflection must not touch the owner record.
	if owner := queryOwner(t, deps); owner != "creator" {
		t.Fatalf("owner changed by reflect: %q", owner)
	}
}

func TestReflectRequiresOwner(t *testing.T) {
	deps := testkit.NewDeps()
	initUnit(t, deps, "creator")

	payload := []msg.Msg[unit.CustomMsg]{
		msg.Send[unit.CustomMsg]("friend", wire.NewCoins(1, "token")),
	}
	_, err := unit.Handle(deps.UnitDeps(), testkit.MockEnv(), testkit.MockInfo("random"),
		unit.HandleMsg{Reflect: &unit.ReflectMsg{Msgs: payload}})

	var owner *unit.NotCurrentOwnerError
	if !errors.As(err, &owner) {
		t.Fatalf("got err=%v, want NotCurrentOwnerError", err)
	}
	expected, _ := testkit.Codec{}.ToCanonical("creator")
	actual, _ := testkit.Codec{}.ToCanonical("random")
	if !owner.Expected.Equal(expected) || !owner.Actual.Equal(actual) {
		t.Fatalf("unexpected identities in error: %+v", owner)
	}
}

func TestReflectRejectsEmptyMessages(t *testing.T) {
	deps := testkit.NewDeps()
	initUnit(t, deps, "creator")

	_, err := unit.Handle(deps.UnitDeps(), testkit.MockEnv(), testkit.MockInfo("creator"),
		unit.HandleMsg{Reflect: &unit.ReflectMsg{Msgs: nil}})
	if !errors.Is(err, unit.ErrMessagesEmpty) {
		t.Fatalf("got err=%v, want ErrMessagesEmpty", err)
	}
}

func TestReflectMultipleMessages(t *testing.T) {
	deps := testkit.NewDeps()
	initUnit(t, deps, "creator")

	payload := []msg.Msg[unit.CustomMsg]{
		msg.Send[unit.CustomMsg]("friend", wire.NewCoins(1, "token")),
		// Custom native messages pass through untouched.
		unit.RawCustom(wire.Binary(`{"foo":123}`)),
		unit.DebugCustom("Hi, Dad!"),
		msg.Delegate[unit.CustomMsg]("validator", wire.NewCoin(100, "ustake")),
	}

	resp, err := unit.Handle(deps.UnitDeps(), testkit.MockEnv(), testkit.MockInfo("creator"),
		unit.HandleMsg{Reflect: &unit.ReflectMsg{Msgs: payload}})
	if err != nil {
		t.Fatalf("Handle(Reflect): %v", err)
	}
	if len(resp.Messages) != len(payload) {
		t.Fatalf("got %d messages, want %d", len(resp.Messages), len(payload))
	}
	got, _ := json.Marshal(resp.Messages)
	want, _ := json.Marshal(payload)
	if string(got) != string(want) {
		t.Fatalf("order or content not preserved:\n got %s\nwant %s", got, want)
	}
}

func TestChangeOwnerWorks(t *testing.T) {
	deps := testkit.NewDeps()
	initUnit(t, deps, "creator")

	resp, err := unit.Handle(deps.UnitDeps(), testkit.MockEnv(), testkit.MockInfo("creator"),
		unit.HandleMsg{ChangeOwner: &unit.ChangeOwnerMsg{Owner: "friend"}})
	if err != nil {
		t.Fatalf("Handle(ChangeOwner): %v", err)
	}
	if len(resp.Messages) != 0 {
		t.Fatalf("got %d messages, want 0", len(resp.Messages))
	}
	wantAttrs := []wire.Attribute{wire.Attr("action", "change_owner"), wire.Attr("owner", "friend")}
	if len(resp.Attributes) != 2 || resp.Attributes[0] != wantAttrs[0] || resp.Attributes[1] != wantAttrs[1] {
		t.Fatalf("unexpected attributes: %+v", resp.Attributes)
	}

	if owner := queryOwner(t, deps); owner != "friend" {
		t.Fatalf("got owner %q, want %q", owner, "friend")
	}

	// The old owner has lost control.
	_, err = unit.Handle(deps.UnitDeps(), testkit.MockEnv(), testkit.MockInfo("creator"),
		unit.HandleMsg{ChangeOwner: &unit.ChangeOwnerMsg{Owner: "creator"}})
	if !unit.IsNotCurrentOwner(err) {
		t.Fatalf("got err=%v, want NotCurrentOwnerError", err)
	}
}

func TestChangeOwnerRequiresCurrentOwnerAsSender(t *testing.T) {
	deps := testkit.NewDeps()
	initUnit(t, deps, "creator")

	_, err := unit.Handle(deps.UnitDeps(), testkit.MockEnv(), testkit.MockInfo("random"),
		unit.HandleMsg{ChangeOwner: &unit.ChangeOwnerMsg{Owner: "friend"}})

	var owner *unit.NotCurrentOwnerError
	if !errors.As(err, &owner) {
		t.Fatalf("got err=%v, want NotCurrentOwnerError", err)
	}
	expected, _ := testkit.Codec{}.ToCanonical("creator")
	actual, _ := testkit.Codec{}.ToCanonical("random")
	if !owner.Expected.Equal(expected) || !owner.Actual.Equal(actual) {
		t.Fatalf("unexpected identities in error: %+v", owner)
	}
	if got := queryOwner(t, deps); got != "creator" {
		t.Fatalf("owner mutated by rejected call: %q", got)
	}
}

func TestChangeOwnerErrorsForInvalidNewAddress(t *testing.T) {
	deps := testkit.NewDeps()
	initUnit(t, deps, "creator")

	_, err := unit.Handle(deps.UnitDeps(), testkit.MockEnv(), testkit.MockInfo("creator"),
		unit.HandleMsg{ChangeOwner: &unit.ChangeOwnerMsg{Owner: "x"}})
	if err == nil {
		t.Fatalf("expected error for invalid new address")
	}
	// This surfaces as a generic address error, not a domain error.
	if unit.IsNotCurrentOwner(err) || errors.Is(err, unit.ErrMessagesEmpty) {
		t.Fatalf("invalid address should be a generic error, got %v", err)
	}
	if !strings.Contains(err.Error(), "too short") {
		t.Fatalf("got err=%v, want mention of short display address", err)
	}

	// All-or-nothing: the record is untouched.
	if owner := queryOwner(t, deps); owner != "creator" {
		t.Fatalf("owner mutated by failed change: %q", owner)
	}
}

func TestCapitalizedQueryWorks(t *testing.T) {
	deps := testkit.NewDeps()

	raw, err := unit.Query(deps.UnitDeps(), testkit.MockEnv(),
		unit.QueryMsg{Capitalized: &unit.CapitalizedQuery{Text: "demo one"}})
	if err != nil {
		t.Fatalf("Query(Capitalized): %v", err)
	}
	var resp unit.CapitalizedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	if resp.Text != "DEMO ONE" {
		t.Fatalf("got %q, want %q", resp.Text, "DEMO ONE")
	}
}

func TestChainQueryWorks(t *testing.T) {
	deps := testkit.NewDeps()
	deps.Querier.SetBalances(testkit.MockUnitAddr, wire.NewCoins(123, "ucosm"))

	// With a native bank query.
	raw, err := unit.Query(deps.UnitDeps(), testkit.MockEnv(), unit.QueryMsg{
		Chain: &unit.ChainQuery{Request: query.NewAllBalances[unit.SpecialQuery](testkit.MockUnitAddr)},
	})
	if err != nil {
		t.Fatalf("Query(Chain bank): %v", err)
	}
	var outer unit.ChainResponse
	if err := json.Unmarshal(raw, &outer); err != nil {
		t.Fatalf("parsing chain response: %v", err)
	}
	var balances query.AllBalancesResponse
	if err := json.Unmarshal(outer.Data, &balances); err != nil {
		t.Fatalf("parsing inner response: %v", err)
	}
	if len(balances.Amount) != 1 || balances.Amount[0] != wire.NewCoin(123, "ucosm") {
		t.Fatalf("got balances %+v", balances.Amount)
	}

	// With a custom query.
	raw, err = unit.Query(deps.UnitDeps(), testkit.MockEnv(), unit.QueryMsg{
		Chain: &unit.ChainQuery{Request: query.NewCustom(unit.SpecialQuery{Ping: &unit.PingQuery{}})},
	})
	if err != nil {
		t.Fatalf("Query(Chain custom): %v", err)
	}
	if err := json.Unmarshal(raw, &outer); err != nil {
		t.Fatalf("parsing chain response: %v", err)
	}
	var special unit.SpecialResponse
	if err := json.Unmarshal(outer.Data, &special); err != nil {
		t.Fatalf("parsing inner response: %v", err)
	}
	if special.Msg != "pong" {
		t.Fatalf("got %q, want %q", special.Msg, "pong")
	}
}

func TestChainQueryKeepsFailureLayersDistinct(t *testing.T) {
	deps := testkit.NewDeps()

	t.Run("TransportFailure", func(t *testing.T) {
		// No unit registered at that address: the host cannot route the request.
		_, err := unit.Query(deps.UnitDeps(), testkit.MockEnv(), unit.QueryMsg{
			Chain: &unit.ChainQuery{Request: query.NewRaw[unit.SpecialQuery]("ghost-unit", wire.Binary("key"))},
		})
		if !query.IsHostFailure(err) {
			t.Fatalf("got err=%v, want transport-layer failure", err)
		}
		if query.IsRejected(err) {
			t.Fatalf("transport failure must not read as rejection: %v", err)
		}
	})

	t.Run("LogicalFailure", func(t *testing.T) {
		deps.Querier.Custom = func(unit.SpecialQuery) query.UnitResult[wire.Binary] {
			return query.UnitErr[wire.Binary]("special queries disabled")
		}
		defer func() { deps.Querier.Custom = nil }()

		_, err := unit.Query(deps.UnitDeps(), testkit.MockEnv(), unit.QueryMsg{
			Chain: &unit.ChainQuery{Request: query.NewCustom(unit.SpecialQuery{Ping: &unit.PingQuery{}})},
		})
		if !query.IsRejected(err) {
			t.Fatalf("got err=%v, want collaborator rejection", err)
		}
		if query.IsHostFailure(err) {
			t.Fatalf("rejection must not read as transport failure: %v", err)
		}
	})
}

func TestRawQueryMissingKeyIsEmpty(t *testing.T) {
	deps := testkit.NewDeps()
	deps.Querier.RegisterUnit("other-unit")
	deps.Querier.SetRaw("other-unit", []byte("present"), []byte("value"))

	raw, err := unit.Query(deps.UnitDeps(), testkit.MockEnv(), unit.QueryMsg{
		Raw: &unit.RawQuery{Unit: "other-unit", Key: wire.Binary("missing")},
	})
	if err != nil {
		t.Fatalf("Query(Raw missing): %v", err)
	}
	var resp unit.RawResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	if len(resp.Data) != 0 {
		t.Fatalf("missing key should yield empty bytes, got %q", resp.Data)
	}

	raw, err = unit.Query(deps.UnitDeps(), testkit.MockEnv(), unit.QueryMsg{
		Raw: &unit.RawQuery{Unit: "other-unit", Key: wire.Binary("present")},
	})
	if err != nil {
		t.Fatalf("Query(Raw present): %v", err)
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	if string(resp.Data) != "value" {
		t.Fatalf("got %q, want %q", resp.Data, "value")
	}
}

func TestOwnerQueryIsIdempotent(t *testing.T) {
	deps := testkit.NewDeps()
	initUnit(t, deps, "creator")

	first := queryOwner(t, deps)
	for i := 0; i < 3; i++ {
		if got := queryOwner(t, deps); got != first {
			t.Fatalf("owner query not stable: %q vs %q", got, first)
		}
	}
}
