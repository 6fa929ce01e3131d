package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"xdao.co/reflector/addr"
	"xdao.co/reflector/host/grpchost"
	"xdao.co/reflector/keys"
	"xdao.co/reflector/msg"
	"xdao.co/reflector/query"
	"xdao.co/reflector/unit"
	"xdao.co/reflector/wire"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "init":
		return cmdInit(args[1:], out, errOut)
	case "reflect":
		return cmdReflect(args[1:], out, errOut)
	case "change-owner":
		return cmdChangeOwner(args[1:], out, errOut)
	case "owner":
		return cmdOwner(args[1:], out, errOut)
	case "capitalized":
		return cmdCapitalized(args[1:], out, errOut)
	case "chain":
		return cmdChain(args[1:], out, errOut)
	case "raw":
		return cmdRaw(args[1:], out, errOut)
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "xdao-reflect: drive a hosted reflector unit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  xdao-reflect init --sender <addr> [--callback-id <id>] [--target <host:port>]")
	fmt.Fprintln(w, "  xdao-reflect reflect --sender <addr> --msg <json> [--msg ...] [--target <host:port>]")
	fmt.Fprintln(w, "  xdao-reflect change-owner --sender <addr> --owner <addr> [--target <host:port>]")
	fmt.Fprintln(w, "  xdao-reflect owner [--target <host:port>]")
	fmt.Fprintln(w, "  xdao-reflect capitalized --text <text> [--target <host:port>]")
	fmt.Fprintln(w, "  xdao-reflect chain --request <json> [--target <host:port>]")
	fmt.Fprintln(w, "  xdao-reflect raw --unit <addr> --key <key> [--key-hex] [--target <host:port>]")
	fmt.Fprintln(w, "  xdao-reflect key address --seed-hex <64hex> [--alg ed25519|dilithium3]")
	fmt.Fprintln(w, "  xdao-reflect key derive --seed-hex <64hex> --purpose <name>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - --msg takes one outbound message as JSON (repeatable, order preserved)")
	fmt.Fprintln(w, "  - addresses are display form; the daemon resolves them to canonical identities")
	fmt.Fprintln(w, "  - init/reflect/change-owner print the response envelope as JSON")
}

const defaultTarget = "127.0.0.1:7878"

func dialHost(target string) (*grpchost.Client, error) {
	client, err := grpchost.Dial(target, grpchost.DialOptions{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}
	client.Timeout = 10 * time.Second
	return client, nil
}

func printEnvelope(out io.Writer, env *msg.Envelope[unit.CustomMsg]) int {
	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return 1
	}
	_, _ = fmt.Fprintln(out, string(raw))
	return 0
}

func cmdInit(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var target string
	var sender string
	var callbackID string
	fs.StringVar(&target, "target", defaultTarget, "UnitHost address")
	fs.StringVar(&sender, "sender", "", "Caller display address")
	fs.StringVar(&callbackID, "callback-id", "", "Optional callback correlation ID")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if sender == "" {
		fmt.Fprintln(errOut, "missing --sender")
		return 2
	}

	client, err := dialHost(target)
	if err != nil {
		fmt.Fprintf(errOut, "dial: %v\n", err)
		return 1
	}
	defer client.Close()

	var m unit.InitMsg
	if callbackID != "" {
		m.CallbackID = &callbackID
	}
	env, err := client.Init(sender, m)
	if err != nil {
		fmt.Fprintf(errOut, "init: %v\n", err)
		return 1
	}
	return printEnvelope(out, env)
}

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdReflect(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("reflect", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var target string
	var sender string
	var rawMsgs stringList
	fs.StringVar(&target, "target", defaultTarget, "UnitHost address")
	fs.StringVar(&sender, "sender", "", "Caller display address")
	fs.Var(&rawMsgs, "msg", "Outbound message as JSON (repeatable)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if sender == "" {
		fmt.Fprintln(errOut, "missing --sender")
		return 2
	}
	if len(rawMsgs) == 0 {
		fmt.Fprintln(errOut, "missing --msg")
		return 2
	}

	msgs := make([]msg.Msg[unit.CustomMsg], 0, len(rawMsgs))
	for i, raw := range rawMsgs {
		var m msg.Msg[unit.CustomMsg]
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			fmt.Fprintf(errOut, "invalid --msg %d: %v\n", i+1, err)
			return 2
		}
		msgs = append(msgs, m)
	}

	client, err := dialHost(target)
	if err != nil {
		fmt.Fprintf(errOut, "dial: %v\n", err)
		return 1
	}
	defer client.Close()

	env, err := client.Handle(sender, unit.HandleMsg{Reflect: &unit.ReflectMsg{Msgs: msgs}})
	if err != nil {
		fmt.Fprintf(errOut, "reflect: %v\n", err)
		return 1
	}
	return printEnvelope(out, env)
}

func cmdChangeOwner(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("change-owner", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var target string
	var sender string
	var owner string
	fs.StringVar(&target, "target", defaultTarget, "UnitHost address")
	fs.StringVar(&sender, "sender", "", "Caller display address")
	fs.StringVar(&owner, "owner", "", "New owner display address")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if sender == "" {
		fmt.Fprintln(errOut, "missing --sender")
		return 2
	}
	if owner == "" {
		fmt.Fprintln(errOut, "missing --owner")
		return 2
	}

	client, err := dialHost(target)
	if err != nil {
		fmt.Fprintf(errOut, "dial: %v\n", err)
		return 1
	}
	defer client.Close()

	env, err := client.Handle(sender, unit.HandleMsg{ChangeOwner: &unit.ChangeOwnerMsg{Owner: owner}})
	if err != nil {
		fmt.Fprintf(errOut, "change-owner: %v\n", err)
		return 1
	}
	return printEnvelope(out, env)
}

func runQuery(target string, m unit.QueryMsg, out io.Writer, errOut io.Writer) int {
	client, err := dialHost(target)
	if err != nil {
		fmt.Fprintf(errOut, "dial: %v\n", err)
		return 1
	}
	defer client.Close()

	raw, err := client.Query(m)
	if err != nil {
		fmt.Fprintf(errOut, "query: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, string(raw))
	return 0
}

func cmdOwner(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("owner", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var target string
	fs.StringVar(&target, "target", defaultTarget, "UnitHost address")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	return runQuery(target, unit.QueryMsg{Owner: &unit.OwnerQuery{}}, out, errOut)
}

func cmdCapitalized(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("capitalized", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var target string
	var text string
	fs.StringVar(&target, "target", defaultTarget, "UnitHost address")
	fs.StringVar(&text, "text", "", "Text to capitalize")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if text == "" {
		fmt.Fprintln(errOut, "missing --text")
		return 2
	}
	return runQuery(target, unit.QueryMsg{Capitalized: &unit.CapitalizedQuery{Text: text}}, out, errOut)
}

func cmdChain(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("chain", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var target string
	var rawReq string
	fs.StringVar(&target, "target", defaultTarget, "UnitHost address")
	fs.StringVar(&rawReq, "request", "", "Structured query request as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if rawReq == "" {
		fmt.Fprintln(errOut, "missing --request")
		return 2
	}

	var req query.Request[unit.SpecialQuery]
	if err := json.Unmarshal([]byte(rawReq), &req); err != nil {
		fmt.Fprintf(errOut, "invalid --request: %v\n", err)
		return 2
	}
	return runQuery(target, unit.QueryMsg{Chain: &unit.ChainQuery{Request: req}}, out, errOut)
}

func cmdRaw(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("raw", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var target string
	var unitAddr string
	var key string
	var keyHex bool
	fs.StringVar(&target, "target", defaultTarget, "UnitHost address")
	fs.StringVar(&unitAddr, "unit", "", "Queried unit's display address")
	fs.StringVar(&key, "key", "", "Storage key")
	fs.BoolVar(&keyHex, "key-hex", false, "Interpret --key as hex bytes")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if unitAddr == "" {
		fmt.Fprintln(errOut, "missing --unit")
		return 2
	}
	if key == "" {
		fmt.Fprintln(errOut, "missing --key")
		return 2
	}

	keyBytes := []byte(key)
	if keyHex {
		var err error
		keyBytes, err = hex.DecodeString(key)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --key hex: %v\n", err)
			return 2
		}
	}
	return runQuery(target, unit.QueryMsg{Raw: &unit.RawQuery{Unit: unitAddr, Key: wire.Binary(keyBytes)}}, out, errOut)
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printKeyUsage(errOut)
		return 2
	}
	switch args[0] {
	case "address":
		return cmdKeyAddress(args[1:], out, errOut)
	case "derive":
		return cmdKeyDerive(args[1:], out, errOut)
	case "help", "-h", "--help":
		printKeyUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n\n", args[0])
		printKeyUsage(errOut)
		return 2
	}
}

func printKeyUsage(w io.Writer) {
	fmt.Fprintln(w, "xdao-reflect key: caller key helpers")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  xdao-reflect key address --seed-hex <64hex> [--alg ed25519|dilithium3]")
	fmt.Fprintln(w, "  xdao-reflect key derive --seed-hex <64hex> --purpose <name>")
}

func cmdKeyAddress(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key address", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var seedHex string
	var alg string
	fs.StringVar(&seedHex, "seed-hex", "", "Seed as hex")
	fs.StringVar(&alg, "alg", keys.AlgEd25519, "Key algorithm")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if seedHex == "" {
		fmt.Fprintln(errOut, "missing --seed-hex")
		return 2
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", err)
		return 2
	}

	var callerKey string
	switch alg {
	case keys.AlgEd25519:
		callerKey, err = keys.CallerKeyFromSeed(seed)
	case keys.AlgDilithium3:
		callerKey, err = keys.Dilithium3CallerKeyFromSeed(seed)
	default:
		fmt.Fprintf(errOut, "unsupported --alg: %q\n", alg)
		return 2
	}
	if err != nil {
		fmt.Fprintf(errOut, "derive key: %v\n", err)
		return 2
	}

	canonical, err := keys.Address(callerKey)
	if err != nil {
		fmt.Fprintf(errOut, "derive address: %v\n", err)
		return 1
	}
	display, err := addr.CIDCodec{}.ToDisplay(canonical)
	if err != nil {
		fmt.Fprintf(errOut, "render address: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Caller-Key: %s\n", callerKey)
	fmt.Fprintf(out, "Address: %s\n", display)
	return 0
}

func cmdKeyDerive(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key derive", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var seedHex string
	var purpose string
	fs.StringVar(&seedHex, "seed-hex", "", "Root seed as hex")
	fs.StringVar(&purpose, "purpose", "", "Purpose identifier (e.g. the unit's name)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if seedHex == "" {
		fmt.Fprintln(errOut, "missing --seed-hex")
		return 2
	}
	if purpose == "" {
		fmt.Fprintln(errOut, "missing --purpose")
		return 2
	}
	rootSeed, err := hex.DecodeString(seedHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", err)
		return 2
	}

	seed, err := keys.DerivePurposeSeed(rootSeed, purpose)
	if err != nil {
		fmt.Fprintf(errOut, "derive seed: %v\n", err)
		return 2
	}
	callerKey, err := keys.CallerKeyFromSeed(seed)
	if err != nil {
		fmt.Fprintf(errOut, "derive key: %v\n", err)
		return 1
	}
	canonical, err := keys.Address(callerKey)
	if err != nil {
		fmt.Fprintf(errOut, "derive address: %v\n", err)
		return 1
	}
	display, err := addr.CIDCodec{}.ToDisplay(canonical)
	if err != nil {
		fmt.Fprintf(errOut, "render address: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Caller-Key: %s\n", callerKey)
	fmt.Fprintf(out, "Address: %s\n", display)
	return 0
}
