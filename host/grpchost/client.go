package grpchost

import (
	"context"
	"encoding/json"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/reflector/msg"
	"xdao.co/reflector/query"
	"xdao.co/reflector/unit"
	"xdao.co/reflector/wire"
)

// Client drives a remotely hosted unit over the UnitHost gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client UnitHostClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewUnitHostClient(cc), Timeout: 0}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Init runs the remote unit's initialization entry point as sender.
func (c *Client) Init(sender string, m unit.InitMsg) (*msg.Envelope[unit.CustomMsg], error) {
	return c.call(func(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
		return c.client.Init(ctx, in)
	}, InitCall{Sender: sender, Msg: m})
}

// Handle runs the remote unit's mutation entry point as sender.
func (c *Client) Handle(sender string, m unit.HandleMsg) (*msg.Envelope[unit.CustomMsg], error) {
	return c.call(func(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
		return c.client.Handle(ctx, in)
	}, HandleCall{Sender: sender, Msg: m})
}

// Query runs the remote unit's read-only entry point and returns its JSON answer.
func (c *Client) Query(m unit.QueryMsg) (wire.Binary, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Query(ctx, wrapperspb.Bytes(raw))
	if err != nil {
		return nil, mapRPC(err)
	}
	return wire.Binary(reply.GetValue()), nil
}

// Querier exposes the remote host's query routing as a local query.Querier,
// so a unit running in this process can answer chain queries through the
// remote host. RPC failures surface as the transport layer of the result.
func (c *Client) Querier() query.Querier {
	return &RemoteQuerier{c: c}
}

// RemoteQuerier forwards raw query requests over the UnitHost service.
type RemoteQuerier struct {
	c *Client
}

var _ query.Querier = (*RemoteQuerier)(nil)

func (r *RemoteQuerier) RawQuery(request []byte) query.RawResult {
	ctx, cancel := r.c.ctx()
	defer cancel()

	reply, err := r.c.client.RawQuery(ctx, wrapperspb.Bytes(request))
	if err != nil {
		return query.HostErr[query.UnitResult[wire.Binary]]("rpc: " + err.Error())
	}
	var res query.RawResult
	if err := json.Unmarshal(reply.GetValue(), &res); err != nil {
		return query.HostErr[query.UnitResult[wire.Binary]]("parsing layered result: " + err.Error())
	}
	return res
}

func (c *Client) call(rpc func(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error), frame any) (*msg.Envelope[unit.CustomMsg], error) {
	raw, err := json.Marshal(frame)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := rpc(ctx, wrapperspb.Bytes(raw))
	if err != nil {
		return nil, mapRPC(err)
	}
	var env msg.Envelope[unit.CustomMsg]
	if err := json.Unmarshal(reply.GetValue(), &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
