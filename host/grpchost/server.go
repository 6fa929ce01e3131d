package grpchost

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/reflector/unit"
)

// InitCall is the JSON frame carried in an Init request.
type InitCall struct {
	Sender string       `json:"sender"`
	Msg    unit.InitMsg `json:"msg"`
}

// HandleCall is the JSON frame carried in a Handle request.
type HandleCall struct {
	Sender string         `json:"sender"`
	Msg    unit.HandleMsg `json:"msg"`
}

// Server hosts one unit over the UnitHost gRPC service.
//
// Init and Handle responses carry the JSON-encoded response envelope; Query
// responses carry the unit's JSON answer verbatim. RawQuery serves the host
// side of the layered query protocol: the layering stays in-band, so the RPC
// itself only fails for malformed frames or a missing collaborator.
type Server struct {
	UnimplementedUnitHostServer
	Deps unit.Deps
	Env  unit.Env
}

func (s *Server) Init(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Deps.Store == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing unit store")
	}
	var call InitCall
	if err := json.Unmarshal(in.GetValue(), &call); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed init frame")
	}
	resp, err := unit.Init(s.Deps, s.Env, unit.Info{Sender: call.Sender}, call.Msg)
	if err != nil {
		return nil, mapErr(err)
	}
	return marshalReply(resp)
}

func (s *Server) Handle(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Deps.Store == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing unit store")
	}
	var call HandleCall
	if err := json.Unmarshal(in.GetValue(), &call); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed handle frame")
	}
	resp, err := unit.Handle(s.Deps, s.Env, unit.Info{Sender: call.Sender}, call.Msg)
	if err != nil {
		return nil, mapErr(err)
	}
	return marshalReply(resp)
}

func (s *Server) Query(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Deps.Store == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing unit store")
	}
	var m unit.QueryMsg
	if err := json.Unmarshal(in.GetValue(), &m); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed query message")
	}
	resp, err := unit.Query(s.Deps, s.Env, m)
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bytes(resp), nil
}

func (s *Server) RawQuery(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Deps.Querier.Q == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing querier")
	}
	res := s.Deps.Querier.Q.RawQuery(in.GetValue())
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, status.Error(codes.Internal, "serializing layered result")
	}
	return wrapperspb.Bytes(raw), nil
}

func marshalReply(v any) (*wrapperspb.BytesValue, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "serializing response envelope")
	}
	return wrapperspb.Bytes(raw), nil
}
