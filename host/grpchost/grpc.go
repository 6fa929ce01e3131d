package grpchost

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// UnitHostServer is the server API for the UnitHost gRPC service.
//
// Every method carries opaque JSON bytes in protobuf well-known wrapper
// types, so this package does not require a protoc/codegen toolchain.
//
// Proto definition: unithost.proto.
type UnitHostServer interface {
	Init(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Handle(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Query(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	RawQuery(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
}

// UnimplementedUnitHostServer can be embedded to have forward compatible implementations.
type UnimplementedUnitHostServer struct{}

func (UnimplementedUnitHostServer) Init(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Init not implemented")
}
func (UnimplementedUnitHostServer) Handle(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Handle not implemented")
}
func (UnimplementedUnitHostServer) Query(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Query not implemented")
}
func (UnimplementedUnitHostServer) RawQuery(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method RawQuery not implemented")
}

// RegisterUnitHostServer registers the UnitHost service on a gRPC server.
func RegisterUnitHostServer(s grpc.ServiceRegistrar, srv UnitHostServer) {
	s.RegisterService(&UnitHost_ServiceDesc, srv)
}

// UnitHostClient is the client API for the UnitHost gRPC service.
type UnitHostClient interface {
	Init(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Handle(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Query(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	RawQuery(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type unitHostClient struct{ cc grpc.ClientConnInterface }

func NewUnitHostClient(cc grpc.ClientConnInterface) UnitHostClient { return &unitHostClient{cc: cc} }

func (c *unitHostClient) Init(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.reflector.host.v1.UnitHost/Init", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *unitHostClient) Handle(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.reflector.host.v1.UnitHost/Handle", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *unitHostClient) Query(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.reflector.host.v1.UnitHost/Query", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *unitHostClient) RawQuery(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.reflector.host.v1.UnitHost/RawQuery", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _UnitHost_Init_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UnitHostServer).Init(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.reflector.host.v1.UnitHost/Init"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UnitHostServer).Init(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _UnitHost_Handle_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UnitHostServer).Handle(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.reflector.host.v1.UnitHost/Handle"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UnitHostServer).Handle(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _UnitHost_Query_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UnitHostServer).Query(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.reflector.host.v1.UnitHost/Query"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UnitHostServer).Query(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _UnitHost_RawQuery_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UnitHostServer).RawQuery(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.reflector.host.v1.UnitHost/RawQuery"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UnitHostServer).RawQuery(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// UnitHost_ServiceDesc is the grpc.ServiceDesc for the UnitHost service.
var UnitHost_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "xdao.reflector.host.v1.UnitHost",
	HandlerType: (*UnitHostServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Init", Handler: _UnitHost_Init_Handler},
		{MethodName: "Handle", Handler: _UnitHost_Handle_Handler},
		{MethodName: "Query", Handler: _UnitHost_Query_Handler},
		{MethodName: "RawQuery", Handler: _UnitHost_RawQuery_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "unithost.proto",
}
