package grpchost

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/reflector/addr"
	"xdao.co/reflector/query"
	"xdao.co/reflector/store"
	"xdao.co/reflector/unit"
)

// mapErr translates a unit error into a gRPC status.
//
// The two query failure layers stay distinct on the wire: FailedPrecondition
// always means a collaborator rejection, Unavailable always means the
// transport layer never produced an answer.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, unit.ErrMessagesEmpty):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, addr.ErrInvalidAddress):
		return status.Error(codes.InvalidArgument, err.Error())
	case unit.IsNotCurrentOwner(err):
		return status.Error(codes.PermissionDenied, err.Error())
	case query.IsRejected(err):
		return status.Error(codes.FailedPrecondition, err.Error())
	case query.IsHostFailure(err):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// mapRPC is the client-side inverse of mapErr.
func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return store.ErrNotFound
	case codes.InvalidArgument:
		if st.Message() == unit.ErrMessagesEmpty.Error() {
			return unit.ErrMessagesEmpty
		}
		return errors.New(st.Message())
	case codes.FailedPrecondition:
		return &query.RejectedError{Desc: st.Message()}
	case codes.Unavailable:
		return &query.HostError{Desc: st.Message()}
	default:
		return err
	}
}
