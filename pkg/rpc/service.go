package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Unary declares a unary method of service whose implementation is fn.
func Unary[S any, Req any, Resp any](service, method string, fn func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(S)
			if interceptor == nil {
				return fn(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return fn(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Sender is the server side of a server-streaming RPC.
type Sender[Resp any] interface {
	Send(*Resp) error
	Context() context.Context
}

type sender[Resp any] struct {
	grpc.ServerStream
}

func (s *sender[Resp]) Send(m *Resp) error { return s.ServerStream.SendMsg(m) }

// ServerStream declares a server-streaming method whose implementation is fn.
func ServerStream[S any, Req any, Resp any](method string, fn func(S, *Req, Sender[Resp]) error) grpc.StreamDesc {
	return grpc.StreamDesc{
		StreamName:    method,
		ServerStreams: true,
		Handler: func(srv interface{}, stream grpc.ServerStream) error {
			in := new(Req)
			if err := stream.RecvMsg(in); err != nil {
				return err
			}
			return fn(srv.(S), in, &sender[Resp]{ServerStream: stream})
		},
	}
}
