// Package wire declares the usermanagement.v1.UserService gRPC service.
// Messages travel as google.protobuf.Struct with snake_case keys, so the
// service needs no generated code. The codecs in this package convert
// between those structs and the models the server works with.
package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "usermanagement.v1.UserService"

const (
	MethodRegisterUser       = "/" + ServiceName + "/RegisterUser"
	MethodAuthenticateUser   = "/" + ServiceName + "/AuthenticateUser"
	MethodUpdateUserEmail    = "/" + ServiceName + "/UpdateUserEmail"
	MethodUpdateUserPassword = "/" + ServiceName + "/UpdateUserPassword"
)

// UserServiceServer is implemented by the gRPC transport.
type UserServiceServer interface {
	RegisterUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	AuthenticateUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	UpdateUserEmail(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	UpdateUserPassword(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(UserServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodHandler(fullMethod string, call unaryCall) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(UserServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(UserServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterUser", Handler: methodHandler(MethodRegisterUser, UserServiceServer.RegisterUser)},
		{MethodName: "AuthenticateUser", Handler: methodHandler(MethodAuthenticateUser, UserServiceServer.AuthenticateUser)},
		{MethodName: "UpdateUserEmail", Handler: methodHandler(MethodUpdateUserEmail, UserServiceServer.UpdateUserEmail)},
		{MethodName: "UpdateUserPassword", Handler: methodHandler(MethodUpdateUserPassword, UserServiceServer.UpdateUserPassword)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "usermanagement/v1/user_service.proto",
}

func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// UserServiceClient issues unary calls against ServiceDesc.
type UserServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewUserServiceClient(cc grpc.ClientConnInterface) *UserServiceClient {
	return &UserServiceClient{cc: cc}
}

func (c *UserServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *UserServiceClient) RegisterUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodRegisterUser, in, opts...)
}

func (c *UserServiceClient) AuthenticateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodAuthenticateUser, in, opts...)
}

func (c *UserServiceClient) UpdateUserEmail(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodUpdateUserEmail, in, opts...)
}

func (c *UserServiceClient) UpdateUserPassword(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodUpdateUserPassword, in, opts...)
}
