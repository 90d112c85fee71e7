package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "user.v1.UserService"

// UserServiceServer is the server API for user.v1.UserService.
type UserServiceServer interface {
	CreateUser(ctx context.Context, in *CreateUserRequest) (*User, error)
	GetUser(ctx context.Context, in *UserIDRequest) (*User, error)
	ListUsers(ctx context.Context, in *ListUsersRequest) (*ListUsersResponse, error)
	UpdateUser(ctx context.Context, in *UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, in *UserIDRequest) (*User, error)
}

// UserServiceDesc describes user.v1.UserService for grpc.Server.RegisterService.
var UserServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateUser", Handler: unary("CreateUser", UserServiceServer.CreateUser)},
		{MethodName: "GetUser", Handler: unary("GetUser", UserServiceServer.GetUser)},
		{MethodName: "ListUsers", Handler: unary("ListUsers", UserServiceServer.ListUsers)},
		{MethodName: "UpdateUser", Handler: unary("UpdateUser", UserServiceServer.UpdateUser)},
		{MethodName: "DeleteUser", Handler: unary("DeleteUser", UserServiceServer.DeleteUser)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "user/v1/user.proto",
}

// RegisterUserServiceServer registers srv on s.
func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&UserServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + serviceName + "/" + method
}

// unary adapts a typed service method to grpc.MethodHandler, running the interceptor chain when present.
func unary[Req, Resp any](method string, call func(UserServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(UserServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(UserServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// UserServiceClient calls user.v1.UserService using the JSON codec.
type UserServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewUserServiceClient creates a client on top of an established connection.
func NewUserServiceClient(cc grpc.ClientConnInterface) *UserServiceClient {
	return &UserServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *UserServiceClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, "CreateUser", in, opts)
}

func (c *UserServiceClient) GetUser(ctx context.Context, in *UserIDRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, "GetUser", in, opts)
}

func (c *UserServiceClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, "ListUsers", in, opts)
}

func (c *UserServiceClient) UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, "UpdateUser", in, opts)
}

func (c *UserServiceClient) DeleteUser(ctx context.Context, in *UserIDRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, "DeleteUser", in, opts)
}
