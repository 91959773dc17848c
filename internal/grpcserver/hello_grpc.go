package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Full method names of the HelloService.
const (
	HelloServiceName      = "helloserver.HelloService"
	HelloServiceHello     = "/" + HelloServiceName + "/Hello"
	HelloServiceUser      = "/" + HelloServiceName + "/User"
	helloServiceProtoFile = "helloserver/hello.proto"
)

// HelloServiceServer is the server API for the HelloService.
// Messages are protobuf well-known types, so no generated code is involved:
//
//	service HelloService {
//	  rpc Hello(google.protobuf.Empty) returns (google.protobuf.StringValue);
//	  rpc User(google.protobuf.Empty) returns (google.protobuf.Struct);
//	}
type HelloServiceServer interface {
	Hello(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	User(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterHelloServiceServer registers srv on s.
func RegisterHelloServiceServer(s grpc.ServiceRegistrar, srv HelloServiceServer) {
	s.RegisterService(&helloServiceDesc, srv)
}

func helloServiceHelloHandler(
	srv interface{},
	ctx context.Context,
	dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HelloServiceServer).Hello(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HelloServiceHello,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(HelloServiceServer).Hello(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func helloServiceUserHandler(
	srv interface{},
	ctx context.Context,
	dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HelloServiceServer).User(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HelloServiceUser,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(HelloServiceServer).User(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var helloServiceDesc = grpc.ServiceDesc{
	ServiceName: HelloServiceName,
	HandlerType: (*HelloServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Hello",
			Handler:    helloServiceHelloHandler,
		},
		{
			MethodName: "User",
			Handler:    helloServiceUserHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: helloServiceProtoFile,
}

// HelloServiceClient is the client API for the HelloService.
type HelloServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewHelloServiceClient returns a client calling the HelloService over cc.
func NewHelloServiceClient(cc grpc.ClientConnInterface) *HelloServiceClient {
	return &HelloServiceClient{cc: cc}
}

// Hello calls HelloService.Hello.
func (c *HelloServiceClient) Hello(ctx context.Context, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, HelloServiceHello, &emptypb.Empty{}, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// User calls HelloService.User.
func (c *HelloServiceClient) User(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, HelloServiceUser, &emptypb.Empty{}, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
