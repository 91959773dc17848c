// Package grpcserver exposes the greeting and the user record over gRPC,
// together with the standard gRPC health service.
package grpcserver

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/patric-chuzhbe/helloserver/internal/grpcserver/interceptor"
)

// NewGRPCServer listens on addr and returns a server with the HelloService and
// the health service registered. The caller runs server.Serve(lis).
func NewGRPCServer(addr string, handler HelloServiceServer) (*grpc.Server, net.Listener, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptor.UnaryRecoveryInterceptor(),
			interceptor.UnaryLoggingInterceptor([]string{
				HelloServiceHello,
				HelloServiceUser,
			}),
		),
	)
	RegisterHelloServiceServer(server, handler)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(HelloServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	return server, lis, nil
}
