// Package interceptor holds the unary interceptors of the gRPC server.
package interceptor

import (
	"context"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/patric-chuzhbe/helloserver/internal/logger"
)

// UnaryLoggingInterceptor logs each incoming unary gRPC request with method and duration.
// Methods missing from allowedMethods are passed through silently.
func UnaryLoggingInterceptor(allowedMethods []string) grpc.UnaryServerInterceptor {
	allowed := make(map[string]struct{}, len(allowedMethods))
	for _, m := range allowedMethods {
		allowed[m] = struct{}{}
	}

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		if _, ok := allowed[info.FullMethod]; !ok {
			return handler(ctx, req)
		}

		start := time.Now()

		resp, err = handler(ctx, req)

		duration := time.Since(start)
		st, _ := status.FromError(err)

		logger.Log.Infoln(
			"gRPC request",
			"method", info.FullMethod,
			"duration", duration,
			"code", st.Code().String(),
			"message", st.Message(),
		)

		return resp, err
	}
}

// UnaryRecoveryInterceptor converts a panic in a handler into codes.Internal.
func UnaryRecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		defer func() {
			if rvr := recover(); rvr != nil {
				logger.Log.Errorw(
					"gRPC panic recovered",
					"method", info.FullMethod,
					"panic", rvr,
					"stack", string(debug.Stack()),
				)
				err = status.Error(codes.Internal, "internal error")
			}
		}()

		return handler(ctx, req)
	}
}
