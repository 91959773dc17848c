package grpcserver

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/patric-chuzhbe/helloserver/internal/logger"
	"github.com/patric-chuzhbe/helloserver/internal/service"
	"github.com/patric-chuzhbe/helloserver/internal/user"
)

// HelloHandler serves the HelloService with the same data as the HTTP endpoints.
type HelloHandler struct {
	greeting string
	newUser  func() *user.User
}

// NewHelloHandler creates a HelloHandler backed by the service package.
func NewHelloHandler() *HelloHandler {
	return &HelloHandler{
		greeting: service.Greeting,
		newUser:  service.NewUser,
	}
}

// Hello returns the greeting text.
func (h *HelloHandler) Hello(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(h.greeting), nil
}

// User returns the user record as a struct with the id and name fields.
func (h *HelloHandler) User(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	usr := h.newUser()

	result, err := structpb.NewStruct(map[string]interface{}{
		"id":   usr.ID,
		"name": usr.Name,
	})
	if err != nil {
		logger.Log.Debugln("Error calling the `structpb.NewStruct()`: ", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to encode user")
	}

	return result, nil
}
