package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/patric-chuzhbe/helloserver/internal/config"
	"github.com/patric-chuzhbe/helloserver/internal/grpcserver"
)

func freeAddr(t *testing.T) string {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	return addr
}

func TestNewInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	_, err := New(config.WithDisableFlagsParsing(true))
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	a, err := New(config.WithDisableFlagsParsing(true))
	require.NoError(t, err)
	defer a.Close()

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := resty.New().R().Get(srv.URL + "/hello")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "Hello from HelloServlet!", string(resp.Body()))
}

func TestRunContext(t *testing.T) {
	httpAddr := freeAddr(t)
	grpcAddr := freeAddr(t)
	t.Setenv("SERVER_ADDRESS", httpAddr)
	t.Setenv("GRPC_SERVER_ADDRESS", grpcAddr)
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	a, err := New(config.WithDisableFlagsParsing(true))
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() {
		runErr <- a.RunContext(ctx)
	}()

	client := resty.New().
		SetRetryCount(20).
		SetRetryWaitTime(50 * time.Millisecond).
		SetRetryMaxWaitTime(100 * time.Millisecond)

	resp, err := client.R().Get(fmt.Sprintf("http://%s/user", httpAddr))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `{"id":"1","name":"John Doe"}`, string(resp.Body()))

	dialCtx, cancelDial := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelDial()
	conn, err := grpc.DialContext(
		dialCtx,
		grpcAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	require.NoError(t, err)
	defer conn.Close()

	hello, err := grpcserver.NewHelloServiceClient(conn).Hello(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello from HelloServlet!", hello.GetValue())

	cancel()

	select {
	case err := <-runErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunContext did not return after cancellation")
	}
}

func TestRunContextListenError(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	t.Setenv("SERVER_ADDRESS", lis.Addr().String())

	a, err := New(config.WithDisableFlagsParsing(true))
	require.NoError(t, err)
	defer a.Close()

	select {
	case err := <-runAsync(a):
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunContext did not report the busy port")
	}
}

func runAsync(a *App) <-chan error {
	result := make(chan error, 1)
	go func() {
		result <- a.RunContext(context.Background())
	}()
	return result
}

func TestCloseReleasesGRPCListener(t *testing.T) {
	grpcAddr := freeAddr(t)
	t.Setenv("GRPC_SERVER_ADDRESS", grpcAddr)

	a, err := New(config.WithDisableFlagsParsing(true))
	require.NoError(t, err)

	a.Close()

	lis, err := net.Listen("tcp", grpcAddr)
	require.NoError(t, err, "the gRPC address must be free once the app is closed")
	require.NoError(t, lis.Close())
}

func TestCloseAfterRun(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", freeAddr(t))
	t.Setenv("GRPC_SERVER_ADDRESS", freeAddr(t))

	a, err := New(config.WithDisableFlagsParsing(true))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.RunContext(ctx))

	assert.NotPanics(t, a.Close)
}

func TestNewHelpRequested(t *testing.T) {
	_, err := New(config.WithArgs([]string{"-h"}))

	assert.ErrorIs(t, err, config.ErrHelpRequested)
}
