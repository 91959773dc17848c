// Package app initializes and runs the service.
// It configures logging and routing, starts the HTTP and optional gRPC servers,
// and handles graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/patric-chuzhbe/helloserver/internal/config"
	"github.com/patric-chuzhbe/helloserver/internal/grpcserver"
	"github.com/patric-chuzhbe/helloserver/internal/logger"
	"github.com/patric-chuzhbe/helloserver/internal/router"
)

// App encapsulates the configuration and the servers of the service.
type App struct {
	cfg          *config.Config
	httpServer   *http.Server
	grpcServer   *grpc.Server
	grpcListener net.Listener
}

// New initializes a new instance of App by:
// - loading configuration
// - initializing logger
// - setting up the router and middleware
// - opening the gRPC listener when an address is configured
func New(opts ...config.InitOption) (*App, error) {
	var err error
	app := &App{}

	app.cfg, err = config.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("unable to init logger: %w", err)
	}

	app.httpServer = &http.Server{
		Addr:         app.cfg.RunAddr,
		Handler:      router.New(router.WithGzip(app.cfg.EnableGzip)),
		ReadTimeout:  app.cfg.ReadTimeout,
		WriteTimeout: app.cfg.WriteTimeout,
	}

	if app.cfg.GRPCRunAddr != "" {
		app.grpcServer, app.grpcListener, err = grpcserver.NewGRPCServer(
			app.cfg.GRPCRunAddr,
			grpcserver.NewHelloHandler(),
		)
		if err != nil {
			return nil, fmt.Errorf("unable to start gRPC listener: %w", err)
		}
	}

	return app, nil
}

// Handler returns the HTTP handler served by the app.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run serves until SIGINT or SIGTERM arrives, then shuts the servers down.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.RunContext(ctx)
}

// RunContext serves until ctx is done or a server fails.
func (a *App) RunContext(ctx context.Context) error {
	serverErrCh := make(chan error, 2)

	logger.Log.Infoln("server running", "RunAddr", a.cfg.RunAddr)
	go func() {
		err := a.httpServer.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	if a.grpcServer != nil {
		logger.Log.Infoln("gRPC server running", "GRPCRunAddr", a.grpcListener.Addr().String())
		go func() {
			err := a.grpcServer.Serve(a.grpcListener)
			if err != nil {
				serverErrCh <- fmt.Errorf("gRPC server error: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Stopping servers...")
		return a.shutdown()

	case err := <-serverErrCh:
		shutdownErr := a.shutdown()
		return errors.Join(err, shutdownErr)
	}
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if a.grpcServer != nil {
		stopped := make(chan struct{})
		go func() {
			a.grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			a.grpcServer.Stop()
		}
	}

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	return nil
}

// Close finalizes resources used by App: it stops the gRPC server, releases
// its listener if Run was never called, and flushes the logger.
func (a *App) Close() {
	if a.grpcServer != nil {
		a.grpcServer.Stop()
	}
	if a.grpcListener != nil {
		err := a.grpcListener.Close()
		if err != nil && !errors.Is(err, net.ErrClosed) {
			logger.Log.Debugln("Error closing the gRPC listener: ", err)
		}
	}

	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}
