// Package router wires the HTTP endpoints of the service onto a chi router.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/helloserver/internal/gzippedhttp"
	"github.com/patric-chuzhbe/helloserver/internal/logger"
	"github.com/patric-chuzhbe/helloserver/internal/middleware"
	"github.com/patric-chuzhbe/helloserver/internal/service"
	"github.com/patric-chuzhbe/helloserver/internal/user"
)

const (
	contentTypeText = "text/plain"
	contentTypeJSON = "application/json"
)

// Router holds the HTTP handlers of the service.
type Router struct {
	greeting string
	newUser  func() *user.User
}

// Option tunes the router built by New.
type Option func(*options)

type options struct {
	enableGzip bool
}

// WithGzip turns response compression on or off. It is on by default.
func WithGzip(enable bool) Option {
	return func(o *options) {
		o.enableGzip = enable
	}
}

// New creates the chi router serving /hello, /user and /ping.
func New(opts ...Option) *chi.Mux {
	o := &options{
		enableGzip: true,
	}
	for _, opt := range opts {
		opt(o)
	}

	myRouter := &Router{
		greeting: service.Greeting,
		newUser:  service.NewUser,
	}

	router := newMux(o)
	router.Get(`/hello`, myRouter.GetHello)
	router.Get(`/user`, myRouter.GetUser)
	router.Get(`/ping`, myRouter.GetPing)

	return router
}

// newMux returns a router with the middleware chain installed and no routes.
// Recoverer sits inside the gzip writer so a 500 after a panic shares the
// response encoding already announced to the client.
func newMux(o *options) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		logger.WithLoggingHTTPMiddleware,
		middleware.Security,
		chimiddleware.GetHead,
	)
	if o.enableGzip {
		router.Use(gzippedhttp.GzipResponse)
	}
	router.Use(middleware.Recoverer)

	return router
}

// GetHello responds with the plain-text greeting.
func (router *Router) GetHello(response http.ResponseWriter, request *http.Request) {
	response.Header().Set("Content-Type", contentTypeText)
	response.WriteHeader(http.StatusOK)

	_, err := response.Write([]byte(router.greeting))
	if err != nil {
		logger.Log.Debugln("Error writing the greeting: ", zap.Error(err))
	}
}

// GetUser responds with the user record encoded as a compact JSON object,
// e.g. {"id":"1","name":"John Doe"}, without blanks after colons and commas
// and without a trailing newline.
func (router *Router) GetUser(response http.ResponseWriter, request *http.Request) {
	body, err := json.Marshal(router.newUser())
	if err != nil {
		logger.Log.Debugln("Error calling the `json.Marshal()`: ", zap.Error(err))
		http.Error(response, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	response.Header().Set("Content-Type", contentTypeJSON)
	response.WriteHeader(http.StatusOK)

	_, err = response.Write(body)
	if err != nil {
		logger.Log.Debugln("Error writing the user: ", zap.Error(err))
	}
}

// GetPing reports that the server is up.
func (router *Router) GetPing(response http.ResponseWriter, request *http.Request) {
	response.WriteHeader(http.StatusOK)
}
