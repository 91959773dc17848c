package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/patric-chuzhbe/helloserver/internal/logger"
)

// Recoverer turns a panic in the downstream chain into a 500 response.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logger.Log.Errorw(
				"panic recovered",
				"request_id", GetRequestID(r.Context()),
				"panic", rvr,
				"stack", string(debug.Stack()),
			)

			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
