// Package gzippedhttp compresses HTTP responses with gzip for clients that accept it.
package gzippedhttp

import (
	"compress/gzip"
	"net/http"
	"strings"
	"sync"
)

// CompressedHTTPResponseWriter wraps http.ResponseWriter and compresses
// successful, non-empty response bodies using gzip.
//
// The status line is held back until the first Write or Close, so responses
// without a body go out uncompressed and without a Content-Encoding header.
type CompressedHTTPResponseWriter struct {
	w             http.ResponseWriter
	zw            *gzip.Writer
	status        int
	headerPending bool
	headerWritten bool
}

// NewCompressedHTTPResponseWriter returns a new CompressedHTTPResponseWriter
// writing to w. Close must be called once the handler is done.
func NewCompressedHTTPResponseWriter(w http.ResponseWriter) *CompressedHTTPResponseWriter {
	return &CompressedHTTPResponseWriter{
		w: w,
	}
}

func compressible(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300 && statusCode != http.StatusNoContent
}

// Header returns the HTTP headers associated with the response.
func (c *CompressedHTTPResponseWriter) Header() http.Header {
	return c.w.Header()
}

// WriteHeader records the status code. Non-compressible statuses are sent at once.
func (c *CompressedHTTPResponseWriter) WriteHeader(statusCode int) {
	if c.headerWritten || c.headerPending {
		return
	}
	c.status = statusCode

	if !compressible(statusCode) || c.w.Header().Get("Content-Encoding") != "" {
		c.headerWritten = true
		c.w.WriteHeader(statusCode)
		return
	}

	c.headerPending = true
}

// Write writes gzip-compressed data to the response body.
func (c *CompressedHTTPResponseWriter) Write(p []byte) (int, error) {
	if !c.headerWritten && !c.headerPending {
		c.WriteHeader(http.StatusOK)
	}

	if c.headerPending {
		if len(p) == 0 {
			return 0, nil
		}
		c.startCompression()
	}

	if c.zw == nil {
		return c.w.Write(p)
	}

	return c.zw.Write(p)
}

func (c *CompressedHTTPResponseWriter) startCompression() {
	c.headerPending = false
	c.headerWritten = true

	c.w.Header().Set("Content-Encoding", "gzip")
	c.w.Header().Del("Content-Length")

	zw := gzipWriterPool.Get().(*gzip.Writer)
	zw.Reset(c.w)
	c.zw = zw

	c.w.WriteHeader(c.status)
}

// Close flushes the gzip stream, or sends the held-back status if nothing was written.
func (c *CompressedHTTPResponseWriter) Close() error {
	if c.headerPending {
		c.headerPending = false
		c.headerWritten = true
		c.w.WriteHeader(c.status)
	}

	if c.zw == nil {
		return nil
	}

	err := c.zw.Close()
	gzipWriterPool.Put(c.zw)
	c.zw = nil

	return err
}

var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		w, _ := gzip.NewWriterLevel(nil, gzip.BestSpeed)
		return w
	},
}

// GzipResponse is the middleware that determines whether a response should be compressed based
// on the request's "Accept-Encoding" header.
func GzipResponse(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		response.Header().Add("Vary", "Accept-Encoding")

		acceptEncoding := request.Header.Get("Accept-Encoding")
		clientAcceptsGzip := strings.Contains(acceptEncoding, "gzip")
		if !clientAcceptsGzip {
			h.ServeHTTP(response, request)
			return
		}

		responseWithCompression := NewCompressedHTTPResponseWriter(response)
		defer responseWithCompression.Close()

		h.ServeHTTP(responseWithCompression, request)
	}

	return http.HandlerFunc(middleware)
}
