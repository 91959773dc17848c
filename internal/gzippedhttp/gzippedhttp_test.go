package gzippedhttp

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipResponse(t *testing.T) {
	type tExpectedResponse struct {
		code     int
		encoding string
		body     string
	}
	type tTestCase struct {
		name             string
		acceptEncoding   string
		handler          http.HandlerFunc
		expectedResponse tExpectedResponse
	}
	testCases := []tTestCase{
		{
			name:           "compressed_implicit_status",
			acceptEncoding: "gzip, deflate",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("Hello from HelloServlet!"))
			},
			expectedResponse: tExpectedResponse{http.StatusOK, "gzip", "Hello from HelloServlet!"},
		},
		{
			name:           "compressed_explicit_status",
			acceptEncoding: "gzip",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"id":"1"}`))
			},
			expectedResponse: tExpectedResponse{http.StatusCreated, "gzip", `{"id":"1"}`},
		},
		{
			name:           "client_without_gzip",
			acceptEncoding: "",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("plain"))
			},
			expectedResponse: tExpectedResponse{http.StatusOK, "", "plain"},
		},
		{
			name:           "error_status_is_not_compressed",
			acceptEncoding: "gzip",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusMethodNotAllowed)
			},
			expectedResponse: tExpectedResponse{http.StatusMethodNotAllowed, "", "nope\n"},
		},
		{
			name:           "empty_body_is_not_compressed",
			acceptEncoding: "gzip",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			expectedResponse: tExpectedResponse{http.StatusOK, "", ""},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/hello", nil)
			if testCase.acceptEncoding != "" {
				request.Header.Set("Accept-Encoding", testCase.acceptEncoding)
			}
			w := httptest.NewRecorder()

			GzipResponse(testCase.handler).ServeHTTP(w, request)

			result := w.Result()
			defer result.Body.Close()

			assert.Equal(t, testCase.expectedResponse.code, result.StatusCode)
			assert.Equal(t, testCase.expectedResponse.encoding, result.Header.Get("Content-Encoding"))
			assert.Equal(t, "Accept-Encoding", result.Header.Get("Vary"))

			var reader io.Reader = result.Body
			if testCase.expectedResponse.encoding == "gzip" {
				zr, err := gzip.NewReader(result.Body)
				require.NoError(t, err)
				defer zr.Close()
				reader = zr
			}

			body, err := io.ReadAll(reader)
			require.NoError(t, err)
			assert.Equal(t, testCase.expectedResponse.body, string(body))
		})
	}
}
