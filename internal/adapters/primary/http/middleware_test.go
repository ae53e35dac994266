package http

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := securityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))

	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'self'")
	assert.Contains(t, csp, "https://unpkg.com", "CSP must allow the client-side diagram renderer")
	assert.Contains(t, csp, "connect-src 'self' ws: wss:", "CSP must allow the live reload socket")
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := NewHTTPLogger("test", "error")

	handler := recoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	}), logger)

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoggingMiddleware(t *testing.T) {
	logger := NewHTTPLogger("test", "error")

	handler := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}), logger)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	// The wrapper must pass status and body through untouched.
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}

func TestStatusWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &statusWriter{ResponseWriter: rec, status: http.StatusOK}

	w.WriteHeader(http.StatusAccepted)
	n, err := w.Write([]byte("hello"))

	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusAccepted, w.status)
	assert.Equal(t, 5, w.size)
}

// hijackRecorder is a ResponseRecorder whose connection can be taken over.
type hijackRecorder struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (r *hijackRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	r.hijacked = true
	return nil, nil, nil
}

func TestStatusWriter_Hijack(t *testing.T) {
	t.Run("forwards to a hijackable writer", func(t *testing.T) {
		rec := &hijackRecorder{ResponseRecorder: httptest.NewRecorder()}
		w := &statusWriter{ResponseWriter: rec, status: http.StatusOK}

		_, _, err := w.Hijack()
		require.NoError(t, err)
		assert.True(t, rec.hijacked)
	})

	t.Run("errors when the underlying writer cannot hijack", func(t *testing.T) {
		w := &statusWriter{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}

		_, _, err := w.Hijack()
		assert.ErrorContains(t, err, "does not support hijacking")
	})
}

func TestLoggingMiddleware_WebSocketUpgrade(t *testing.T) {
	// The websocket upgrade hijacks the connection; the logging wrapper must
	// not hide the Hijacker from the upgrader.
	logger := NewHTTPLogger("test", "error")

	upgraded := false
	handler := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := w.(http.Hijacker)
		upgraded = ok
		w.WriteHeader(http.StatusSwitchingProtocols)
	}), logger)

	rec := &hijackRecorder{ResponseRecorder: httptest.NewRecorder()}
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))

	assert.True(t, upgraded, "hijacker interface lost behind the logging middleware")
}
