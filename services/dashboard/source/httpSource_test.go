package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_FetchMetrics(t *testing.T) {
	t.Parallel()

	t.Run("should decode a full payload", func(t *testing.T) {
		t.Parallel()

		var receivedAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "GET", r.Method)
			receivedAuth = r.Header.Get("Authorization")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"Last 7 Days": {"Total Registered Users": 500, "New Signups": 12.5, "Notes": "n/a"},
				"All Time": {"Total Registered Users": 4100},
				"targets": {"Power Users Target": 50, "New Signups Target": null}
			}`))
		}))
		defer server.Close()

		src := NewHTTPSource(server.URL, "secret-token", 2*time.Second)
		payload, err := src.FetchMetrics(context.Background())
		require.NoError(t, err)

		require.Equal(t, "Bearer secret-token", receivedAuth)

		require.Len(t, payload.Periods, 2)
		assert.Equal(t, float64(500), payload.Periods["Last 7 Days"]["Total Registered Users"])
		assert.Equal(t, 12.5, payload.Periods["Last 7 Days"]["New Signups"])
		assert.Equal(t, float64(4100), payload.Periods["All Time"]["Total Registered Users"])

		// non-numeric cells count as absent data
		_, found := payload.Periods["Last 7 Days"]["Notes"]
		assert.False(t, found)

		// null targets are skipped so the fallback rule sees them as absent
		require.Len(t, payload.Targets, 1)
		assert.Equal(t, float64(50), payload.Targets["Power Users Target"])
	})
	t.Run("should not send the Authorization header without a token", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		src := NewHTTPSource(server.URL, "", 2*time.Second)
		_, err := src.FetchMetrics(context.Background())
		require.NoError(t, err)
	})
	t.Run("non-2xx status should return ResponseError with the code", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		src := NewHTTPSource(server.URL, "", 2*time.Second)
		_, err := src.FetchMetrics(context.Background())

		respErr := &ResponseError{}
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
		assert.Equal(t, "response", respErr.Kind())
	})
	t.Run("invalid JSON body should return ParseError", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"Last 7 Days": `))
		}))
		defer server.Close()

		src := NewHTTPSource(server.URL, "", 2*time.Second)
		_, err := src.FetchMetrics(context.Background())

		parseErr := &ParseError{}
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "parse", parseErr.Kind())
	})
	t.Run("non-object body should return ParseError", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[1, 2, 3]`))
		}))
		defer server.Close()

		src := NewHTTPSource(server.URL, "", 2*time.Second)
		_, err := src.FetchMetrics(context.Background())

		parseErr := &ParseError{}
		require.ErrorAs(t, err, &parseErr)
	})
	t.Run("unreachable endpoint should return TransportError", func(t *testing.T) {
		t.Parallel()

		src := NewHTTPSource("http://localhost:59999", "", time.Second)
		_, err := src.FetchMetrics(context.Background())

		transportErr := &TransportError{}
		require.ErrorAs(t, err, &transportErr)
		assert.Equal(t, "transport", transportErr.Kind())
	})
	t.Run("timeout should return TransportError", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(3 * time.Second)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		src := NewHTTPSource(server.URL, "", 100*time.Millisecond)
		_, err := src.FetchMetrics(context.Background())

		transportErr := &TransportError{}
		require.ErrorAs(t, err, &transportErr)
	})
}
