package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	handler := http.NewServeMux()
	srv := New(":8080", handler)

	require.Equal(t, ":8080", srv.Addr)
	require.Equal(t, http.Handler(handler), srv.Handler)

	// Slowloris-style clients must not be able to pin a connection open.
	require.Positive(t, srv.ReadHeaderTimeout)
	require.Positive(t, srv.ReadTimeout)
	require.Positive(t, srv.WriteTimeout)
	require.Positive(t, srv.IdleTimeout)
}
