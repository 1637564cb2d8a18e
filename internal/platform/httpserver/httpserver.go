// Package httpserver builds the process HTTP server fronting the registry
// and ledger endpoints.
package httpserver

import (
	"net/http"
	"time"
)

// Every request and response on this surface is a small JSON document, so the
// timeouts are deliberately tight; idle keep-alive connections from the
// contract frontend are recycled once a minute.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = time.Minute
)

// New builds the engine's HTTP server around the given router.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
