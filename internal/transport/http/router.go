// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pawledger/internal/platform/middleware"
)

// NewRouter wires all endpoints. Mutating routes require a wallet proof;
// reads, health and metrics are open.
func NewRouter(
	registry *RegistryHandler,
	ledger *LedgerHandler,
	validator middleware.WalletProofValidator,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestContext)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	registry.RegisterPublic(r)
	ledger.RegisterPublic(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireWalletProof(validator, logger))
		registry.Register(r)
		ledger.Register(r)
	})

	return r
}
