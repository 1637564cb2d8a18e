package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	registrymodels "pawledger/internal/registry/models"
	statsmodels "pawledger/internal/stats/models"
	id "pawledger/pkg/domain"
	"pawledger/pkg/platform/httputil"
	"pawledger/pkg/requestcontext"
)

// RegistryService defines the interface for registry operations.
type RegistryService interface {
	Initialize(ctx context.Context, admin, transferService id.WalletAddress) error
	RegisterFeeder(ctx context.Context, params registrymodels.RegisterFeederParams) (*registrymodels.Feeder, error)
	VerifyFeeder(ctx context.Context, feederID id.FeederID) error
	RegisterDog(ctx context.Context, feederWallet id.WalletAddress, params registrymodels.RegisterDogParams) (*registrymodels.Dog, error)
	UpdateDogHealth(ctx context.Context, feederWallet id.WalletAddress, dogID id.DogID, healthStatus, sickness string) (*registrymodels.Dog, error)
	GetFeeder(ctx context.Context, feederID id.FeederID) (*registrymodels.Feeder, error)
	GetDog(ctx context.Context, dogID id.DogID) (*registrymodels.Dog, error)
	GetFeederStats(ctx context.Context, feederID id.FeederID) (*statsmodels.ActivityStats, error)
	TotalFeeders(ctx context.Context) (uint64, error)
	TotalDogs(ctx context.Context) (uint64, error)
}

// RegistryHandler wires registry endpoints to the registry service.
type RegistryHandler struct {
	service RegistryService
	logger  *slog.Logger
}

func NewRegistryHandler(service RegistryService, logger *slog.Logger) *RegistryHandler {
	return &RegistryHandler{service: service, logger: logger}
}

// Register mounts the mutating registry endpoints. These run behind the
// wallet-proof middleware.
func (h *RegistryHandler) Register(r chi.Router) {
	r.Post("/registry/initialize", h.HandleInitialize)
	r.Post("/registry/feeders", h.HandleRegisterFeeder)
	r.Post("/registry/feeders/{feederID}/verify", h.HandleVerifyFeeder)
	r.Post("/registry/dogs", h.HandleRegisterDog)
	r.Patch("/registry/dogs/{dogID}/health", h.HandleUpdateDogHealth)
}

// RegisterPublic mounts the read-only registry endpoints.
func (h *RegistryHandler) RegisterPublic(r chi.Router) {
	r.Get("/registry/feeders/{feederID}", h.HandleGetFeeder)
	r.Get("/registry/feeders/{feederID}/stats", h.HandleGetFeederStats)
	r.Get("/registry/dogs/{dogID}", h.HandleGetDog)
	r.Get("/registry/totals", h.HandleTotals)
}

type initializeRequest struct {
	Admin           id.WalletAddress `json:"admin"`
	TransferService id.WalletAddress `json:"transfer_service"`
}

func (h *RegistryHandler) HandleInitialize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[initializeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.Initialize(ctx, req.Admin, req.TransferService); err != nil {
		h.logger.ErrorContext(ctx, "initialize failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"status": "initialized"})
}

func (h *RegistryHandler) HandleRegisterFeeder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[registrymodels.RegisterFeederParams](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if req.Wallet.IsNil() {
		req.Wallet = requestcontext.Wallet(ctx)
	}
	feeder, err := h.service.RegisterFeeder(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "register feeder failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, feeder)
}

func (h *RegistryHandler) HandleVerifyFeeder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	feederID, err := id.ParseFeederID(chi.URLParam(r, "feederID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.VerifyFeeder(ctx, feederID); err != nil {
		h.logger.ErrorContext(ctx, "verify feeder failed",
			"request_id", requestcontext.RequestID(ctx), "feeder_id", feederID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

func (h *RegistryHandler) HandleRegisterDog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[registrymodels.RegisterDogParams](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	dog, err := h.service.RegisterDog(ctx, requestcontext.Wallet(ctx), req)
	if err != nil {
		h.logger.ErrorContext(ctx, "register dog failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, dog)
}

type updateDogHealthRequest struct {
	HealthStatus string `json:"health_status"`
	Sickness     string `json:"sickness"`
}

func (h *RegistryHandler) HandleUpdateDogHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	dogID, err := id.ParseDogID(chi.URLParam(r, "dogID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[updateDogHealthRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	dog, err := h.service.UpdateDogHealth(ctx, requestcontext.Wallet(ctx), dogID, req.HealthStatus, req.Sickness)
	if err != nil {
		h.logger.ErrorContext(ctx, "update dog health failed",
			"request_id", requestID, "dog_id", dogID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dog)
}

func (h *RegistryHandler) HandleGetFeeder(w http.ResponseWriter, r *http.Request) {
	feederID, err := id.ParseFeederID(chi.URLParam(r, "feederID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	feeder, err := h.service.GetFeeder(r.Context(), feederID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, feeder)
}

func (h *RegistryHandler) HandleGetFeederStats(w http.ResponseWriter, r *http.Request) {
	feederID, err := id.ParseFeederID(chi.URLParam(r, "feederID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	stats, err := h.service.GetFeederStats(r.Context(), feederID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (h *RegistryHandler) HandleGetDog(w http.ResponseWriter, r *http.Request) {
	dogID, err := id.ParseDogID(chi.URLParam(r, "dogID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	dog, err := h.service.GetDog(r.Context(), dogID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dog)
}

type registryTotalsResponse struct {
	Feeders uint64 `json:"feeders"`
	Dogs    uint64 `json:"dogs"`
}

func (h *RegistryHandler) HandleTotals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	feeders, err := h.service.TotalFeeders(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	dogs, err := h.service.TotalDogs(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, registryTotalsResponse{Feeders: feeders, Dogs: dogs})
}
