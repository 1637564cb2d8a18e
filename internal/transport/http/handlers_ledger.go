package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	ledgermodels "pawledger/internal/ledger/models"
	id "pawledger/pkg/domain"
	"pawledger/pkg/platform/httputil"
	"pawledger/pkg/requestcontext"
)

// LedgerService defines the interface for ledger operations.
type LedgerService interface {
	Donate(ctx context.Context, donor id.WalletAddress, params ledgermodels.DonateParams) (*ledgermodels.Donation, error)
	RecordExpense(ctx context.Context, feederWallet id.WalletAddress, params ledgermodels.RecordExpenseParams) (*ledgermodels.Expense, error)
	RecordTreatment(ctx context.Context, feederWallet id.WalletAddress, params ledgermodels.RecordTreatmentParams) (*ledgermodels.Treatment, error)
	GetDonation(ctx context.Context, donationID id.DonationID) (*ledgermodels.Donation, error)
	GetExpense(ctx context.Context, expenseID id.ExpenseID) (*ledgermodels.Expense, error)
	GetTreatment(ctx context.Context, treatmentID id.TreatmentID) (*ledgermodels.Treatment, error)
	TotalDonations(ctx context.Context) (uint64, error)
	TotalExpenses(ctx context.Context) (uint64, error)
	TotalTreatments(ctx context.Context) (uint64, error)
}

// LedgerHandler wires ledger endpoints to the ledger service.
type LedgerHandler struct {
	service LedgerService
	logger  *slog.Logger
}

func NewLedgerHandler(service LedgerService, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{service: service, logger: logger}
}

// Register mounts the mutating ledger endpoints. These run behind the
// wallet-proof middleware.
func (h *LedgerHandler) Register(r chi.Router) {
	r.Post("/ledger/donations", h.HandleDonate)
	r.Post("/ledger/expenses", h.HandleRecordExpense)
	r.Post("/ledger/treatments", h.HandleRecordTreatment)
}

// RegisterPublic mounts the read-only ledger endpoints.
func (h *LedgerHandler) RegisterPublic(r chi.Router) {
	r.Get("/ledger/donations/{donationID}", h.HandleGetDonation)
	r.Get("/ledger/expenses/{expenseID}", h.HandleGetExpense)
	r.Get("/ledger/treatments/{treatmentID}", h.HandleGetTreatment)
	r.Get("/ledger/totals", h.HandleTotals)
}

func (h *LedgerHandler) HandleDonate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ledgermodels.DonateParams](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	donation, err := h.service.Donate(ctx, requestcontext.Wallet(ctx), req)
	if err != nil {
		h.logger.ErrorContext(ctx, "donate failed",
			"request_id", requestID, "feeder_id", req.FeederID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, donation)
}

func (h *LedgerHandler) HandleRecordExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ledgermodels.RecordExpenseParams](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	expense, err := h.service.RecordExpense(ctx, requestcontext.Wallet(ctx), req)
	if err != nil {
		h.logger.ErrorContext(ctx, "record expense failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, expense)
}

func (h *LedgerHandler) HandleRecordTreatment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ledgermodels.RecordTreatmentParams](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	treatment, err := h.service.RecordTreatment(ctx, requestcontext.Wallet(ctx), req)
	if err != nil {
		h.logger.ErrorContext(ctx, "record treatment failed",
			"request_id", requestID, "dog_id", req.DogID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, treatment)
}

func (h *LedgerHandler) HandleGetDonation(w http.ResponseWriter, r *http.Request) {
	donationID, err := id.ParseDonationID(chi.URLParam(r, "donationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	donation, err := h.service.GetDonation(r.Context(), donationID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, donation)
}

func (h *LedgerHandler) HandleGetExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, err := id.ParseExpenseID(chi.URLParam(r, "expenseID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	expense, err := h.service.GetExpense(r.Context(), expenseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, expense)
}

func (h *LedgerHandler) HandleGetTreatment(w http.ResponseWriter, r *http.Request) {
	treatmentID, err := id.ParseTreatmentID(chi.URLParam(r, "treatmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	treatment, err := h.service.GetTreatment(r.Context(), treatmentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, treatment)
}

type ledgerTotalsResponse struct {
	Donations  uint64 `json:"donations"`
	Expenses   uint64 `json:"expenses"`
	Treatments uint64 `json:"treatments"`
}

func (h *LedgerHandler) HandleTotals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	donations, err := h.service.TotalDonations(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	expenses, err := h.service.TotalExpenses(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	treatments, err := h.service.TotalTreatments(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ledgerTotalsResponse{
		Donations:  donations,
		Expenses:   expenses,
		Treatments: treatments,
	})
}
