package handlers

import (
	"net/http"

	"github.com/nabinkhair42/pocket-due/internal/http/respond"
	"github.com/nabinkhair42/pocket-due/internal/middleware"
	"github.com/nabinkhair42/pocket-due/internal/models"
	"github.com/nabinkhair42/pocket-due/internal/models/dto"
	"github.com/nabinkhair42/pocket-due/internal/service"
	"github.com/nabinkhair42/pocket-due/internal/validate"
)

// PaymentHandler owns the /payments routes. Every route requires a bearer
// token; the user id from the token scopes all service calls.
type PaymentHandler struct {
	svc *service.PaymentService
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Register attaches payment routes to the mux, all behind the api rate
// limiter and the auth middleware.
func (h *PaymentHandler) Register(mux *http.ServeMux, limit, requireAuth Middleware) {
	guard := func(fn http.HandlerFunc) http.Handler {
		return limit(requireAuth(fn))
	}

	mux.Handle("GET /payments", guard(h.handleList))
	mux.Handle("GET /payments/type/{type}", guard(h.handleListByType))
	mux.Handle("GET /payments/stats", guard(h.handleStats))
	mux.Handle("GET /payments/previous-users", guard(h.handlePreviousUsers))
	mux.Handle("GET /payments/summaries", guard(h.handleSummaries))
	mux.Handle("POST /payments", guard(h.handleCreate))
	mux.Handle("PUT /payments/{id}", guard(h.handleUpdate))
	mux.Handle("PATCH /payments/{id}/toggle", guard(h.handleToggle))
	mux.Handle("DELETE /payments/{id}", guard(h.handleDelete))
}

func (h *PaymentHandler) handleList(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.List(r.Context(), middleware.GetUserID(r.Context()), "")
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Payments retrieved successfully", map[string]any{"payments": payments})
}

func (h *PaymentHandler) handleListByType(w http.ResponseWriter, r *http.Request) {
	typ := models.PaymentType(r.PathValue("type"))
	if !typ.Valid() {
		respond.Fail(w, http.StatusBadRequest, "Invalid payment type", "Type must be to_pay or to_receive")
		return
	}

	payments, err := h.svc.List(r.Context(), middleware.GetUserID(r.Context()), typ)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Payments retrieved successfully", map[string]any{"payments": payments})
}

func (h *PaymentHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Payment statistics retrieved successfully", map[string]any{"stats": stats})
}

func (h *PaymentHandler) handlePreviousUsers(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.PreviousPersonNames(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Previous users retrieved successfully", map[string]any{"previousUsers": names})
}

func (h *PaymentHandler) handleSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.Summaries(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Payment summaries retrieved successfully", map[string]any{"summaries": summaries})
}

func (h *PaymentHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequest
	if err := decodeAndValidate(r, validate.PaymentCreateRules, &req); err != nil {
		writeError(w, err)
		return
	}

	payment, err := h.svc.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "Payment created successfully", map[string]any{"payment": payment})
}

func (h *PaymentHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePaymentRequest
	if err := decodeAndValidate(r, validate.PaymentUpdateRules, &req); err != nil {
		writeError(w, err)
		return
	}

	payment, err := h.svc.Update(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Payment updated successfully", map[string]any{"payment": payment})
}

func (h *PaymentHandler) handleToggle(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ToggleStatus(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Payment status updated successfully", result)
}

func (h *PaymentHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	payment, err := h.svc.Delete(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Payment deleted successfully", map[string]any{"payment": payment})
}
