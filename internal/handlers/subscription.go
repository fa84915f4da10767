package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/copyforge/apiserver/internal/services"
	"github.com/copyforge/apiserver/internal/store"
	"github.com/copyforge/apiserver/types"
)

// SubscriptionHandler provides HTTP handlers for subscriptions.
type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// SubscriptionRouter registers subscription routes on the given router. All
// routes require authentication.
func SubscriptionRouter(r chi.Router, subscriptionService *services.SubscriptionService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewSubscriptionHandler(subscriptionService)

	r.Use(authMiddleware)
	r.Post("/", handler.CreateSubscription)
	r.Get("/current", handler.CurrentSubscription)
}

// CreateSubscription starts a paid subscription for the authenticated
// account and synchronizes its plan and quota.
func (h *SubscriptionHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	subject, err := subjectFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	sub, err := h.subscriptionService.Create(r.Context(), subject.ID, services.CreateSubscriptionParams{
		Plan:          types.Plan(req.Plan),
		BillingPeriod: types.BillingPeriod(req.BillingPeriod),
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPlan):
			writeError(w, http.StatusBadRequest, "plan is not purchasable")
		case errors.Is(err, services.ErrInvalidBillingPeriod):
			writeError(w, http.StatusBadRequest, "invalid billing period")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "account not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create subscription")
		}
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// CurrentSubscription returns the authenticated account's active
// subscription.
func (h *SubscriptionHandler) CurrentSubscription(w http.ResponseWriter, r *http.Request) {
	subject, err := subjectFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sub, err := h.subscriptionService.GetActiveForUser(r.Context(), subject.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no active subscription")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load subscription")
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

type CreateSubscriptionRequest struct {
	Plan          string  `json:"plan"`
	BillingPeriod string  `json:"billingPeriod"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
}
