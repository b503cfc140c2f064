package order_api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"confreg/internal/logger"
	"confreg/internal/models"
	"confreg/internal/order"
	"confreg/internal/pricing"
	"confreg/internal/qr"
	"confreg/internal/utils"
)

type Handler struct {
	OrderService *order.OrderService
	Logger       *logger.Logger
}

// BookingSummary is the public confirmation view of a paid booking.
type BookingSummary struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Ticket      string `json:"ticket"`
	Amount      string `json:"amount"`
	OrderNumber string `json:"orderNumber"`
	QR          string `json:"qr,omitempty"`
}

func (h *Handler) StartPayment(w http.ResponseWriter, r *http.Request) {
	var req order.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("StartPayment: failed to decode request body: %v", err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.OrderService.StartPayment(r.Context(), req)
	if err != nil {
		var ve order.ValidationError
		if errors.As(err, &ve) || pricing.IsDiscountError(err) {
			h.Logger.Warn("API", fmt.Sprintf("StartPayment rejected: %v", err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Logger.Error("API", fmt.Sprintf("StartPayment failed: %v", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Error("API", fmt.Sprintf("StartPayment: failed to encode response: %v", err))
	}
}

func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := r.URL.Query().Get("paymentId")
	if paymentID == "" {
		http.Error(w, "paymentId is required", http.StatusBadRequest)
		return
	}
	h.Logger.Info("API", fmt.Sprintf("VerifyPayment: paymentId=%s", paymentID))

	result, err := h.OrderService.VerifyPayment(r.Context(), paymentID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			http.Error(w, "Payment order not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("API", fmt.Sprintf("VerifyPayment failed for %s: %v", paymentID, err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := struct {
		Status  string          `json:"status"`
		Summary *BookingSummary `json:"summary,omitempty"`
	}{Status: result.Status}

	if result.Booking != nil {
		response.Summary = h.buildSummary(*result.Booking)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.Logger.Error("API", fmt.Sprintf("VerifyPayment: failed to encode response: %v", err))
	}
}

func (h *Handler) buildSummary(booking models.Booking) *BookingSummary {
	summary := &BookingSummary{
		Name:        booking.Name,
		Email:       booking.Email,
		Ticket:      booking.Ticket,
		Amount:      booking.Pris,
		OrderNumber: utils.OrderNumber(booking.CreatedAt),
	}
	png, err := qr.PNG(summary.OrderNumber)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to render admission QR: %v", err))
		return summary
	}
	summary.QR = base64.StdEncoding.EncodeToString(png)
	return summary
}
