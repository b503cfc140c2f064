package booking_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"confreg/internal/booking"
	"confreg/internal/logger"
)

type Handler struct {
	Service *booking.Service
	Logger  *logger.Logger
}

// CreateBooking is the manual registration path: no payment provider,
// booking row plus one receipt attempt.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req booking.ManualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateManual(r.Context(), req)
	if err != nil {
		var ve booking.ValidationError
		if errors.As(err, &ve) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateBooking failed: %v", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateBooking: failed to encode response: %v", err))
	}
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListBookings failed: %v", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(bookings); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListBookings: failed to encode response: %v", err))
	}
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ExportCSV failed: %v", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("bookings-%s.csv", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := booking.WriteCSV(w, bookings); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ExportCSV: failed to write csv: %v", err))
	}
}

func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ExportXLSX failed: %v", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := booking.WriteXLSX(w, bookings); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ExportXLSX: failed to write spreadsheet: %v", err))
	}
}
