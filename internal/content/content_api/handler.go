package content_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"confreg/internal/content"
	content_db "confreg/internal/content/db"
	"confreg/internal/logger"
	"confreg/internal/models"
	"confreg/internal/pricing"

	"github.com/go-chi/chi/v5"
)

// Handler serves the public content reads and the admin CRUD surface.
type Handler struct {
	DB       *content_db.DB
	Uploader *content.Uploader
	Logger   *logger.Logger
}

func NewHandler(db *content_db.DB, uploader *content.Uploader, log *logger.Logger) *Handler {
	return &Handler{DB: db, Uploader: uploader, Logger: log}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to encode response: %v", err))
	}
}

func (h *Handler) storageError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, content_db.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	h.Logger.Error("API", fmt.Sprintf("%s failed: %v", op, err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ---------------- PROGRAM ----------------

func (h *Handler) ListProgram(w http.ResponseWriter, r *http.Request) {
	items, err := h.DB.ListProgram(r.Context())
	if err != nil {
		h.storageError(w, "ListProgram", err)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateProgramItem(w http.ResponseWriter, r *http.Request) {
	var item models.ProgramItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if item.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if err := h.DB.CreateProgramItem(r.Context(), &item); err != nil {
		h.storageError(w, "CreateProgramItem", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateProgramItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var item models.ProgramItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	item.ID = id
	if err := h.DB.UpdateProgramItem(r.Context(), &item); err != nil {
		h.storageError(w, "UpdateProgramItem", err)
		return
	}
	h.writeJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteProgramItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := h.DB.DeleteProgramItem(r.Context(), id); err != nil {
		h.storageError(w, "DeleteProgramItem", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReorderProgram(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		http.Error(w, "ids list is required", http.StatusBadRequest)
		return
	}
	if err := h.DB.ReorderProgram(r.Context(), req.IDs); err != nil {
		if errors.Is(err, content_db.ErrNotFound) {
			http.Error(w, "Unknown program item id", http.StatusBadRequest)
			return
		}
		h.storageError(w, "ReorderProgram", err)
		return
	}
	h.Logger.Info("API", fmt.Sprintf("Program reordered (%d items)", len(req.IDs)))
	w.WriteHeader(http.StatusNoContent)
}

// ---------------- PRICES ----------------

func (h *Handler) ListPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.DB.ListPrices(r.Context())
	if err != nil {
		h.storageError(w, "ListPrices", err)
		return
	}
	h.writeJSON(w, http.StatusOK, prices)
}

func (h *Handler) CreatePrice(w http.ResponseWriter, r *http.Request) {
	var price models.PriceOption
	if err := json.NewDecoder(r.Body).Decode(&price); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if price.Name == "" || price.Amount <= 0 {
		http.Error(w, "name and a positive amount are required", http.StatusBadRequest)
		return
	}
	if err := h.DB.CreatePrice(r.Context(), &price); err != nil {
		h.storageError(w, "CreatePrice", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, price)
}

func (h *Handler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var price models.PriceOption
	if err := json.NewDecoder(r.Body).Decode(&price); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if price.Name == "" || price.Amount <= 0 {
		http.Error(w, "name and a positive amount are required", http.StatusBadRequest)
		return
	}
	price.ID = id
	if err := h.DB.UpdatePrice(r.Context(), &price); err != nil {
		h.storageError(w, "UpdatePrice", err)
		return
	}
	h.writeJSON(w, http.StatusOK, price)
}

func (h *Handler) DeletePrice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := h.DB.DeletePrice(r.Context(), id); err != nil {
		h.storageError(w, "DeletePrice", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------- DISCOUNTS ----------------

func validateDiscount(discount *models.DiscountCode) error {
	discount.Code = pricing.NormalizeCode(discount.Code)
	if discount.Code == "" {
		return errors.New("code is required")
	}
	if discount.Percent < 1 || discount.Percent > 100 {
		return errors.New("percent must be between 1 and 100")
	}
	if discount.MaxUses != nil && *discount.MaxUses < 1 {
		return errors.New("maxUses must be at least 1")
	}
	return nil
}

func (h *Handler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.DB.ListDiscounts(r.Context())
	if err != nil {
		h.storageError(w, "ListDiscounts", err)
		return
	}
	h.writeJSON(w, http.StatusOK, discounts)
}

func (h *Handler) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	var discount models.DiscountCode
	if err := json.NewDecoder(r.Body).Decode(&discount); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateDiscount(&discount); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	discount.UsedCount = 0
	if err := h.DB.CreateDiscount(r.Context(), &discount); err != nil {
		h.storageError(w, "CreateDiscount", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, discount)
}

func (h *Handler) UpdateDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var discount models.DiscountCode
	if err := json.NewDecoder(r.Body).Decode(&discount); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateDiscount(&discount); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	discount.ID = id
	if err := h.DB.UpdateDiscount(r.Context(), &discount); err != nil {
		h.storageError(w, "UpdateDiscount", err)
		return
	}
	h.writeJSON(w, http.StatusOK, discount)
}

func (h *Handler) DeleteDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := h.DB.DeleteDiscount(r.Context(), id); err != nil {
		h.storageError(w, "DeleteDiscount", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------- SPEAKERS ----------------

func (h *Handler) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	speakers, err := h.DB.ListSpeakers(r.Context())
	if err != nil {
		h.storageError(w, "ListSpeakers", err)
		return
	}
	h.writeJSON(w, http.StatusOK, speakers)
}

func (h *Handler) CreateSpeaker(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	image, err := h.Uploader.SaveImage(r, "image")
	if err != nil {
		h.uploadError(w, err)
		return
	}
	speaker := models.Speaker{
		Name:  r.FormValue("name"),
		Title: r.FormValue("title"),
		Bio:   r.FormValue("bio"),
		Image: image,
	}
	if speaker.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if err := h.DB.CreateSpeaker(r.Context(), &speaker); err != nil {
		h.storageError(w, "CreateSpeaker", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, speaker)
}

func (h *Handler) UpdateSpeaker(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	image, err := h.Uploader.SaveImage(r, "image")
	if err != nil {
		h.uploadError(w, err)
		return
	}
	if image == "" {
		image = r.FormValue("image")
	}
	position, _ := strconv.Atoi(r.FormValue("position"))
	speaker := models.Speaker{
		ID:       id,
		Name:     r.FormValue("name"),
		Title:    r.FormValue("title"),
		Bio:      r.FormValue("bio"),
		Image:    image,
		Position: position,
	}
	if err := h.DB.UpdateSpeaker(r.Context(), &speaker); err != nil {
		h.storageError(w, "UpdateSpeaker", err)
		return
	}
	h.writeJSON(w, http.StatusOK, speaker)
}

func (h *Handler) DeleteSpeaker(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := h.DB.DeleteSpeaker(r.Context(), id); err != nil {
		h.storageError(w, "DeleteSpeaker", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------- PARTNERS ----------------

func (h *Handler) ListPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.DB.ListPartners(r.Context())
	if err != nil {
		h.storageError(w, "ListPartners", err)
		return
	}
	h.writeJSON(w, http.StatusOK, partners)
}

func (h *Handler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	image, err := h.Uploader.SaveImage(r, "image")
	if err != nil {
		h.uploadError(w, err)
		return
	}
	partner := models.Partner{
		Name:  r.FormValue("name"),
		URL:   r.FormValue("url"),
		Image: image,
	}
	if partner.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if err := h.DB.CreatePartner(r.Context(), &partner); err != nil {
		h.storageError(w, "CreatePartner", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, partner)
}

func (h *Handler) UpdatePartner(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	image, err := h.Uploader.SaveImage(r, "image")
	if err != nil {
		h.uploadError(w, err)
		return
	}
	if image == "" {
		image = r.FormValue("image")
	}
	position, _ := strconv.Atoi(r.FormValue("position"))
	partner := models.Partner{
		ID:       id,
		Name:     r.FormValue("name"),
		URL:      r.FormValue("url"),
		Image:    image,
		Position: position,
	}
	if err := h.DB.UpdatePartner(r.Context(), &partner); err != nil {
		h.storageError(w, "UpdatePartner", err)
		return
	}
	h.writeJSON(w, http.StatusOK, partner)
}

func (h *Handler) DeletePartner(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := h.DB.DeletePartner(r.Context(), id); err != nil {
		h.storageError(w, "DeletePartner", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------- VENUE / HERO ----------------

func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venue, err := h.DB.GetVenue(r.Context())
	if err != nil {
		h.storageError(w, "GetVenue", err)
		return
	}
	h.writeJSON(w, http.StatusOK, venue)
}

func (h *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	var venue models.Venue
	if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.DB.UpsertVenue(r.Context(), &venue); err != nil {
		h.storageError(w, "UpdateVenue", err)
		return
	}
	h.writeJSON(w, http.StatusOK, venue)
}

func (h *Handler) GetHero(w http.ResponseWriter, r *http.Request) {
	hero, err := h.DB.GetHero(r.Context())
	if err != nil {
		h.storageError(w, "GetHero", err)
		return
	}
	h.writeJSON(w, http.StatusOK, hero)
}

func (h *Handler) UpdateHero(w http.ResponseWriter, r *http.Request) {
	var hero models.HeroText
	if err := json.NewDecoder(r.Body).Decode(&hero); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.DB.UpsertHero(r.Context(), &hero); err != nil {
		h.storageError(w, "UpdateHero", err)
		return
	}
	h.writeJSON(w, http.StatusOK, hero)
}

func (h *Handler) uploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, content.ErrUploadRejected) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.Logger.Error("UPLOAD", fmt.Sprintf("Upload failed: %v", err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
