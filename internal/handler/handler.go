package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cardvault/internal/codec"
	"cardvault/internal/domain"
	"cardvault/internal/service"
)

// Pinger reports store liveness for the health endpoint
type Pinger interface {
	Ping(ctx context.Context) error
}

// CardHandler handles the card API requests
type CardHandler struct {
	cards     *service.CardService
	photos    *service.PhotoService
	pinger    Pinger
	exporters map[string]codec.Exporter
	logger    *zap.Logger
}

// NewCardHandler creates a new card handler
func NewCardHandler(cards *service.CardService, photos *service.PhotoService, pinger Pinger, logger *zap.Logger) *CardHandler {
	exporters := map[string]codec.Exporter{}
	for _, e := range []codec.Exporter{codec.NewJSONCodec(), codec.NewYAMLCodec()} {
		exporters[e.Format()] = e
	}
	return &CardHandler{
		cards:     cards,
		photos:    photos,
		pinger:    pinger,
		exporters: exporters,
		logger:    logger,
	}
}

// RegisterRoutes mounts all card API routes on the router
func (h *CardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.health)

	r.Route("/api/cards", func(r chi.Router) {
		r.Get("/", h.listCards)
		r.Post("/", h.createCard)
		r.Get("/{id}", h.getCard)
		r.Put("/{id}", h.updateCard)
		r.Delete("/{id}", h.deleteCard)
		r.Post("/{id}/photo", h.uploadPhoto)
		r.Delete("/{id}/photo", h.deletePhoto)
	})

	r.Get("/api/tags", h.listTags)
	r.Get("/api/export/{format}", h.exportCards)
	r.Get("/uploads/{name}", h.servePhoto)
}

type healthResponse struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}

func (h *CardHandler) health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if err := h.pinger.Ping(r.Context()); err != nil {
		dbStatus = "error"
	}
	h.writeJSON(w, healthResponse{Status: "ok", DB: dbStatus}, http.StatusOK)
}

func (h *CardHandler) listCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	tag := r.URL.Query().Get("tag")

	cards, err := h.cards.List(r.Context(), q, tag)
	if err != nil {
		h.writeFailure(w, "failed to list cards", err)
		return
	}
	h.writeJSON(w, cards, http.StatusOK)
}

func (h *CardHandler) getCard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	card, err := h.cards.Get(r.Context(), id)
	if err != nil {
		h.writeFailure(w, "failed to get card", err)
		return
	}
	if card == nil {
		h.writeError(w, "not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, card, http.StatusOK)
}

func (h *CardHandler) createCard(w http.ResponseWriter, r *http.Request) {
	input, photo, err := h.decodeCardInput(r)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	card, err := h.cards.Create(r.Context(), input)
	if err != nil {
		h.writeFailure(w, "failed to create card", err)
		return
	}

	if photo != nil {
		if _, err := h.photos.Upload(r.Context(), card.ID, photo.name, photo.data); err != nil {
			h.writeFailure(w, "failed to store photo", err)
			return
		}
		if card, err = h.cards.Get(r.Context(), card.ID); err != nil {
			h.writeFailure(w, "failed to reload card", err)
			return
		}
	}

	h.writeJSON(w, card, http.StatusCreated)
}

func (h *CardHandler) updateCard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	input, photo, err := h.decodeCardInput(r)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	card, err := h.cards.Update(r.Context(), id, input)
	if err != nil {
		h.writeFailure(w, "failed to update card", err)
		return
	}

	if photo != nil {
		if _, err := h.photos.Upload(r.Context(), id, photo.name, photo.data); err != nil {
			h.writeFailure(w, "failed to store photo", err)
			return
		}
		if card, err = h.cards.Get(r.Context(), id); err != nil {
			h.writeFailure(w, "failed to reload card", err)
			return
		}
	}

	h.writeJSON(w, card, http.StatusOK)
}

func (h *CardHandler) deleteCard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	if err := h.cards.Delete(r.Context(), id); err != nil {
		h.writeFailure(w, "failed to delete card", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CardHandler) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	photo, err := readPhotoPart(r)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if photo == nil {
		h.writeError(w, "photo field missing", http.StatusBadRequest)
		return
	}

	url, err := h.photos.Upload(r.Context(), id, photo.name, photo.data)
	if err != nil {
		h.writeFailure(w, "failed to store photo", err)
		return
	}
	h.writeJSON(w, map[string]string{"photo_url": url}, http.StatusOK)
}

func (h *CardHandler) deletePhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	if _, err := h.photos.Remove(r.Context(), id); err != nil {
		h.writeFailure(w, "failed to remove photo", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CardHandler) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.cards.ListTags(r.Context())
	if err != nil {
		h.writeFailure(w, "failed to list tags", err)
		return
	}
	h.writeJSON(w, tags, http.StatusOK)
}

func (h *CardHandler) exportCards(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	exporter, ok := h.exporters[format]
	if !ok {
		h.writeError(w, "unknown export format", http.StatusBadRequest)
		return
	}

	cards, err := h.cards.List(r.Context(), "", "")
	if err != nil {
		h.writeFailure(w, "failed to export cards", err)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
	default:
		w.Header().Set("Content-Type", "application/x-yaml")
	}
	if err := exporter.Export(cards, w); err != nil {
		h.logger.Error("export failed", zap.String("format", format), zap.Error(err))
	}
}

func (h *CardHandler) servePhoto(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	path, err := h.photos.ResolveServePath(name)
	if err != nil {
		h.writeError(w, "invalid photo filename", http.StatusBadRequest)
		return
	}
	http.ServeFile(w, r, path)
}

// cardID parses the {id} route parameter, writing a 400 on failure.
func (h *CardHandler) cardID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, "invalid card id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeFailure maps a service error to the right status: validation
// failures name the violated rule, absent resources omit internal
// detail, and storage failures get a generic message with the cause
// logged server-side.
func (h *CardHandler) writeFailure(w http.ResponseWriter, msg string, err error) {
	switch {
	case domain.IsValidation(err):
		h.writeError(w, err.Error(), http.StatusBadRequest)
	case service.IsNotFound(err):
		h.writeError(w, "not found", http.StatusNotFound)
	default:
		h.logger.Error(msg, zap.Error(err))
		h.writeError(w, msg, http.StatusInternalServerError)
	}
}

func (h *CardHandler) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *CardHandler) writeError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// isMultipart reports whether the request carries a multipart form.
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/")
}
