package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/auth"
	"github.com/Aarya06/Bookwizard/internal/event"
	"github.com/Aarya06/Bookwizard/internal/user"
)

type EventHandler struct {
	events event.Repository
	users  *user.Service
	logger *zap.Logger
}

func NewEventHandler(events event.Repository, users *user.Service, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		events: events,
		users:  users,
		logger: logger,
	}
}

type EventRequestDTO struct {
	Title    string    `json:"title"`
	Location string    `json:"location"`
	Image    string    `json:"image"`
	Link     string    `json:"link"`
	Body     string    `json:"body"`
	Date     time.Time `json:"date"`
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list events")
		return
	}
	respondJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	ev, err := h.events.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "event not found")
			return
		}
		h.logger.Error("failed to get event", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get event")
		return
	}
	respondJSON(w, http.StatusOK, ev)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req EventRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Title == "" || req.Date.IsZero() {
		respondError(w, http.StatusBadRequest, "invalid_request", "title and date are required")
		return
	}

	u, err := h.users.Get(r.Context(), getUserID(r.Context()))
	if err != nil {
		h.logger.Error("failed to load organizer", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load account")
		return
	}

	id, err := h.events.Create(r.Context(), &event.Event{
		Title:        req.Title,
		Location:     req.Location,
		Image:        req.Image,
		Link:         req.Link,
		Body:         req.Body,
		Date:         req.Date,
		PostedByID:   u.ID,
		PostedByName: u.FirstName + " " + u.LastName,
	})
	if err != nil {
		h.logger.Error("failed to create event", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create event")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, err := h.events.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "event not found")
			return
		}
		h.logger.Error("failed to get event", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get event")
		return
	}
	if !auth.IsOwner(existing, getUserID(r.Context())) {
		respondError(w, http.StatusForbidden, "forbidden", "only the organizer can edit this event")
		return
	}

	var req EventRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	existing.Title = req.Title
	existing.Location = req.Location
	existing.Image = req.Image
	existing.Link = req.Link
	existing.Body = req.Body
	existing.Date = req.Date
	if err := h.events.Update(r.Context(), existing); err != nil {
		h.logger.Error("failed to update event", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update event")
		return
	}
	respondJSON(w, http.StatusOK, existing)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, err := h.events.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "event not found")
			return
		}
		h.logger.Error("failed to get event", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get event")
		return
	}
	if !auth.IsOwner(existing, getUserID(r.Context())) {
		respondError(w, http.StatusForbidden, "forbidden", "only the organizer can remove this event")
		return
	}

	if err := h.events.Delete(r.Context(), existing.ID); err != nil {
		h.logger.Error("failed to delete event", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
