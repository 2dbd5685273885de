package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/auth"
	"github.com/Aarya06/Bookwizard/internal/exchange"
	"github.com/Aarya06/Bookwizard/internal/user"
)

type ExchangeHandler struct {
	posts  exchange.Repository
	users  *user.Service
	logger *zap.Logger
}

func NewExchangeHandler(posts exchange.Repository, users *user.Service, logger *zap.Logger) *ExchangeHandler {
	return &ExchangeHandler{
		posts:  posts,
		users:  users,
		logger: logger,
	}
}

type ExchangePostRequestDTO struct {
	OfferedTitle  string `json:"offered_title"`
	OfferedAuthor string `json:"offered_author"`
	OfferedImage  string `json:"offered_image"`
	WantedTitle   string `json:"wanted_title"`
	WantedAuthor  string `json:"wanted_author"`
	WantedImage   string `json:"wanted_image"`
	Address       string `json:"address"`
	Contact       string `json:"contact"`
}

func (h *ExchangeHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list exchange posts", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list exchange posts")
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *ExchangeHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, exchange.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "exchange post not found")
			return
		}
		h.logger.Error("failed to get exchange post", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get exchange post")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *ExchangeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ExchangePostRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.OfferedTitle == "" || req.WantedTitle == "" || req.Contact == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "offered_title, wanted_title and contact are required")
		return
	}

	u, err := h.users.Get(r.Context(), getUserID(r.Context()))
	if err != nil {
		h.logger.Error("failed to load poster", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load account")
		return
	}

	id, err := h.posts.Create(r.Context(), &exchange.Post{
		OfferedTitle:  req.OfferedTitle,
		OfferedAuthor: req.OfferedAuthor,
		OfferedImage:  req.OfferedImage,
		WantedTitle:   req.WantedTitle,
		WantedAuthor:  req.WantedAuthor,
		WantedImage:   req.WantedImage,
		PostedByID:    u.ID,
		PostedByName:  u.FirstName + " " + u.LastName,
		Address:       req.Address,
		Contact:       req.Contact,
	})
	if err != nil {
		h.logger.Error("failed to create exchange post", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create exchange post")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *ExchangeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, err := h.posts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, exchange.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "exchange post not found")
			return
		}
		h.logger.Error("failed to get exchange post", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get exchange post")
		return
	}
	if !auth.IsOwner(existing, getUserID(r.Context())) {
		respondError(w, http.StatusForbidden, "forbidden", "only the poster can remove this post")
		return
	}

	if err := h.posts.Delete(r.Context(), existing.ID); err != nil {
		h.logger.Error("failed to delete exchange post", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete exchange post")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
