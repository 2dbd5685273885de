package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/auth"
	"github.com/Aarya06/Bookwizard/internal/blog"
	"github.com/Aarya06/Bookwizard/internal/user"
)

type BlogHandler struct {
	posts  blog.Repository
	users  *user.Service
	logger *zap.Logger
}

func NewBlogHandler(posts blog.Repository, users *user.Service, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{
		posts:  posts,
		users:  users,
		logger: logger,
	}
}

type BlogPostRequestDTO struct {
	Title    string `json:"title"`
	Image    string `json:"image"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list blog posts", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list blog posts")
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "blog post not found")
			return
		}
		h.logger.Error("failed to get blog post", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get blog post")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BlogPostRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Title == "" || req.Body == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "title and body are required")
		return
	}

	u, err := h.users.Get(r.Context(), getUserID(r.Context()))
	if err != nil {
		h.logger.Error("failed to load author", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load account")
		return
	}

	post := &blog.Post{
		Title:        req.Title,
		Image:        req.Image,
		Body:         req.Body,
		Category:     req.Category,
		PostedByID:   u.ID,
		PostedByName: u.FirstName + " " + u.LastName,
	}
	id, err := h.posts.Create(r.Context(), post)
	if err != nil {
		h.logger.Error("failed to create blog post", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create blog post")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, err := h.posts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "blog post not found")
			return
		}
		h.logger.Error("failed to get blog post", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get blog post")
		return
	}
	if !auth.IsOwner(existing, getUserID(r.Context())) {
		respondError(w, http.StatusForbidden, "forbidden", "only the author can edit this post")
		return
	}

	var req BlogPostRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	existing.Title = req.Title
	existing.Image = req.Image
	existing.Body = req.Body
	existing.Category = req.Category
	if err := h.posts.Update(r.Context(), existing); err != nil {
		h.logger.Error("failed to update blog post", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update blog post")
		return
	}
	respondJSON(w, http.StatusOK, existing)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, err := h.posts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "blog post not found")
			return
		}
		h.logger.Error("failed to get blog post", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get blog post")
		return
	}
	if !auth.IsOwner(existing, getUserID(r.Context())) {
		respondError(w, http.StatusForbidden, "forbidden", "only the author can delete this post")
		return
	}

	if err := h.posts.Delete(r.Context(), existing.ID); err != nil {
		h.logger.Error("failed to delete blog post", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete blog post")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
