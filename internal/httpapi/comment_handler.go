package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/auth"
	"github.com/Aarya06/Bookwizard/internal/comment"
	"github.com/Aarya06/Bookwizard/internal/user"
)

type CommentHandler struct {
	comments comment.Repository
	users    *user.Service
	logger   *zap.Logger
}

func NewCommentHandler(comments comment.Repository, users *user.Service, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		users:    users,
		logger:   logger,
	}
}

type CommentRequestDTO struct {
	Text string `json:"text"`
}

func parentType(raw string) (comment.ParentType, bool) {
	switch comment.ParentType(raw) {
	case comment.ParentBook, comment.ParentEbook, comment.ParentBlog:
		return comment.ParentType(raw), true
	}
	return "", false
}

// GET /comments/{parent_type}/{parent_id}
func (h *CommentHandler) ListByParent(w http.ResponseWriter, r *http.Request) {
	pt, ok := parentType(chi.URLParam(r, "parent_type"))
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_parent_type", "parent type must be book, ebook or blog")
		return
	}

	comments, err := h.comments.ListByParent(r.Context(), pt, chi.URLParam(r, "parent_id"))
	if err != nil {
		h.logger.Error("failed to list comments", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list comments")
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

// POST /comments/{parent_type}/{parent_id}
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	pt, ok := parentType(chi.URLParam(r, "parent_type"))
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_parent_type", "parent type must be book, ebook or blog")
		return
	}

	var req CommentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "text is required")
		return
	}

	u, err := h.users.Get(r.Context(), getUserID(r.Context()))
	if err != nil {
		h.logger.Error("failed to load commenter", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load account")
		return
	}

	id, err := h.comments.Create(r.Context(), &comment.Comment{
		ParentType:   pt,
		ParentID:     chi.URLParam(r, "parent_id"),
		Text:         req.Text,
		PostedByID:   u.ID,
		PostedByName: u.FirstName + " " + u.LastName,
	})
	if err != nil {
		h.logger.Error("failed to create comment", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create comment")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// DELETE /comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing, err := h.comments.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, comment.ErrCommentNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "comment not found")
			return
		}
		h.logger.Error("failed to get comment", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get comment")
		return
	}
	if !auth.IsOwner(existing, getUserID(r.Context())) {
		respondError(w, http.StatusForbidden, "forbidden", "only the author can delete this comment")
		return
	}

	if err := h.comments.Delete(r.Context(), existing.ID); err != nil {
		h.logger.Error("failed to delete comment", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
