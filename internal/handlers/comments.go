package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clipstream/backend/internal/logging"
	"github.com/clipstream/backend/internal/models"
)

// CommentHandler implements per-video comment threads.
type CommentHandler struct {
	Comments CommentStore
	NowFunc  func() time.Time
}

// ListForVideo handles GET /api/v1/comments/video/{videoId} requests.
func (h CommentHandler) ListForVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videoID, err := pathID(r, "videoId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	page, limit := parsePagination(r)
	comments, err := h.Comments.ListForVideo(ctx, videoID, page, limit)
	if err != nil {
		respondStoreError(ctx, w, err, "comments not found")
		return
	}
	if len(comments) == 0 {
		respondError(ctx, w, http.StatusNotFound, "comments not found")
		return
	}

	respondJSON(ctx, w, http.StatusOK, comments, "comments fetched successfully")
}

// Create handles POST /api/v1/comments/video/{videoId} requests.
func (h CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	videoID, err := pathID(r, "videoId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		respondError(ctx, w, http.StatusBadRequest, "content is required")
		return
	}

	now := h.now()
	comment := models.Comment{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		OwnerID:   user.ID,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Comments.Create(ctx, comment); err != nil {
		logging.FromContext(ctx).Warn("comment create failed", "error", err, "videoId", videoID)
		respondStoreError(ctx, w, err, "video does not exist")
		return
	}

	respondJSON(ctx, w, http.StatusCreated, comment, "comment added successfully")
}

// Update handles PATCH /api/v1/comments/{commentId} requests.
func (h CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	commentID, err := pathID(r, "commentId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		respondError(ctx, w, http.StatusBadRequest, "content is required")
		return
	}

	comment, err := h.Comments.FindByID(ctx, commentID)
	if err != nil {
		respondStoreError(ctx, w, err, "comment does not exist")
		return
	}
	if comment.OwnerID != user.ID {
		respondError(ctx, w, http.StatusForbidden, "only the owner can update this comment")
		return
	}

	updated, err := h.Comments.Update(ctx, commentID, req.Content)
	if err != nil {
		respondStoreError(ctx, w, err, "comment does not exist")
		return
	}

	respondJSON(ctx, w, http.StatusOK, updated, "comment updated successfully")
}

// Delete handles DELETE /api/v1/comments/{commentId} requests.
func (h CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	commentID, err := pathID(r, "commentId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.Comments.FindByID(ctx, commentID)
	if err != nil {
		respondStoreError(ctx, w, err, "comment does not exist")
		return
	}
	if comment.OwnerID != user.ID {
		respondError(ctx, w, http.StatusForbidden, "only the owner can delete this comment")
		return
	}

	if err := h.Comments.Delete(ctx, commentID); err != nil {
		respondStoreError(ctx, w, err, "comment does not exist")
		return
	}

	respondJSON(ctx, w, http.StatusOK, nil, "comment deleted successfully")
}

func (h CommentHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}

type commentRequest struct {
	Content string `json:"content"`
}
