package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clipstream/backend/internal/logging"
	"github.com/clipstream/backend/internal/models"
	"github.com/clipstream/backend/internal/repositories"
)

// VideoHandler implements video publishing and the composed video read models.
type VideoHandler struct {
	Videos  VideoStore
	Media   MediaStorage
	NowFunc func() time.Time
}

// List handles GET /api/v1/videos requests. Supports free-text search over
// title and description, sorting, pagination, and an owner filter.
func (h VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	page, limit := parsePagination(r)
	params := repositories.ListVideosParams{
		Query:   strings.TrimSpace(q.Get("query")),
		SortBy:  strings.TrimSpace(q.Get("sortBy")),
		SortAsc: strings.EqualFold(q.Get("sortType"), "asc"),
		Page:    page,
		Limit:   limit,
	}

	if ownerID := strings.TrimSpace(q.Get("userId")); ownerID != "" {
		if _, err := uuid.Parse(ownerID); err != nil {
			respondError(ctx, w, http.StatusBadRequest, "userId must be a valid id")
			return
		}
		params.OwnerID = ownerID
	}

	videos, err := h.Videos.List(ctx, params)
	if err != nil {
		respondStoreError(ctx, w, err, "videos not found")
		return
	}
	if len(videos) == 0 {
		respondError(ctx, w, http.StatusNotFound, "videos not found")
		return
	}

	respondJSON(ctx, w, http.StatusOK, videos, "videos fetched successfully")
}

// Publish handles POST /api/v1/videos requests.
func (h VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		logger.Warn("invalid publish payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "multipart form data is required")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	if title == "" || description == "" {
		respondError(ctx, w, http.StatusBadRequest, "title and description are required")
		return
	}

	duration := 0.0
	if raw := strings.TrimSpace(r.FormValue("duration")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			respondError(ctx, w, http.StatusBadRequest, "duration must be a non-negative number")
			return
		}
		duration = parsed
	}

	videoFile, videoHeader, err := formFile(r, "videoFile")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, "videoFile is required")
		return
	}
	defer videoFile.Close()

	thumbFile, thumbHeader, err := formFile(r, "thumbnail")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, "thumbnail is required")
		return
	}
	defer thumbFile.Close()

	videoURL, err := h.Media.Save(ctx, uploadKey("videos", videoHeader.Filename), fileContentType(videoHeader), videoFile)
	if err != nil {
		logger.Error("video upload failed", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to store video")
		return
	}

	thumbnailURL, err := h.Media.Save(ctx, uploadKey("thumbnails", thumbHeader.Filename), fileContentType(thumbHeader), thumbFile)
	if err != nil {
		logger.Error("thumbnail upload failed", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to store thumbnail")
		return
	}

	now := h.now()
	video := models.Video{
		ID:           uuid.NewString(),
		OwnerID:      user.ID,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Title:        title,
		Description:  description,
		Duration:     duration,
		IsPublished:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.Videos.Create(ctx, video); err != nil {
		logger.Error("video create failed", "error", err, "userId", user.ID)
		respondError(ctx, w, http.StatusInternalServerError, "failed to publish video")
		return
	}

	respondJSON(ctx, w, http.StatusCreated, video, "video published successfully")
}

// Get handles GET /api/v1/videos/{videoId} requests. Every fetch increments
// the stored view counter by exactly one; the response reflects the increment.
func (h VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videoID, err := pathID(r, "videoId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.Videos.Detail(ctx, videoID)
	if err != nil {
		respondStoreError(ctx, w, err, "video does not exist")
		return
	}

	if err := h.Videos.IncrementViews(ctx, videoID); err != nil {
		logging.FromContext(ctx).Error("view increment failed", "error", err, "videoId", videoID)
		respondError(ctx, w, http.StatusInternalServerError, "unable to fetch video")
		return
	}
	detail.Views++

	respondJSON(ctx, w, http.StatusOK, detail, "video fetched successfully")
}

// Update handles PATCH /api/v1/videos/{videoId} requests.
func (h VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req updateVideoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.Description == "" {
		respondError(ctx, w, http.StatusBadRequest, "title and description are required")
		return
	}

	video, err := h.Videos.FindByID(ctx, videoID)
	if err != nil {
		respondStoreError(ctx, w, err, "video does not exist")
		return
	}
	if video.OwnerID != user.ID {
		respondError(ctx, w, http.StatusForbidden, "only the owner can update this video")
		return
	}

	updated, err := h.Videos.Update(ctx, videoID, req.Title, req.Description)
	if err != nil {
		respondStoreError(ctx, w, err, "video does not exist")
		return
	}

	respondJSON(ctx, w, http.StatusOK, updated, "video updated successfully")
}

// Delete handles DELETE /api/v1/videos/{videoId} requests.
func (h VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	video, err := h.Videos.FindByID(ctx, videoID)
	if err != nil {
		respondStoreError(ctx, w, err, "video does not exist")
		return
	}
	if video.OwnerID != user.ID {
		respondError(ctx, w, http.StatusForbidden, "only the owner can delete this video")
		return
	}

	if err := h.Videos.Delete(ctx, videoID); err != nil {
		respondStoreError(ctx, w, err, "video does not exist")
		return
	}

	respondJSON(ctx, w, http.StatusOK, nil, "video deleted successfully")
}

// TogglePublish handles PATCH /api/v1/videos/toggle-publish/{videoId} requests.
// A non-owner is told the video does not exist rather than that it is
// forbidden.
func (h VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
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

	video, err := h.Videos.FindByID(ctx, videoID)
	if err != nil || video.OwnerID != user.ID {
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			respondStoreError(ctx, w, err, "video does not exist")
			return
		}
		respondError(ctx, w, http.StatusNotFound, "video does not exist")
		return
	}

	next := !video.IsPublished
	if err := h.Videos.SetPublished(ctx, videoID, next); err != nil {
		respondStoreError(ctx, w, err, "video does not exist")
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]bool{"isPublished": next}, "publish status toggled")
}

func (h VideoHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}

type updateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
