package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clipstream/backend/internal/logging"
	"github.com/clipstream/backend/internal/models"
)

// PlaylistHandler implements playlist curation.
type PlaylistHandler struct {
	Playlists PlaylistStore
	NowFunc   func() time.Time
}

// Create handles POST /api/v1/playlists requests.
func (h PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req playlistRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" || req.Description == "" {
		respondError(ctx, w, http.StatusBadRequest, "name and description are required")
		return
	}

	now := h.now()
	playlist := models.Playlist{
		ID:          uuid.NewString(),
		OwnerID:     user.ID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.Playlists.Create(ctx, playlist); err != nil {
		logging.FromContext(ctx).Error("playlist create failed", "error", err, "userId", user.ID)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create playlist")
		return
	}

	respondJSON(ctx, w, http.StatusCreated, playlist, "playlist created successfully")
}

// ListForUser handles GET /api/v1/playlists/user/{userId} requests.
func (h PlaylistHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := requireUser(w, r); !ok {
		return
	}

	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	playlists, err := h.Playlists.ListForUser(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "playlists not found")
		return
	}
	if len(playlists) == 0 {
		respondError(ctx, w, http.StatusNotFound, "playlists not found")
		return
	}

	respondJSON(ctx, w, http.StatusOK, playlists, "playlists fetched successfully")
}

// Get handles GET /api/v1/playlists/{playlistId} requests.
func (h PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := requireUser(w, r); !ok {
		return
	}

	playlistID, err := pathID(r, "playlistId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.Playlists.Detail(ctx, playlistID)
	if err != nil {
		respondStoreError(ctx, w, err, "playlist does not exist")
		return
	}

	respondJSON(ctx, w, http.StatusOK, detail, "playlist fetched successfully")
}

// AddVideo handles PATCH /api/v1/playlists/add/{playlistId}/{videoId} requests.
func (h PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	h.mutateMembership(w, r, h.Playlists.AddVideo, "video added to playlist")
}

// RemoveVideo handles PATCH /api/v1/playlists/remove/{playlistId}/{videoId} requests.
func (h PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	h.mutateMembership(w, r, h.Playlists.RemoveVideo, "video removed from playlist")
}

func (h PlaylistHandler) mutateMembership(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, playlistID, videoID string) error, message string) {
	ctx := r.Context()

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	playlistID, err := pathID(r, "playlistId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	playlist, err := h.Playlists.FindByID(ctx, playlistID)
	if err != nil {
		respondStoreError(ctx, w, err, "playlist does not exist")
		return
	}
	if playlist.OwnerID != user.ID {
		respondError(ctx, w, http.StatusForbidden, "only the owner can modify this playlist")
		return
	}

	if err := op(ctx, playlistID, videoID); err != nil {
		respondStoreError(ctx, w, err, "video does not exist")
		return
	}

	respondJSON(ctx, w, http.StatusOK, nil, message)
}

// Update handles PATCH /api/v1/playlists/{playlistId} requests.
func (h PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	playlistID, err := pathID(r, "playlistId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	var req playlistRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" || req.Description == "" {
		respondError(ctx, w, http.StatusBadRequest, "name and description are required")
		return
	}

	playlist, err := h.Playlists.FindByID(ctx, playlistID)
	if err != nil {
		respondStoreError(ctx, w, err, "playlist does not exist")
		return
	}
	if playlist.OwnerID != user.ID {
		respondError(ctx, w, http.StatusForbidden, "only the owner can update this playlist")
		return
	}

	updated, err := h.Playlists.Update(ctx, playlistID, req.Name, req.Description)
	if err != nil {
		respondStoreError(ctx, w, err, "playlist does not exist")
		return
	}

	respondJSON(ctx, w, http.StatusOK, updated, "playlist updated successfully")
}

// Delete handles DELETE /api/v1/playlists/{playlistId} requests.
func (h PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	playlistID, err := pathID(r, "playlistId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	playlist, err := h.Playlists.FindByID(ctx, playlistID)
	if err != nil {
		respondStoreError(ctx, w, err, "playlist does not exist")
		return
	}
	if playlist.OwnerID != user.ID {
		respondError(ctx, w, http.StatusForbidden, "only the owner can delete this playlist")
		return
	}

	if err := h.Playlists.Delete(ctx, playlistID); err != nil {
		respondStoreError(ctx, w, err, "playlist does not exist")
		return
	}

	respondJSON(ctx, w, http.StatusOK, nil, "playlist deleted successfully")
}

func (h PlaylistHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
