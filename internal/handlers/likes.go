package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/clipstream/backend/internal/logging"
	"github.com/clipstream/backend/internal/models"
	"github.com/clipstream/backend/internal/repositories"
)

// LikeHandler implements like toggles for videos, comments, and tweets, and
// the liked-videos listing.
type LikeHandler struct {
	Likes   LikeStore
	NowFunc func() time.Time
}

// ToggleVideo handles POST /api/v1/likes/toggle/v/{videoId} requests.
func (h LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "videoId", func(id, userID string) (repositories.LikeTarget, models.Like) {
		return repositories.LikeTarget{VideoID: id, LikedBy: userID},
			models.Like{VideoID: id, LikedBy: userID}
	})
}

// ToggleComment handles POST /api/v1/likes/toggle/c/{commentId} requests.
func (h LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "commentId", func(id, userID string) (repositories.LikeTarget, models.Like) {
		return repositories.LikeTarget{CommentID: id, LikedBy: userID},
			models.Like{CommentID: id, LikedBy: userID}
	})
}

// ToggleTweet handles POST /api/v1/likes/toggle/t/{tweetId} requests.
func (h LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "tweetId", func(id, userID string) (repositories.LikeTarget, models.Like) {
		return repositories.LikeTarget{TweetID: id, LikedBy: userID},
			models.Like{TweetID: id, LikedBy: userID}
	})
}

// toggle flips one (user, target) like: an existing row is removed, a missing
// one is created. The response reports the resulting state.
func (h LikeHandler) toggle(w http.ResponseWriter, r *http.Request, param string, build func(id, userID string) (repositories.LikeTarget, models.Like)) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	targetID, err := pathID(r, param)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	target, like := build(targetID, user.ID)

	existing, err := h.Likes.Find(ctx, target)
	switch {
	case err == nil:
		if err := h.Likes.Delete(ctx, existing.ID); err != nil {
			logger.Error("like removal failed", "error", err, "likeId", existing.ID)
			respondError(ctx, w, http.StatusInternalServerError, "failed to toggle like")
			return
		}
		respondJSON(ctx, w, http.StatusOK, map[string]bool{"liked": false}, "like removed")

	case errors.Is(err, repositories.ErrNotFound):
		like.ID = uuid.NewString()
		like.CreatedAt = h.now()
		if err := h.Likes.Create(ctx, like); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				respondError(ctx, w, http.StatusNotFound, "target does not exist")
				return
			}
			logger.Error("like create failed", "error", err, "target", targetID)
			respondError(ctx, w, http.StatusInternalServerError, "failed to toggle like")
			return
		}
		respondJSON(ctx, w, http.StatusOK, map[string]bool{"liked": true}, "like added")

	default:
		logger.Error("like lookup failed", "error", err, "target", targetID)
		respondError(ctx, w, http.StatusInternalServerError, "failed to toggle like")
	}
}

// LikedVideos handles GET /api/v1/likes/videos requests.
func (h LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	videos, err := h.Likes.LikedVideos(ctx, user.ID)
	if err != nil {
		respondStoreError(ctx, w, err, "liked videos not found")
		return
	}
	if len(videos) == 0 {
		respondError(ctx, w, http.StatusNotFound, "liked videos not found")
		return
	}

	respondJSON(ctx, w, http.StatusOK, videos, "liked videos fetched successfully")
}

func (h LikeHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
