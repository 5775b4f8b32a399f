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

// SubscriptionHandler implements channel subscriptions.
type SubscriptionHandler struct {
	Subscriptions SubscriptionStore
	NowFunc       func() time.Time
}

// Toggle handles POST /api/v1/subscriptions/c/{channelId} requests.
func (h SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	channelID, err := pathID(r, "channelId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	if channelID == user.ID {
		respondError(ctx, w, http.StatusBadRequest, "cannot subscribe to your own channel")
		return
	}

	existing, err := h.Subscriptions.Find(ctx, user.ID, channelID)
	switch {
	case err == nil:
		if err := h.Subscriptions.Delete(ctx, existing.ID); err != nil {
			logger.Error("unsubscribe failed", "error", err, "subscriptionId", existing.ID)
			respondError(ctx, w, http.StatusInternalServerError, "failed to toggle subscription")
			return
		}
		respondJSON(ctx, w, http.StatusOK, map[string]bool{"subscribed": false}, "unsubscribed")

	case errors.Is(err, repositories.ErrNotFound):
		sub := models.Subscription{
			ID:           uuid.NewString(),
			SubscriberID: user.ID,
			ChannelID:    channelID,
			CreatedAt:    h.now(),
		}
		if err := h.Subscriptions.Create(ctx, sub); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				respondError(ctx, w, http.StatusNotFound, "channel does not exist")
				return
			}
			logger.Error("subscribe failed", "error", err, "channelId", channelID)
			respondError(ctx, w, http.StatusInternalServerError, "failed to toggle subscription")
			return
		}
		respondJSON(ctx, w, http.StatusOK, map[string]bool{"subscribed": true}, "subscribed")

	default:
		logger.Error("subscription lookup failed", "error", err, "channelId", channelID)
		respondError(ctx, w, http.StatusInternalServerError, "failed to toggle subscription")
	}
}

// Subscribers handles GET /api/v1/subscriptions/c/{channelId}/subscribers requests.
func (h SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := requireUser(w, r); !ok {
		return
	}

	channelID, err := pathID(r, "channelId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	subscribers, err := h.Subscriptions.Subscribers(ctx, channelID)
	if err != nil {
		respondStoreError(ctx, w, err, "subscribers not found")
		return
	}

	respondJSON(ctx, w, http.StatusOK, subscriberList{Subscribers: subscribers, Count: len(subscribers)}, "subscribers fetched successfully")
}

// Channels handles GET /api/v1/subscriptions/u/{subscriberId} requests.
func (h SubscriptionHandler) Channels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := requireUser(w, r); !ok {
		return
	}

	subscriberID, err := pathID(r, "subscriberId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	channels, err := h.Subscriptions.Channels(ctx, subscriberID)
	if err != nil {
		respondStoreError(ctx, w, err, "subscribed channels not found")
		return
	}

	respondJSON(ctx, w, http.StatusOK, channelList{Channels: channels, Count: len(channels)}, "subscribed channels fetched successfully")
}

func (h SubscriptionHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}

type subscriberList struct {
	Subscribers []models.Owner `json:"subscribers"`
	Count       int            `json:"count"`
}

type channelList struct {
	Channels []models.Owner `json:"channels"`
	Count    int            `json:"count"`
}
