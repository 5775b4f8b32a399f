package handlers

import (
	"net/http"
)

// DashboardHandler implements the channel owner's dashboard read models.
type DashboardHandler struct {
	Stats StatsStore
}

// ChannelStats handles GET /api/v1/dashboard/stats/{channelId} requests.
func (h DashboardHandler) ChannelStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := requireUser(w, r); !ok {
		return
	}

	channelID, err := pathID(r, "channelId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.Stats.ChannelStats(ctx, channelID)
	if err != nil {
		respondStoreError(ctx, w, err, "channel stats not found")
		return
	}

	respondJSON(ctx, w, http.StatusOK, stats, "channel stats fetched successfully")
}

// ChannelVideos handles GET /api/v1/dashboard/videos/{channelId} requests.
func (h DashboardHandler) ChannelVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := requireUser(w, r); !ok {
		return
	}

	channelID, err := pathID(r, "channelId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	videos, err := h.Stats.ChannelVideos(ctx, channelID)
	if err != nil {
		respondStoreError(ctx, w, err, "channel videos not found")
		return
	}
	if len(videos) == 0 {
		respondError(ctx, w, http.StatusNotFound, "channel videos not found")
		return
	}

	respondJSON(ctx, w, http.StatusOK, videos, "channel videos fetched successfully")
}
