package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clipstream/backend/internal/models"
	"github.com/clipstream/backend/internal/repositories"
)

type stubStatsStore struct {
	stats    models.ChannelStats
	videos   []models.Video
	statsErr error
}

func (s *stubStatsStore) ChannelStats(context.Context, string) (models.ChannelStats, error) {
	if s.statsErr != nil {
		return models.ChannelStats{}, s.statsErr
	}
	return s.stats, nil
}

func (s *stubStatsStore) ChannelVideos(context.Context, string) ([]models.Video, error) {
	return s.videos, nil
}

func TestDashboardHandlerChannelStats(t *testing.T) {
	channel := testUser(1)
	store := &stubStatsStore{stats: models.ChannelStats{
		ChannelID:        channel.ID,
		TotalVideos:      3,
		TotalViews:       120,
		TotalLikes:       14,
		TotalSubscribers: 2,
	}}
	handler := DashboardHandler{Stats: store}

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats/"+channel.ID, nil), channel)
	req.SetPathValue("channelId", channel.ID)
	rec := httptest.NewRecorder()

	handler.ChannelStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}
	data := dataObject(t, decodeEnvelope(t, rec))
	if data["totalViews"].(float64) != 120 {
		t.Fatalf("expected totalViews 120 got %v", data["totalViews"])
	}
	if data["totalSubscribers"].(float64) != 2 {
		t.Fatalf("expected totalSubscribers 2 got %v", data["totalSubscribers"])
	}
}

func TestDashboardHandlerChannelStatsZeroForNewChannel(t *testing.T) {
	channel := testUser(1)
	store := &stubStatsStore{stats: models.ChannelStats{ChannelID: channel.ID}}
	handler := DashboardHandler{Stats: store}

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats/"+channel.ID, nil), channel)
	req.SetPathValue("channelId", channel.ID)
	rec := httptest.NewRecorder()

	handler.ChannelStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}
	data := dataObject(t, decodeEnvelope(t, rec))
	if data["totalVideos"].(float64) != 0 {
		t.Fatalf("expected zeroed stats for a channel without uploads, got %v", data)
	}
}

// Unknown channel ids still resolve to 404.
func TestDashboardHandlerChannelStatsNotFound(t *testing.T) {
	channel := testUser(1)
	handler := DashboardHandler{Stats: &stubStatsStore{statsErr: repositories.ErrNotFound}}

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats/"+channel.ID, nil), channel)
	req.SetPathValue("channelId", channel.ID)
	rec := httptest.NewRecorder()

	handler.ChannelStats(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d got %d", http.StatusNotFound, rec.Code)
	}
}

func TestDashboardHandlerChannelVideos(t *testing.T) {
	channel := testUser(1)
	handler := DashboardHandler{Stats: &stubStatsStore{videos: []models.Video{{ID: testUser(100).ID, OwnerID: channel.ID}}}}

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/videos/"+channel.ID, nil), channel)
	req.SetPathValue("channelId", channel.ID)
	rec := httptest.NewRecorder()

	handler.ChannelVideos(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	items, ok := resp.Data.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one video, got %v", resp.Data)
	}
}
