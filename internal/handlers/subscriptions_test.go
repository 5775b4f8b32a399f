package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clipstream/backend/internal/models"
	"github.com/clipstream/backend/internal/repositories"
)

type inMemorySubscriptionStore struct {
	subs map[string]models.Subscription
}

func newInMemorySubscriptionStore() *inMemorySubscriptionStore {
	return &inMemorySubscriptionStore{subs: make(map[string]models.Subscription)}
}

func (s *inMemorySubscriptionStore) Find(_ context.Context, subscriberID, channelID string) (models.Subscription, error) {
	for _, sub := range s.subs {
		if sub.SubscriberID == subscriberID && sub.ChannelID == channelID {
			return sub, nil
		}
	}
	return models.Subscription{}, repositories.ErrNotFound
}

func (s *inMemorySubscriptionStore) Create(_ context.Context, sub models.Subscription) error {
	s.subs[sub.ID] = sub
	return nil
}

func (s *inMemorySubscriptionStore) Delete(_ context.Context, id string) error {
	if _, ok := s.subs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.subs, id)
	return nil
}

func (s *inMemorySubscriptionStore) Subscribers(_ context.Context, channelID string) ([]models.Owner, error) {
	var out []models.Owner
	for _, sub := range s.subs {
		if sub.ChannelID == channelID {
			out = append(out, models.Owner{ID: sub.SubscriberID})
		}
	}
	return out, nil
}

func (s *inMemorySubscriptionStore) Channels(_ context.Context, subscriberID string) ([]models.Owner, error) {
	var out []models.Owner
	for _, sub := range s.subs {
		if sub.SubscriberID == subscriberID {
			out = append(out, models.Owner{ID: sub.ChannelID})
		}
	}
	return out, nil
}

func TestSubscriptionHandlerToggleFlips(t *testing.T) {
	store := newInMemorySubscriptionStore()
	user := testUser(1)
	channel := testUser(2)
	handler := SubscriptionHandler{Subscriptions: store}

	toggle := func() map[string]any {
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions/c/"+channel.ID, nil), user)
		req.SetPathValue("channelId", channel.ID)
		rec := httptest.NewRecorder()
		handler.Toggle(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
		}
		return dataObject(t, decodeEnvelope(t, rec))
	}

	if got := toggle(); got["subscribed"] != true {
		t.Fatalf("first toggle must subscribe, got %v", got["subscribed"])
	}
	if got := toggle(); got["subscribed"] != false {
		t.Fatalf("second toggle must unsubscribe, got %v", got["subscribed"])
	}
	if len(store.subs) != 0 {
		t.Fatalf("expected subscription removed, got %d", len(store.subs))
	}
}

func TestSubscriptionHandlerToggleRejectsSelf(t *testing.T) {
	user := testUser(1)
	handler := SubscriptionHandler{Subscriptions: newInMemorySubscriptionStore()}

	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions/c/"+user.ID, nil), user)
	req.SetPathValue("channelId", user.ID)
	rec := httptest.NewRecorder()

	handler.Toggle(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestSubscriptionHandlerListings(t *testing.T) {
	store := newInMemorySubscriptionStore()
	subscriber := testUser(1)
	channel := testUser(2)
	store.subs["s1"] = models.Subscription{ID: "s1", SubscriberID: subscriber.ID, ChannelID: channel.ID}
	handler := SubscriptionHandler{Subscriptions: store}

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/c/"+channel.ID+"/subscribers", nil), channel)
	req.SetPathValue("channelId", channel.ID)
	rec := httptest.NewRecorder()
	handler.Subscribers(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}
	data := dataObject(t, decodeEnvelope(t, rec))
	if data["count"].(float64) != 1 {
		t.Fatalf("expected one subscriber, got %v", data["count"])
	}

	req = authedRequest(httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/u/"+subscriber.ID, nil), subscriber)
	req.SetPathValue("subscriberId", subscriber.ID)
	rec = httptest.NewRecorder()
	handler.Channels(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}
	data = dataObject(t, decodeEnvelope(t, rec))
	if data["count"].(float64) != 1 {
		t.Fatalf("expected one channel, got %v", data["count"])
	}
}
