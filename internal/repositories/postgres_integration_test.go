package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/cockroachdb/cockroach-go/v2/testserver"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipstream/backend/internal/models"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	server, err := testserver.NewTestServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "start cockroach test server: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, server.PGURL().String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to cockroach test server: %v\n", err)
		server.Stop()
		os.Exit(1)
	}

	if err := applyMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "apply migrations: %v\n", err)
		pool.Close()
		server.Stop()
		os.Exit(1)
	}

	testPool = pool

	code := m.Run()

	pool.Close()
	server.Stop()

	os.Exit(code)
}

func TestPostgresUserRepository_CreateFindAndConflicts(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	repo := NewPostgresUserRepository(testPool)
	user := createTestUser(t, repo, "ada")

	dupEmail := user
	dupEmail.ID = uuid.NewString()
	dupEmail.Username = "different"
	if err := repo.Create(ctx, dupEmail); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate email, got %v", err)
	}

	dupUsername := user
	dupUsername.ID = uuid.NewString()
	dupUsername.Email = "different@example.com"
	if err := repo.Create(ctx, dupUsername); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate username, got %v", err)
	}

	byUsername, err := repo.FindByUsernameOrEmail(ctx, user.Username, "")
	if err != nil {
		t.Fatalf("find by username: %v", err)
	}
	if byUsername.ID != user.ID {
		t.Fatalf("expected user %s got %s", user.ID, byUsername.ID)
	}

	byEmail, err := repo.FindByUsernameOrEmail(ctx, "", user.Email)
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("expected user %s got %s", user.ID, byEmail.ID)
	}

	if _, err := repo.FindByUsernameOrEmail(ctx, "missing", "missing@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestPostgresUserRepository_RefreshTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	repo := NewPostgresUserRepository(testPool)
	user := createTestUser(t, repo, "ada")

	if err := repo.SetRefreshToken(ctx, user.ID, "issued-token"); err != nil {
		t.Fatalf("set refresh token: %v", err)
	}

	fetched, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if fetched.RefreshToken != "issued-token" {
		t.Fatalf("expected stored refresh token, got %q", fetched.RefreshToken)
	}

	// Clearing stores NULL, which reads back as the empty string.
	if err := repo.SetRefreshToken(ctx, user.ID, ""); err != nil {
		t.Fatalf("clear refresh token: %v", err)
	}
	fetched, err = repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id after clear: %v", err)
	}
	if fetched.RefreshToken != "" {
		t.Fatalf("expected cleared refresh token, got %q", fetched.RefreshToken)
	}

	if err := repo.SetRefreshToken(ctx, uuid.NewString(), "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestPostgresUserRepository_ChannelProfile(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	subRepo := NewPostgresSubscriptionRepository(testPool)

	channel := createTestUser(t, userRepo, "channel")
	viewer := createTestUser(t, userRepo, "viewer")
	other := createTestUser(t, userRepo, "other")

	for _, subscriber := range []models.User{viewer, other} {
		sub := models.Subscription{
			ID:           uuid.NewString(),
			SubscriberID: subscriber.ID,
			ChannelID:    channel.ID,
			CreatedAt:    time.Now().UTC(),
		}
		if err := subRepo.Create(ctx, sub); err != nil {
			t.Fatalf("create subscription: %v", err)
		}
	}

	profile, err := userRepo.ChannelProfile(ctx, channel.Username, viewer.ID)
	if err != nil {
		t.Fatalf("channel profile: %v", err)
	}
	if profile.SubscriberCount != 2 {
		t.Fatalf("expected 2 subscribers, got %d", profile.SubscriberCount)
	}
	if !profile.IsSubscribed {
		t.Fatalf("expected viewer to be marked subscribed")
	}

	profile, err = userRepo.ChannelProfile(ctx, channel.Username, channel.ID)
	if err != nil {
		t.Fatalf("channel profile for non-subscriber: %v", err)
	}
	if profile.IsSubscribed {
		t.Fatalf("expected non-subscriber viewer to not be marked subscribed")
	}

	if _, err := userRepo.ChannelProfile(ctx, "ghost", viewer.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown channel, got %v", err)
	}
}

func TestPostgresVideoRepository_ListAndDetail(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	videoRepo := NewPostgresVideoRepository(testPool)
	commentRepo := NewPostgresCommentRepository(testPool)
	likeRepo := NewPostgresLikeRepository(testPool)

	owner := createTestUser(t, userRepo, "owner")
	viewer := createTestUser(t, userRepo, "viewer")

	base := time.Now().UTC().Add(-time.Hour)
	published := createTestVideo(t, videoRepo, owner.ID, "Alpha trip report", base)
	hidden := createTestVideo(t, videoRepo, owner.ID, "Hidden cut", base.Add(time.Minute))
	if err := videoRepo.SetPublished(ctx, hidden.ID, false); err != nil {
		t.Fatalf("unpublish video: %v", err)
	}

	like := models.Like{ID: uuid.NewString(), VideoID: published.ID, LikedBy: viewer.ID, CreatedAt: time.Now().UTC()}
	if err := likeRepo.Create(ctx, like); err != nil {
		t.Fatalf("create like: %v", err)
	}
	comment := models.Comment{
		ID: uuid.NewString(), VideoID: published.ID, OwnerID: viewer.ID,
		Content: "great", CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	if err := commentRepo.Create(ctx, comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	listed, err := videoRepo.List(ctx, ListVideosParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list videos: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != published.ID {
		t.Fatalf("expected only the published video, got %+v", listed)
	}
	if listed[0].Owner.Username != owner.Username {
		t.Fatalf("expected owner projection, got %+v", listed[0].Owner)
	}

	matched, err := videoRepo.List(ctx, ListVideosParams{Query: "alpha", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("search videos: %v", err)
	}
	if len(matched) != 1 {
		t.Fatalf("expected case-insensitive title match, got %d results", len(matched))
	}

	owned, err := videoRepo.List(ctx, ListVideosParams{OwnerID: owner.ID, Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list videos by owner: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != published.ID {
		t.Fatalf("expected the owner's published video, got %+v", owned)
	}

	foreign, err := videoRepo.List(ctx, ListVideosParams{OwnerID: viewer.ID, Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list videos by non-uploader: %v", err)
	}
	if len(foreign) != 0 {
		t.Fatalf("expected no videos for non-uploader, got %d", len(foreign))
	}

	none, err := videoRepo.List(ctx, ListVideosParams{Query: "zzz", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("search videos without match: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %d", len(none))
	}

	detail, err := videoRepo.Detail(ctx, published.ID)
	if err != nil {
		t.Fatalf("video detail: %v", err)
	}
	if detail.LikeCount != 1 || detail.CommentCount != 1 {
		t.Fatalf("expected counts 1/1, got %d/%d", detail.LikeCount, detail.CommentCount)
	}
	if detail.Owner.ID != owner.ID {
		t.Fatalf("expected owner projection on detail")
	}
}

func TestPostgresVideoRepository_IncrementViews(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	videoRepo := NewPostgresVideoRepository(testPool)

	owner := createTestUser(t, userRepo, "owner")
	video := createTestVideo(t, videoRepo, owner.ID, "Counted", time.Now().UTC())

	for i := 0; i < 3; i++ {
		if err := videoRepo.IncrementViews(ctx, video.ID); err != nil {
			t.Fatalf("increment views: %v", err)
		}
	}

	fetched, err := videoRepo.FindByID(ctx, video.ID)
	if err != nil {
		t.Fatalf("find video: %v", err)
	}
	if fetched.Views != 3 {
		t.Fatalf("expected 3 views, got %d", fetched.Views)
	}

	if err := videoRepo.IncrementViews(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown video, got %v", err)
	}
}

func TestPostgresLikeRepository_ToggleSemantics(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	videoRepo := NewPostgresVideoRepository(testPool)
	commentRepo := NewPostgresCommentRepository(testPool)
	likeRepo := NewPostgresLikeRepository(testPool)

	owner := createTestUser(t, userRepo, "owner")
	fan := createTestUser(t, userRepo, "fan")
	video := createTestVideo(t, videoRepo, owner.ID, "Likeable", time.Now().UTC())

	target := LikeTarget{VideoID: video.ID, LikedBy: fan.ID}

	if _, err := likeRepo.Find(ctx, target); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first like, got %v", err)
	}

	like := models.Like{ID: uuid.NewString(), VideoID: video.ID, LikedBy: fan.ID, CreatedAt: time.Now().UTC()}
	if err := likeRepo.Create(ctx, like); err != nil {
		t.Fatalf("create like: %v", err)
	}

	// The (user, target) pair is unique at the database level.
	dup := models.Like{ID: uuid.NewString(), VideoID: video.ID, LikedBy: fan.ID, CreatedAt: time.Now().UTC()}
	if err := likeRepo.Create(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate like, got %v", err)
	}

	found, err := likeRepo.Find(ctx, target)
	if err != nil {
		t.Fatalf("find like: %v", err)
	}
	if found.ID != like.ID {
		t.Fatalf("expected like %s got %s", like.ID, found.ID)
	}

	liked, err := likeRepo.LikedVideos(ctx, fan.ID)
	if err != nil {
		t.Fatalf("liked videos: %v", err)
	}
	if len(liked) != 1 || liked[0].ID != video.ID {
		t.Fatalf("expected one liked video, got %+v", liked)
	}

	if err := likeRepo.Delete(ctx, like.ID); err != nil {
		t.Fatalf("delete like: %v", err)
	}
	if _, err := likeRepo.Find(ctx, target); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	ghost := models.Like{ID: uuid.NewString(), VideoID: uuid.NewString(), LikedBy: fan.ID, CreatedAt: time.Now().UTC()}
	if err := likeRepo.Create(ctx, ghost); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound liking a missing video, got %v", err)
	}

	comment := models.Comment{
		ID: uuid.NewString(), VideoID: video.ID, OwnerID: owner.ID,
		Content: "nice", CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	if err := commentRepo.Create(ctx, comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	commentLike := models.Like{ID: uuid.NewString(), CommentID: comment.ID, LikedBy: fan.ID, CreatedAt: time.Now().UTC()}
	if err := likeRepo.Create(ctx, commentLike); err != nil {
		t.Fatalf("create comment like: %v", err)
	}

	found, err = likeRepo.Find(ctx, LikeTarget{CommentID: comment.ID, LikedBy: fan.ID})
	if err != nil {
		t.Fatalf("find comment like: %v", err)
	}
	if found.CommentID != comment.ID || found.VideoID != "" {
		t.Fatalf("expected comment-target like, got %+v", found)
	}
}

func TestPostgresCommentRepository_Pagination(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	videoRepo := NewPostgresVideoRepository(testPool)
	commentRepo := NewPostgresCommentRepository(testPool)

	owner := createTestUser(t, userRepo, "owner")
	video := createTestVideo(t, videoRepo, owner.ID, "Discussed", time.Now().UTC())

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		comment := models.Comment{
			ID:        uuid.NewString(),
			VideoID:   video.ID,
			OwnerID:   owner.ID,
			Content:   fmt.Sprintf("comment %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := commentRepo.Create(ctx, comment); err != nil {
			t.Fatalf("create comment %d: %v", i, err)
		}
	}

	page, err := commentRepo.ListForVideo(ctx, video.ID, 2, 5)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(page) != 5 {
		t.Fatalf("expected page of 5, got %d", len(page))
	}
	// Newest-first: page 2 of 12 starts at the 6th newest, "comment 6".
	if page[0].Content != "comment 6" {
		t.Fatalf("expected page to start at comment 6, got %q", page[0].Content)
	}

	beyond, err := commentRepo.ListForVideo(ctx, video.ID, 99, 5)
	if err != nil {
		t.Fatalf("list beyond end: %v", err)
	}
	if len(beyond) != 0 {
		t.Fatalf("expected empty page beyond end, got %d", len(beyond))
	}
}

func TestPostgresSubscriptionRepository_UniqueAndListings(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	subRepo := NewPostgresSubscriptionRepository(testPool)

	channel := createTestUser(t, userRepo, "channel")
	fan := createTestUser(t, userRepo, "fan")

	sub := models.Subscription{ID: uuid.NewString(), SubscriberID: fan.ID, ChannelID: channel.ID, CreatedAt: time.Now().UTC()}
	if err := subRepo.Create(ctx, sub); err != nil {
		t.Fatalf("create subscription: %v", err)
	}

	dup := models.Subscription{ID: uuid.NewString(), SubscriberID: fan.ID, ChannelID: channel.ID, CreatedAt: time.Now().UTC()}
	if err := subRepo.Create(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate subscription, got %v", err)
	}

	// The handler rejects self-subscription up front; the schema CHECK backs it up.
	self := models.Subscription{ID: uuid.NewString(), SubscriberID: fan.ID, ChannelID: fan.ID, CreatedAt: time.Now().UTC()}
	if err := subRepo.Create(ctx, self); err == nil {
		t.Fatal("expected self-subscription to violate the schema constraint")
	}

	subscribers, err := subRepo.Subscribers(ctx, channel.ID)
	if err != nil {
		t.Fatalf("list subscribers: %v", err)
	}
	if len(subscribers) != 1 || subscribers[0].ID != fan.ID {
		t.Fatalf("expected fan as sole subscriber, got %+v", subscribers)
	}

	channels, err := subRepo.Channels(ctx, fan.ID)
	if err != nil {
		t.Fatalf("list channels: %v", err)
	}
	if len(channels) != 1 || channels[0].ID != channel.ID {
		t.Fatalf("expected channel as sole subscription, got %+v", channels)
	}

	if err := subRepo.Delete(ctx, sub.ID); err != nil {
		t.Fatalf("delete subscription: %v", err)
	}
	if _, err := subRepo.Find(ctx, fan.ID, channel.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPostgresPlaylistRepository_Membership(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	videoRepo := NewPostgresVideoRepository(testPool)
	playlistRepo := NewPostgresPlaylistRepository(testPool)

	owner := createTestUser(t, userRepo, "owner")
	first := createTestVideo(t, videoRepo, owner.ID, "First", time.Now().UTC().Add(-time.Minute))
	second := createTestVideo(t, videoRepo, owner.ID, "Second", time.Now().UTC())

	playlist := models.Playlist{
		ID: uuid.NewString(), OwnerID: owner.ID, Name: "Mix", Description: "Favorites",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	if err := playlistRepo.Create(ctx, playlist); err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	if err := playlistRepo.AddVideo(ctx, playlist.ID, first.ID); err != nil {
		t.Fatalf("add first video: %v", err)
	}
	if err := playlistRepo.AddVideo(ctx, playlist.ID, second.ID); err != nil {
		t.Fatalf("add second video: %v", err)
	}
	// Re-adding an existing member is a no-op.
	if err := playlistRepo.AddVideo(ctx, playlist.ID, first.ID); err != nil {
		t.Fatalf("repeat add: %v", err)
	}
	if err := playlistRepo.AddVideo(ctx, playlist.ID, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound adding a missing video, got %v", err)
	}

	detail, err := playlistRepo.Detail(ctx, playlist.ID)
	if err != nil {
		t.Fatalf("playlist detail: %v", err)
	}
	if len(detail.Videos) != 2 {
		t.Fatalf("expected 2 member videos, got %d", len(detail.Videos))
	}
	if detail.Videos[0].ID != first.ID {
		t.Fatalf("expected insertion order, got %+v", detail.Videos)
	}

	if err := playlistRepo.RemoveVideo(ctx, playlist.ID, first.ID); err != nil {
		t.Fatalf("remove video: %v", err)
	}
	detail, err = playlistRepo.Detail(ctx, playlist.ID)
	if err != nil {
		t.Fatalf("playlist detail after removal: %v", err)
	}
	if len(detail.Videos) != 1 || detail.Videos[0].ID != second.ID {
		t.Fatalf("expected only the second video, got %+v", detail.Videos)
	}
}

func TestPostgresStatsRepository_ChannelStats(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	videoRepo := NewPostgresVideoRepository(testPool)
	likeRepo := NewPostgresLikeRepository(testPool)
	subRepo := NewPostgresSubscriptionRepository(testPool)
	statsRepo := NewPostgresStatsRepository(testPool)

	channel := createTestUser(t, userRepo, "channel")
	fan := createTestUser(t, userRepo, "fan")

	first := createTestVideo(t, videoRepo, channel.ID, "First", time.Now().UTC().Add(-time.Minute))
	second := createTestVideo(t, videoRepo, channel.ID, "Second", time.Now().UTC())

	if err := videoRepo.IncrementViews(ctx, first.ID); err != nil {
		t.Fatalf("increment views: %v", err)
	}
	if err := videoRepo.IncrementViews(ctx, first.ID); err != nil {
		t.Fatalf("increment views: %v", err)
	}
	if err := videoRepo.IncrementViews(ctx, second.ID); err != nil {
		t.Fatalf("increment views: %v", err)
	}

	like := models.Like{ID: uuid.NewString(), VideoID: first.ID, LikedBy: fan.ID, CreatedAt: time.Now().UTC()}
	if err := likeRepo.Create(ctx, like); err != nil {
		t.Fatalf("create like: %v", err)
	}
	sub := models.Subscription{ID: uuid.NewString(), SubscriberID: fan.ID, ChannelID: channel.ID, CreatedAt: time.Now().UTC()}
	if err := subRepo.Create(ctx, sub); err != nil {
		t.Fatalf("create subscription: %v", err)
	}

	stats, err := statsRepo.ChannelStats(ctx, channel.ID)
	if err != nil {
		t.Fatalf("channel stats: %v", err)
	}
	if stats.TotalVideos != 2 || stats.TotalViews != 3 || stats.TotalLikes != 1 || stats.TotalSubscribers != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	// A channel with no uploads reports zeros; only an unknown id is ErrNotFound.
	empty, err := statsRepo.ChannelStats(ctx, fan.ID)
	if err != nil {
		t.Fatalf("channel stats without videos: %v", err)
	}
	if empty.TotalVideos != 0 || empty.TotalViews != 0 || empty.TotalLikes != 0 || empty.TotalSubscribers != 0 {
		t.Fatalf("expected zeroed stats, got %+v", empty)
	}

	if _, err := statsRepo.ChannelStats(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown channel, got %v", err)
	}

	videos, err := statsRepo.ChannelVideos(ctx, channel.ID)
	if err != nil {
		t.Fatalf("channel videos: %v", err)
	}
	if len(videos) != 2 || videos[0].ID != second.ID {
		t.Fatalf("expected newest-first channel videos, got %+v", videos)
	}
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrationsDir := filepath.Join("..", "..", "migrations")
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		contents, err := os.ReadFile(filepath.Join(migrationsDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		if _, err := pool.Exec(ctx, string(contents)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func resetDatabase(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	conn, err := testPool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire connection: %v", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "TRUNCATE TABLE playlist_videos, playlists, subscriptions, likes, comments, tweets, videos, users CASCADE"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func createTestUser(t *testing.T, repo *PostgresUserRepository, username string) models.User {
	t.Helper()
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Test " + username,
		PasswordHash: "password-hash",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func createTestVideo(t *testing.T, repo *PostgresVideoRepository, ownerID, title string, createdAt time.Time) models.Video {
	t.Helper()
	video := models.Video{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		VideoURL:     "https://media.example.com/videos/clip.mp4",
		ThumbnailURL: "https://media.example.com/thumbnails/clip.png",
		Title:        title,
		Description:  "description",
		Duration:     60,
		IsPublished:  true,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	if err := repo.Create(context.Background(), video); err != nil {
		t.Fatalf("create test video: %v", err)
	}
	return video
}
