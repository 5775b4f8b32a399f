package repositories

import (
	"context"

	"github.com/clipstream/backend/internal/models"
)

// UserRepository defines the data access contract for user accounts, including the
// rotating refresh-token field and the composed channel profile view.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (models.User, error)
	UpdateAccount(ctx context.Context, id, fullName, email string) (models.User, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string) (models.User, error)
	UpdateCoverImage(ctx context.Context, id, coverImageURL string) (models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetRefreshToken(ctx context.Context, id, token string) error
	ChannelProfile(ctx context.Context, username, viewerID string) (models.ChannelProfile, error)
}

// ListVideosParams filters and pages the public video listing.
type ListVideosParams struct {
	Query   string
	SortBy  string
	SortAsc bool
	OwnerID string
	Page    int
	Limit   int
}

// VideoRepository defines persistence and composed read models for videos.
type VideoRepository interface {
	Create(ctx context.Context, video models.Video) error
	FindByID(ctx context.Context, id string) (models.Video, error)
	Detail(ctx context.Context, id string) (models.VideoDetail, error)
	List(ctx context.Context, params ListVideosParams) ([]models.VideoSummary, error)
	Update(ctx context.Context, id, title, description string) (models.Video, error)
	Delete(ctx context.Context, id string) error
	SetPublished(ctx context.Context, id string, published bool) error
	IncrementViews(ctx context.Context, id string) error
}

// TweetRepository defines persistence and the composed per-user tweet listing.
type TweetRepository interface {
	Create(ctx context.Context, tweet models.Tweet) error
	FindByID(ctx context.Context, id string) (models.Tweet, error)
	ListForUser(ctx context.Context, userID string) ([]models.TweetDetail, error)
	Update(ctx context.Context, id, content string) (models.Tweet, error)
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines persistence and the paginated per-video comment listing.
type CommentRepository interface {
	Create(ctx context.Context, comment models.Comment) error
	FindByID(ctx context.Context, id string) (models.Comment, error)
	ListForVideo(ctx context.Context, videoID string, page, limit int) ([]models.CommentDetail, error)
	Update(ctx context.Context, id, content string) (models.Comment, error)
	Delete(ctx context.Context, id string) error
}

// LikeTarget identifies the (user, target) pair of a toggle; exactly one of the
// target ids is non-empty.
type LikeTarget struct {
	VideoID   string
	CommentID string
	TweetID   string
	LikedBy   string
}

// LikeRepository defines the toggle join-entity and the liked-videos read model.
type LikeRepository interface {
	Find(ctx context.Context, target LikeTarget) (models.Like, error)
	Create(ctx context.Context, like models.Like) error
	Delete(ctx context.Context, id string) error
	LikedVideos(ctx context.Context, userID string) ([]models.VideoSummary, error)
}

// SubscriptionRepository defines the subscription toggle and its listings.
type SubscriptionRepository interface {
	Find(ctx context.Context, subscriberID, channelID string) (models.Subscription, error)
	Create(ctx context.Context, sub models.Subscription) error
	Delete(ctx context.Context, id string) error
	Subscribers(ctx context.Context, channelID string) ([]models.Owner, error)
	Channels(ctx context.Context, subscriberID string) ([]models.Owner, error)
}

// PlaylistRepository defines playlist persistence and composed views.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist models.Playlist) error
	FindByID(ctx context.Context, id string) (models.Playlist, error)
	Detail(ctx context.Context, id string) (models.PlaylistDetail, error)
	ListForUser(ctx context.Context, userID string) ([]models.PlaylistSummary, error)
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
	Update(ctx context.Context, id, name, description string) (models.Playlist, error)
	Delete(ctx context.Context, id string) error
}

// StatsRepository aggregates a channel's dashboard figures.
type StatsRepository interface {
	ChannelStats(ctx context.Context, channelID string) (models.ChannelStats, error)
	ChannelVideos(ctx context.Context, channelID string) ([]models.Video, error)
}
