package models

import "time"

// User represents an account (and therefore a channel) on the platform.
// PasswordHash and RefreshToken are credentials and must never reach clients;
// use Public before serializing.
type User struct {
	ID            string
	Username      string
	Email         string
	FullName      string
	AvatarURL     string
	CoverImageURL string
	PasswordHash  string
	RefreshToken  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Public strips credential fields for client responses.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
	}
}

// PublicUser is the client-visible view of an account.
type PublicUser struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Owner is the minimal owner projection embedded in composed views.
type Owner struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatar"`
}

// Video is an uploaded video owned by a single user.
type Video struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	VideoURL     string    `json:"videoFile"`
	ThumbnailURL string    `json:"thumbnail"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// VideoSummary joins a video to its owner projection for listings.
type VideoSummary struct {
	Video
	Owner Owner `json:"owner"`
}

// VideoDetail is the single-video composed view.
type VideoDetail struct {
	Video
	Owner        Owner `json:"owner"`
	LikeCount    int64 `json:"likeCount"`
	CommentCount int64 `json:"commentCount"`
}

// Tweet is a short text update posted by a user.
type Tweet struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TweetDetail joins a tweet to its owner projection and like count.
type TweetDetail struct {
	Tweet
	Owner     Owner `json:"owner"`
	LikeCount int64 `json:"likeCount"`
}

// Comment is attached to exactly one video.
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"videoId"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentDetail joins a comment to its owner projection and like count.
type CommentDetail struct {
	Comment
	Owner     Owner `json:"owner"`
	LikeCount int64 `json:"likeCount"`
}

// Like records that a user liked exactly one of a video, comment, or tweet.
// Its existence encodes the "on" state; at most one per (user, target) pair.
type Like struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"videoId,omitempty"`
	CommentID string    `json:"commentId,omitempty"`
	TweetID   string    `json:"tweetId,omitempty"`
	LikedBy   string    `json:"likedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Subscription links a subscriber to a channel, at most one per pair.
type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriberId"`
	ChannelID    string    `json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ChannelProfile is the composed channel page view for a viewer.
type ChannelProfile struct {
	PublicUser
	SubscriberCount   int64 `json:"subscriberCount"`
	SubscribedToCount int64 `json:"subscribedToCount"`
	IsSubscribed      bool  `json:"isSubscribed"`
}

// ChannelStats aggregates a channel's footprint for the dashboard.
type ChannelStats struct {
	ChannelID        string `json:"channelId"`
	TotalVideos      int64  `json:"totalVideos"`
	TotalViews       int64  `json:"totalViews"`
	TotalLikes       int64  `json:"totalLikes"`
	TotalSubscribers int64  `json:"totalSubscribers"`
}

// Playlist is a named collection of videos curated by its owner.
type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistSummary joins a playlist to its owner projection.
type PlaylistSummary struct {
	Playlist
	Owner Owner `json:"owner"`
}

// PlaylistDetail additionally carries the playlist's videos.
type PlaylistDetail struct {
	Playlist
	Owner  Owner   `json:"owner"`
	Videos []Video `json:"videos"`
}

// TokenPair groups the signed credentials issued on login and refresh.
type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}
