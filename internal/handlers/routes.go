package handlers

import "net/http"

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users         UserStore
	Videos        VideoStore
	Tweets        TweetStore
	Comments      CommentStore
	Likes         LikeStore
	Subscriptions SubscriptionStore
	Playlists     PlaylistStore
	Stats         StatsStore
	Tokens        TokenManager
	Media         MediaStorage
	AuthLimiter   RateLimiter
	SecureCookies bool
}

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	gate := Authenticator{Users: deps.Users, Tokens: deps.Tokens}

	health := HealthHandler{}
	users := UserHandler{
		Users:         deps.Users,
		Tokens:        deps.Tokens,
		Media:         deps.Media,
		Limiter:       deps.AuthLimiter,
		SecureCookies: deps.SecureCookies,
	}
	videos := VideoHandler{Videos: deps.Videos, Media: deps.Media}
	tweets := TweetHandler{Tweets: deps.Tweets}
	comments := CommentHandler{Comments: deps.Comments}
	likes := LikeHandler{Likes: deps.Likes}
	subscriptions := SubscriptionHandler{Subscriptions: deps.Subscriptions}
	playlists := PlaylistHandler{Playlists: deps.Playlists}
	dashboard := DashboardHandler{Stats: deps.Stats}

	mux.HandleFunc("GET /api/v1/healthcheck", health.Handle)

	mux.HandleFunc("POST /api/v1/users/register", users.Register)
	mux.HandleFunc("POST /api/v1/users/login", users.Login)
	mux.HandleFunc("POST /api/v1/users/refresh-token", users.Refresh)
	mux.HandleFunc("POST /api/v1/users/logout", gate.Require(users.Logout))
	mux.HandleFunc("POST /api/v1/users/change-password", gate.Require(users.ChangePassword))
	mux.HandleFunc("GET /api/v1/users/current-user", gate.Require(users.CurrentUser))
	mux.HandleFunc("PATCH /api/v1/users/update-account", gate.Require(users.UpdateAccount))
	mux.HandleFunc("PATCH /api/v1/users/avatar", gate.Require(users.UpdateAvatar))
	mux.HandleFunc("PATCH /api/v1/users/cover-image", gate.Require(users.UpdateCoverImage))
	mux.HandleFunc("GET /api/v1/users/c/{username}", gate.Require(users.ChannelProfile))

	mux.HandleFunc("GET /api/v1/videos", gate.Require(videos.List))
	mux.HandleFunc("POST /api/v1/videos", gate.Require(videos.Publish))
	mux.HandleFunc("GET /api/v1/videos/{videoId}", gate.Require(videos.Get))
	mux.HandleFunc("PATCH /api/v1/videos/{videoId}", gate.Require(videos.Update))
	mux.HandleFunc("DELETE /api/v1/videos/{videoId}", gate.Require(videos.Delete))
	mux.HandleFunc("PATCH /api/v1/videos/toggle-publish/{videoId}", gate.Require(videos.TogglePublish))

	mux.HandleFunc("POST /api/v1/tweets", gate.Require(tweets.Create))
	mux.HandleFunc("GET /api/v1/tweets/user/{userId}", gate.Require(tweets.ListForUser))
	mux.HandleFunc("PATCH /api/v1/tweets/{tweetId}", gate.Require(tweets.Update))
	mux.HandleFunc("DELETE /api/v1/tweets/{tweetId}", gate.Require(tweets.Delete))

	mux.HandleFunc("GET /api/v1/comments/video/{videoId}", gate.Require(comments.ListForVideo))
	mux.HandleFunc("POST /api/v1/comments/video/{videoId}", gate.Require(comments.Create))
	mux.HandleFunc("PATCH /api/v1/comments/{commentId}", gate.Require(comments.Update))
	mux.HandleFunc("DELETE /api/v1/comments/{commentId}", gate.Require(comments.Delete))

	mux.HandleFunc("POST /api/v1/likes/toggle/v/{videoId}", gate.Require(likes.ToggleVideo))
	mux.HandleFunc("POST /api/v1/likes/toggle/c/{commentId}", gate.Require(likes.ToggleComment))
	mux.HandleFunc("POST /api/v1/likes/toggle/t/{tweetId}", gate.Require(likes.ToggleTweet))
	mux.HandleFunc("GET /api/v1/likes/videos", gate.Require(likes.LikedVideos))

	mux.HandleFunc("POST /api/v1/subscriptions/c/{channelId}", gate.Require(subscriptions.Toggle))
	mux.HandleFunc("GET /api/v1/subscriptions/c/{channelId}/subscribers", gate.Require(subscriptions.Subscribers))
	mux.HandleFunc("GET /api/v1/subscriptions/u/{subscriberId}", gate.Require(subscriptions.Channels))

	mux.HandleFunc("POST /api/v1/playlists", gate.Require(playlists.Create))
	mux.HandleFunc("GET /api/v1/playlists/user/{userId}", gate.Require(playlists.ListForUser))
	mux.HandleFunc("GET /api/v1/playlists/{playlistId}", gate.Require(playlists.Get))
	mux.HandleFunc("PATCH /api/v1/playlists/add/{playlistId}/{videoId}", gate.Require(playlists.AddVideo))
	mux.HandleFunc("PATCH /api/v1/playlists/remove/{playlistId}/{videoId}", gate.Require(playlists.RemoveVideo))
	mux.HandleFunc("PATCH /api/v1/playlists/{playlistId}", gate.Require(playlists.Update))
	mux.HandleFunc("DELETE /api/v1/playlists/{playlistId}", gate.Require(playlists.Delete))

	mux.HandleFunc("GET /api/v1/dashboard/stats/{channelId}", gate.Require(dashboard.ChannelStats))
	mux.HandleFunc("GET /api/v1/dashboard/videos/{channelId}", gate.Require(dashboard.ChannelVideos))
}
