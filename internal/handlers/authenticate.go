package handlers

import (
	"net/http"
	"strings"

	"github.com/clipstream/backend/internal/auth"
	"github.com/clipstream/backend/internal/logging"
	"github.com/clipstream/backend/internal/models"
)

// Authenticator guards routes that require a signed-in user. It accepts the
// access token from the accessToken cookie or, failing that, an Authorization
// bearer header, and stores the resolved account on the request context.
type Authenticator struct {
	Users  UserStore
	Tokens TokenManager
}

// Require wraps a handler, rejecting requests without a valid access token.
func (a Authenticator) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.FromContext(ctx)

		token := accessTokenFrom(r)
		if token == "" {
			respondError(ctx, w, http.StatusUnauthorized, "unauthorized request")
			return
		}

		userID, err := a.Tokens.VerifyAccessToken(token)
		if err != nil {
			logger.Warn("access token rejected", "error", err)
			respondError(ctx, w, http.StatusUnauthorized, "invalid access token")
			return
		}

		user, err := a.Users.FindByID(ctx, userID)
		if err != nil {
			logger.Warn("access token references unknown user", "userId", userID, "error", err)
			respondError(ctx, w, http.StatusUnauthorized, "invalid access token")
			return
		}

		next(w, r.WithContext(auth.WithUser(ctx, user.Public())))
	}
}

func accessTokenFrom(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// requireUser fetches the authenticated account placed on the context by the
// gate, writing a 401 when it is absent.
func requireUser(w http.ResponseWriter, r *http.Request) (models.PublicUser, bool) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(r.Context(), w, http.StatusUnauthorized, "unauthorized request")
	}
	return user, ok
}
