package auth

import (
	"context"

	"github.com/clipstream/backend/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// WithUser attaches the authenticated user's public view to the context.
func WithUser(ctx context.Context, user models.PublicUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom retrieves the authenticated user set by the access gate.
func UserFrom(ctx context.Context) (models.PublicUser, bool) {
	if ctx == nil {
		return models.PublicUser{}, false
	}
	user, ok := ctx.Value(userKey).(models.PublicUser)
	return user, ok
}
