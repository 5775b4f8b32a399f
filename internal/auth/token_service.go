package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/clipstream/backend/internal/models"
)

var (
	// ErrTokenInvalid indicates a malformed token or a bad signature.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired indicates the token's signature is valid but its lifetime has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenStale indicates a refresh token that verified cryptographically but no
	// longer matches the value stored for the user: it was rotated out and its reuse
	// must be treated as a hard authentication failure.
	ErrTokenStale = errors.New("token stale")
)

// RefreshTokenStore persists the single valid refresh token per user. Overwriting the
// stored value is the sole revocation mechanism for previously issued refresh tokens.
type RefreshTokenStore interface {
	SetRefreshToken(ctx context.Context, userID, token string) error
}

// TokenService issues and verifies the two classes of signed, time-bounded tokens:
// short-lived access tokens and long-lived rotating refresh tokens.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration

	store RefreshTokenStore

	// NowFunc overrides the time source in tests.
	NowFunc func() time.Time
}

// NewTokenService validates the signing configuration up front; missing secrets are a
// process-level misconfiguration, not a per-request failure.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, store RefreshTokenStore) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("auth: access and refresh signing secrets must be configured")
	}
	if store == nil {
		return nil, errors.New("auth: refresh token store must not be nil")
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		store:         store,
	}, nil
}

// IssueAccessToken signs a short-lived access token for the user.
func (s *TokenService) IssueAccessToken(userID string) (string, error) {
	return s.sign(userID, s.accessSecret, s.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the user. The token only
// becomes Active once Rotate persists it as the user's stored value.
func (s *TokenService) IssueRefreshToken(userID string) (string, error) {
	return s.sign(userID, s.refreshSecret, s.refreshTTL)
}

// Rotate issues a fresh token pair and persists the new refresh token onto the user
// record, superseding any previously stored value. Concurrent rotations for the same
// user resolve last-write-wins; the loser's tokens fail the stale check on next use.
func (s *TokenService) Rotate(ctx context.Context, userID string) (models.TokenPair, error) {
	access, err := s.IssueAccessToken(userID)
	if err != nil {
		return models.TokenPair{}, err
	}

	refresh, err := s.IssueRefreshToken(userID)
	if err != nil {
		return models.TokenPair{}, err
	}

	if err := s.store.SetRefreshToken(ctx, userID, refresh); err != nil {
		return models.TokenPair{}, fmt.Errorf("persist refresh token: %w", err)
	}

	now := s.now()
	return models.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  now.Add(s.accessTTL),
		RefreshToken:     refresh,
		RefreshExpiresAt: now.Add(s.refreshTTL),
	}, nil
}

// VerifyAccessToken checks signature and lifetime, returning the subject user id.
func (s *TokenService) VerifyAccessToken(token string) (string, error) {
	return s.verify(token, s.accessSecret)
}

// DecodeRefreshToken checks the refresh token's signature and lifetime only, without
// consulting stored state. Callers use the returned user id to load the stored value
// for the full VerifyRefreshToken check.
func (s *TokenService) DecodeRefreshToken(token string) (string, error) {
	return s.verify(token, s.refreshSecret)
}

// VerifyRefreshToken performs the complete refresh check: signature, lifetime, and
// string equality with the value currently stored for the user. A mismatch means the
// token was superseded by a rotation and yields ErrTokenStale.
func (s *TokenService) VerifyRefreshToken(token, stored string) (string, error) {
	userID, err := s.verify(token, s.refreshSecret)
	if err != nil {
		return "", err
	}
	if stored == "" || token != stored {
		return "", ErrTokenStale
	}
	return userID, nil
}

func (s *TokenService) sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("auth: user id must be provided")
	}

	// The jti keeps every issuance distinct: claims carry second-precision
	// timestamps, so without it two rotations inside one second would mint
	// identical refresh tokens and the superseded one would still match the
	// stored value.
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) verify(token string, secret []byte) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, ErrTokenInvalid
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

func (s *TokenService) now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc().UTC()
	}
	return time.Now().UTC()
}
