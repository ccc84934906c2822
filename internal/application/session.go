package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jortega/storefront/internal/domain/entity"
	"github.com/jortega/storefront/pkg/helpers"
)

// ErrNoSession means the token was rejected or its session is gone.
var ErrNoSession = errors.New("no active session")

// SessionIssuer exchanges verified credentials for a token pair and
// resolves tokens back to identities. Session state lives in a Redis
// hash keyed by user id with a rotating session id; expiry is purely
// time-based (JWT exp plus the Redis TTL), there is no revocation list
// beyond explicit sign-out. With a nil Redis client the issuer degrades
// to signed stateless tokens.
type SessionIssuer struct {
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewSessionIssuer(jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *SessionIssuer {
	return &SessionIssuer{JWT: jwt, Redis: rdb, Logger: logger}
}

// Identity is the resolved owner of a session.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// Issue mints a token pair for u and records the session. Callers must
// only invoke this after password verification has succeeded.
func (s *SessionIssuer) Issue(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.mint(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.FullName,
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, s.JWT.RefreshTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("key", key).Error("session store failed")
			}
			return TokenPair{}, err
		}
	}
	return pair, nil
}

// Resolve validates an access token and returns the identity behind it.
// The token's session id must match the live session record.
func (s *SessionIssuer) Resolve(ctx context.Context, accessToken string) (*Identity, error) {
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return nil, ErrNoSession
	}
	if s.Redis == nil {
		return &Identity{UserID: claims.UserID}, nil
	}
	data, err := s.Redis.HGetAll(ctx, sessionKey(claims.UserID)).Result()
	if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
		return nil, ErrNoSession
	}
	return &Identity{UserID: data["user_id"], Email: data["email"], Name: data["name"]}, nil
}

// Refresh rotates the session id and mints a fresh pair from a valid
// refresh token. Returns the owning user id alongside the pair.
func (s *SessionIssuer) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrNoSession
	}
	if s.Redis != nil {
		data, err := s.Redis.HGetAll(ctx, sessionKey(claims.UserID)).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrNoSession
		}
	}

	sid := uuid.NewString()
	pair, err := s.mint(claims.UserID, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	if s.Redis != nil {
		key := sessionKey(claims.UserID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sid,
			"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, s.JWT.RefreshTTL)
		// The new pair carries the new sid; if the rotation write fails
		// the pair would never resolve. Fail the refresh instead so the
		// caller keeps its still-valid old tokens.
		if _, err := pipe.Exec(ctx); err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("key", key).Error("session rotation failed")
			}
			return TokenPair{}, "", err
		}
	}
	return pair, claims.UserID, nil
}

// Revoke destroys the user's session; outstanding tokens stop
// resolving immediately.
func (s *SessionIssuer) Revoke(ctx context.Context, userID string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, sessionKey(userID)).Err()
}

func (s *SessionIssuer) mint(userID, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}
