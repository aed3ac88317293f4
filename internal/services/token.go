package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/linkup-social/linkup/internal/config"
	"github.com/linkup-social/linkup/internal/models"
)

const refreshKeyPrefix = "refresh:"

var (
	// ErrRefreshTokenInvalid covers every refresh-token rejection: unknown
	// token, expired row, bad signature, payload/row user mismatch, store
	// failure. Validation fails closed so callers have exactly one check.
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
	ErrAccessTokenInvalid  = errors.New("invalid access token")
)

// AuthPayload is the claim set carried by both token types.
type AuthPayload struct {
	UserID uuid.UUID
}

type authClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues, persists, rotates, and validates access/refresh token
// pairs. Refresh tokens are both signed and persisted: a revoked token fails
// the row lookup even with a valid signature, and a forged token fails the
// signature check even if a row matches.
type TokenService struct {
	db    DBConn
	redis RedisConn
	cfg   config.AuthConfig
}

func NewTokenService(db DBConn, redis RedisConn, cfg config.AuthConfig) *TokenService {
	return &TokenService{
		db:    db,
		redis: redis,
		cfg:   cfg,
	}
}

// GenerateTokens produces an access/refresh pair for the user. No side
// effects; persistence happens in SaveRefreshToken.
func (s *TokenService) GenerateTokens(userID uuid.UUID) (*models.TokenPair, error) {
	accessToken, err := s.signToken(userID, s.cfg.AccessTokenSecret, parseTTL(s.cfg.AccessTokenTTL))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refreshToken, err := s.signToken(userID, s.cfg.RefreshTokenSecret, parseTTL(s.cfg.RefreshTokenTTL))
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// SaveRefreshToken persists a refresh token as the user's only live one:
// prior rows are deleted first, so rotation implicitly revokes the previous
// token. The token hash is also cached in Redis for fast validation. Caching
// the new token is best effort, but evicting the old one is not: rotation
// fails if the prior cache entry cannot be removed, since the stale entry
// would keep the revoked token valid.
func (s *TokenService) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	if err := s.DeleteRefreshToken(ctx, userID); err != nil {
		return err
	}

	ttl := parseTTL(s.cfg.RefreshTokenTTL)
	expiresAt := time.Now().Add(ttl)

	_, err := s.db.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES ($1, $2, $3)`,
		userID, token, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("saving refresh token: %w", err)
	}

	// Cache is best effort; Postgres stays authoritative.
	_ = s.redis.Set(ctx, refreshKeyPrefix+hashToken(token), userID.String(), ttl)

	return nil
}

// ValidateRefreshToken checks a presented refresh token against both the
// store and its signature. Every negative case yields ErrRefreshTokenInvalid.
func (s *TokenService) ValidateRefreshToken(ctx context.Context, token string) (*AuthPayload, error) {
	// Redis fast path: the cached entry carries the owning user id and
	// expires with the token, but the signature is still verified.
	if cached, err := s.redis.Get(ctx, refreshKeyPrefix+hashToken(token)); err == nil {
		payload, err := verifyToken(token, s.cfg.RefreshTokenSecret)
		if err != nil || payload.UserID.String() != cached {
			return nil, ErrRefreshTokenInvalid
		}
		return payload, nil
	}

	var row models.RefreshToken
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, expires_at FROM refresh_tokens WHERE token = $1`,
		token,
	).Scan(&row.ID, &row.UserID, &row.ExpiresAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRefreshTokenInvalid
	}
	if err != nil {
		return nil, ErrRefreshTokenInvalid
	}

	if time.Now().After(row.ExpiresAt) {
		// Clean up the expired row
		_, _ = s.db.Exec(ctx, "DELETE FROM refresh_tokens WHERE id = $1", row.ID)
		return nil, ErrRefreshTokenInvalid
	}

	payload, err := verifyToken(token, s.cfg.RefreshTokenSecret)
	if err != nil {
		return nil, ErrRefreshTokenInvalid
	}

	if payload.UserID != row.UserID {
		return nil, ErrRefreshTokenInvalid
	}

	return payload, nil
}

// DeleteRefreshToken removes all refresh tokens for the user, in Redis and
// Postgres. A user with no tokens is a no-op. Cache eviction failures are
// fatal: a key left behind after the row is gone would let a revoked token
// keep validating through the cache fast path.
func (s *TokenService) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	rows, err := s.db.Query(ctx, "SELECT token FROM refresh_tokens WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("querying refresh tokens: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return fmt.Errorf("scanning refresh token: %w", err)
		}
		keys = append(keys, refreshKeyPrefix+hashToken(token))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating refresh tokens: %w", err)
	}

	if len(keys) > 0 {
		if err := s.redis.Del(ctx, keys...); err != nil {
			return fmt.Errorf("evicting cached refresh tokens: %w", err)
		}
	}

	_, err = s.db.Exec(ctx, "DELETE FROM refresh_tokens WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("deleting refresh tokens: %w", err)
	}

	return nil
}

// VerifyAccessToken validates a bearer access token and returns its payload.
func (s *TokenService) VerifyAccessToken(token string) (*AuthPayload, error) {
	payload, err := verifyToken(token, s.cfg.AccessTokenSecret)
	if err != nil {
		return nil, ErrAccessTokenInvalid
	}
	return payload, nil
}

func (s *TokenService) signToken(userID uuid.UUID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := authClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func verifyToken(tokenStr, secret string) (*AuthPayload, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &authClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*authClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("parsing user id claim: %w", err)
	}

	return &AuthPayload{UserID: userID}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// parseTTL reads an integer with a d|h|m suffix; anything else is treated as
// bare seconds.
func parseTTL(s string) time.Duration {
	if s == "" {
		return 0
	}

	unit := time.Second
	digits := s
	switch s[len(s)-1] {
	case 'd':
		unit = 24 * time.Hour
		digits = s[:len(s)-1]
	case 'h':
		unit = time.Hour
		digits = s[:len(s)-1]
	case 'm':
		unit = time.Minute
		digits = s[:len(s)-1]
	}

	n := 0
	for _, c := range digits {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}

	return time.Duration(n) * unit
}
