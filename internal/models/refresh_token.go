package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a persisted refresh credential. At most one live row exists
// per user: saving a new token deletes any prior rows for that user first.
type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenPair is an access/refresh token pair issued for one user session.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
