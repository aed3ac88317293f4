package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/linkup-social/linkup/internal/models"
)

// UserServiceInterface defines the contract for user operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Search(ctx context.Context, callerID uuid.UUID, params SearchUsersParams) ([]models.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// TokenServiceInterface defines the contract for token lifecycle operations.
type TokenServiceInterface interface {
	GenerateTokens(userID uuid.UUID) (*models.TokenPair, error)
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string) error
	ValidateRefreshToken(ctx context.Context, token string) (*AuthPayload, error)
	DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error
	VerifyAccessToken(token string) (*AuthPayload, error)
}

// AuthServiceInterface defines the contract for session operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

// FriendServiceInterface defines the contract for friend-request operations.
type FriendServiceInterface interface {
	SendRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*models.FriendRequest, error)
	ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithSender, error)
	UpdateRequestByAction(ctx context.Context, requestID, userID uuid.UUID, action models.FriendRequestAction) error
}

// TokenVerifier is the narrow surface the auth middleware needs.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*AuthPayload, error)
}
