package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/linkup-social/linkup/internal/models"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password,
// so a login failure never reveals which one was wrong.
var ErrInvalidCredentials = errors.New("email or password is incorrect")

// AuthService composes credential verification with the token service to
// produce session results for register, login, and refresh.
type AuthService struct {
	users      UserServiceInterface
	tokens     TokenServiceInterface
	bcryptCost int
}

func NewAuthService(users UserServiceInterface, tokens TokenServiceInterface, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Age       int
}

// AuthResult is a freshly issued session: the token pair plus the user it
// belongs to. The user's password hash is never serialized.
type AuthResult struct {
	Tokens *models.TokenPair
	User   *models.User
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates the user and issues the first session. A duplicate email
// surfaces as ErrEmailAlreadyExists from the user service.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	passwordHash, err := s.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, models.CreateUserParams{
		Email:        params.Email,
		PasswordHash: passwordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Age:          params.Age,
	})
	if err != nil {
		return nil, err
	}

	tokens, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Tokens: tokens, User: user}, nil
}

// Login verifies credentials and issues a fresh session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(ctx, user)
}

// Refresh rotates a session: the presented refresh token is validated, and a
// new pair is issued. Persisting the new refresh token deletes the old row,
// so the presented token cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	payload, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, ErrRefreshTokenInvalid
	}

	tokens, err := s.tokens.GenerateTokens(payload.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.SaveRefreshToken(ctx, payload.UserID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return tokens, nil
}

func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	tokens, err := s.tokens.GenerateTokens(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.SaveRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return tokens, nil
}
