package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/services"
)

type mockAuthService struct {
	HashPasswordFunc   func(password string) (string, error)
	VerifyPasswordFunc func(hash, password string) bool
	RegisterFunc       func(ctx context.Context, params services.RegisterParams) (*services.AuthResult, error)
	LoginFunc          func(ctx context.Context, email, password string) (*models.TokenPair, error)
	RefreshFunc        func(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed", nil
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(hash, password)
	}
	return false
}

func (m *mockAuthService) Register(ctx context.Context, params services.RegisterParams) (*services.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, nil
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, nil
}

type mockUserService struct {
	CreateFunc     func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	SearchFunc     func(ctx context.Context, callerID uuid.UUID, params services.SearchUsersParams) ([]models.User, error)
	ExistsFunc     func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserService) Search(ctx context.Context, callerID uuid.UUID, params services.SearchUsersParams) ([]models.User, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, callerID, params)
	}
	return []models.User{}, nil
}

func (m *mockUserService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

type mockFriendService struct {
	SendRequestFunc           func(ctx context.Context, senderID, receiverID uuid.UUID) (*models.FriendRequest, error)
	ListPendingRequestsFunc   func(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithSender, error)
	UpdateRequestByActionFunc func(ctx context.Context, requestID, userID uuid.UUID, action models.FriendRequestAction) error
}

func (m *mockFriendService) SendRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*models.FriendRequest, error) {
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, senderID, receiverID)
	}
	return nil, nil
}

func (m *mockFriendService) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithSender, error) {
	if m.ListPendingRequestsFunc != nil {
		return m.ListPendingRequestsFunc(ctx, userID)
	}
	return []models.FriendRequestWithSender{}, nil
}

func (m *mockFriendService) UpdateRequestByAction(ctx context.Context, requestID, userID uuid.UUID, action models.FriendRequestAction) error {
	if m.UpdateRequestByActionFunc != nil {
		return m.UpdateRequestByActionFunc(ctx, requestID, userID, action)
	}
	return nil
}
