package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/linkup-social/linkup/internal/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type UserService struct {
	db DBConn
}

func NewUserService(db DBConn) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	// Check if email already exists
	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", params.Email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking email existence: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	user := &models.User{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO users (email, password, first_name, last_name, age)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, email, password, first_name, last_name, age, created_at`,
		params.Email, params.PasswordHash, params.FirstName, params.LastName, params.Age,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Age, &user.CreatedAt)

	if isUniqueViolation(err) {
		// A concurrent registration with the same email slipped past the
		// pre-check; the unique constraint on users.email catches it.
		return nil, ErrEmailAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password, first_name, last_name, age, created_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Age, &user.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by id: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password, first_name, last_name, age, created_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Age, &user.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return user, nil
}

// SearchUsersParams are optional filters for Search. Empty fields are
// ignored; name filters match case-insensitive substrings, age is exact.
type SearchUsersParams struct {
	FirstName string
	LastName  string
	Age       int
}

// Search returns users matching the filters, always excluding the caller.
func (s *UserService) Search(ctx context.Context, callerID uuid.UUID, params SearchUsersParams) ([]models.User, error) {
	conditions := []string{"id != $1"}
	args := []any{callerID}

	if params.FirstName != "" {
		args = append(args, "%"+params.FirstName+"%")
		conditions = append(conditions, fmt.Sprintf("first_name ILIKE $%d", len(args)))
	}
	if params.LastName != "" {
		args = append(args, "%"+params.LastName+"%")
		conditions = append(conditions, fmt.Sprintf("last_name ILIKE $%d", len(args)))
	}
	if params.Age > 0 {
		args = append(args, params.Age)
		conditions = append(conditions, fmt.Sprintf("age = $%d", len(args)))
	}

	query := `SELECT id, email, password, first_name, last_name, age, created_at
	 FROM users WHERE ` + strings.Join(conditions, " AND ")

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Age, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	if users == nil {
		users = []models.User{}
	}

	return users, nil
}

func (s *UserService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking user existence: %w", err)
	}
	return exists, nil
}
