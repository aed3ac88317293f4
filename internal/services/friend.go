package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/linkup-social/linkup/internal/models"
)

var (
	ErrSelfRequest      = errors.New("cannot send a friend request to yourself")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrAlreadyFriends   = errors.New("users are already friends")
	ErrDuplicateRequest = errors.New("friend request already exists")
	ErrRequestInvalid   = errors.New("friend request is not pending or not addressed to this user")
	ErrUnknownAction    = errors.New(`action must be either "accept" or "decline"`)
)

const uniqueViolationCode = "23505"

// FriendService enforces the friend-request state machine:
// pending -> accepted or pending -> declined, both terminal. Accepting a
// request materializes a friendship row as a side effect.
type FriendService struct {
	db DBConn
}

func NewFriendService(db DBConn) *FriendService {
	return &FriendService{db: db}
}

// SendRequest creates a pending request from sender to receiver. The checks
// run in a fixed order: self-request is rejected before the receiver is even
// looked up, so an unknown self-id still reports the self-request conflict.
func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*models.FriendRequest, error) {
	if senderID == receiverID {
		return nil, ErrSelfRequest
	}

	var receiverExists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", receiverID,
	).Scan(&receiverExists)
	if err != nil {
		return nil, fmt.Errorf("checking receiver existence: %w", err)
	}
	if !receiverExists {
		return nil, ErrReceiverNotFound
	}

	// Friendship is undirected; check both stored orders.
	var alreadyFriends bool
	err = s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friends
			WHERE (user_id_1 = $1 AND user_id_2 = $2)
			   OR (user_id_1 = $2 AND user_id_2 = $1)
		)`,
		senderID, receiverID,
	).Scan(&alreadyFriends)
	if err != nil {
		return nil, fmt.Errorf("checking friendship: %w", err)
	}
	if alreadyFriends {
		return nil, ErrAlreadyFriends
	}

	// The duplicate check is directional: a pending request in the reverse
	// direction does not block this one, and both rows may coexist.
	var pendingExists bool
	err = s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friend_requests
			WHERE sender_id = $1 AND receiver_id = $2 AND status = 'pending'
		)`,
		senderID, receiverID,
	).Scan(&pendingExists)
	if err != nil {
		return nil, fmt.Errorf("checking pending request: %w", err)
	}
	if pendingExists {
		return nil, ErrDuplicateRequest
	}

	request := &models.FriendRequest{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO friend_requests (sender_id, receiver_id, status)
		 VALUES ($1, $2, 'pending')
		 RETURNING id, sender_id, receiver_id, status, created_at`,
		senderID, receiverID,
	).Scan(&request.ID, &request.SenderID, &request.ReceiverID, &request.Status, &request.CreatedAt)
	if isUniqueViolation(err) {
		// A concurrent sender won the race; the unique index on
		// (sender_id, receiver_id, status) closes the check-then-insert gap.
		return nil, ErrDuplicateRequest
	}
	if err != nil {
		return nil, fmt.Errorf("creating friend request: %w", err)
	}

	return request, nil
}

// ListPendingRequests returns pending requests addressed to the user,
// enriched with the sender's name and email, most recent first.
func (s *FriendService) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithSender, error) {
	rows, err := s.db.Query(ctx,
		`SELECT fr.id, fr.sender_id, fr.receiver_id, fr.status, fr.created_at,
		        u.first_name, u.last_name, u.email
		 FROM friend_requests fr
		 JOIN users u ON fr.sender_id = u.id
		 WHERE fr.receiver_id = $1 AND fr.status = 'pending'
		 ORDER BY fr.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending requests: %w", err)
	}
	defer rows.Close()

	var requests []models.FriendRequestWithSender
	for rows.Next() {
		var r models.FriendRequestWithSender
		if err := rows.Scan(
			&r.ID, &r.SenderID, &r.ReceiverID, &r.Status, &r.CreatedAt,
			&r.SenderFirstName, &r.SenderLastName, &r.SenderEmail,
		); err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating requests: %w", err)
	}

	if requests == nil {
		requests = []models.FriendRequestWithSender{}
	}

	return requests, nil
}

// UpdateRequestByAction transitions a pending request to accepted or
// declined. A single lookup on {id, receiver, pending} enforces existence,
// receiver-only authorization, and the pending state at once.
func (s *FriendService) UpdateRequestByAction(ctx context.Context, requestID, userID uuid.UUID, action models.FriendRequestAction) error {
	request := &models.FriendRequest{}
	err := s.db.QueryRow(ctx,
		`SELECT id, sender_id, receiver_id, status, created_at
		 FROM friend_requests
		 WHERE id = $1 AND receiver_id = $2 AND status = 'pending'`,
		requestID, userID,
	).Scan(&request.ID, &request.SenderID, &request.ReceiverID, &request.Status, &request.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRequestInvalid
	}
	if err != nil {
		return fmt.Errorf("getting friend request: %w", err)
	}

	switch action {
	case models.FriendRequestActionAccept:
		return s.acceptRequest(ctx, request)
	case models.FriendRequestActionDecline:
		return s.declineRequest(ctx, request)
	default:
		return ErrUnknownAction
	}
}

// acceptRequest flips the request to accepted and materializes the
// friendship in one transaction, so a crash between the two statements
// cannot leave an accepted request without its friendship row.
func (s *FriendService) acceptRequest(ctx context.Context, request *models.FriendRequest) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	tag, err := tx.Exec(ctx,
		"UPDATE friend_requests SET status = 'accepted' WHERE id = $1 AND status = 'pending'",
		request.ID,
	)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("accepting friend request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// A concurrent accept/decline got there first.
		_ = tx.Rollback(ctx)
		return ErrRequestInvalid
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO friends (user_id_1, user_id_2) VALUES ($1, $2)",
		request.SenderID, request.ReceiverID,
	)
	if isUniqueViolation(err) {
		_ = tx.Rollback(ctx)
		return ErrAlreadyFriends
	}
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("creating friendship: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing accept: %w", err)
	}

	return nil
}

// declineRequest is a pure state transition; no friendship row is created.
func (s *FriendService) declineRequest(ctx context.Context, request *models.FriendRequest) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE friend_requests SET status = 'declined' WHERE id = $1 AND status = 'pending'",
		request.ID,
	)
	if err != nil {
		return fmt.Errorf("declining friend request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestInvalid
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
