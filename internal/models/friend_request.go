package models

import (
	"time"

	"github.com/google/uuid"
)

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusDeclined FriendRequestStatus = "declined"
)

type FriendRequestAction string

const (
	FriendRequestActionAccept  FriendRequestAction = "accept"
	FriendRequestActionDecline FriendRequestAction = "decline"
)

type FriendRequest struct {
	ID         uuid.UUID           `json:"id"`
	SenderID   uuid.UUID           `json:"sender_id"`
	ReceiverID uuid.UUID           `json:"receiver_id"`
	Status     FriendRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

// FriendRequestWithSender is a pending request enriched with the sender's
// details for the inbox listing.
type FriendRequestWithSender struct {
	FriendRequest
	SenderFirstName string `json:"first_name"`
	SenderLastName  string `json:"last_name"`
	SenderEmail     string `json:"email"`
}
