package models

import (
	"time"

	"github.com/google/uuid"
)

// Friendship is the materialized, undirected record created when a friend
// request is accepted. It is stored as an ordered pair: the request sender
// becomes UserID1 and the receiver UserID2.
type Friendship struct {
	ID        uuid.UUID `json:"id"`
	UserID1   uuid.UUID `json:"user_id_1"`
	UserID2   uuid.UUID `json:"user_id_2"`
	CreatedAt time.Time `json:"created_at"`
}
