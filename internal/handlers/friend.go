package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/linkup-social/linkup/internal/logging"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/services"
)

type FriendHandler struct {
	friendService services.FriendServiceInterface
}

func NewFriendHandler(friendService services.FriendServiceInterface) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

type SendRequestRequest struct {
	ReceiverID string `json:"receiverId"`
}

type SendRequestResponse struct {
	Request *models.FriendRequest `json:"request"`
}

type PendingRequestsResponse struct {
	Requests []models.FriendRequestWithSender `json:"requests"`
}

type UpdateRequestRequest struct {
	Action string `json:"action"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid receiver ID")
		return
	}

	request, err := h.friendService.SendRequest(r.Context(), userID, receiverID)
	if errors.Is(err, services.ErrSelfRequest) {
		writeError(w, http.StatusConflict, "Cannot send a friend request to yourself")
		return
	}
	if errors.Is(err, services.ErrReceiverNotFound) {
		writeError(w, http.StatusNotFound, "Receiver not found")
		return
	}
	if errors.Is(err, services.ErrAlreadyFriends) {
		writeError(w, http.StatusConflict, "Users are already friends")
		return
	}
	if errors.Is(err, services.ErrDuplicateRequest) {
		writeError(w, http.StatusConflict, "Friend request already exists")
		return
	}
	if err != nil {
		logging.Error("sending friend request", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, SendRequestResponse{Request: request})
}

func (h *FriendHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requests, err := h.friendService.ListPendingRequests(r.Context(), userID)
	if err != nil {
		logging.Error("listing friend requests", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, PendingRequestsResponse{Requests: requests})
}

func (h *FriendHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var req UpdateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	action := models.FriendRequestAction(req.Action)
	err = h.friendService.UpdateRequestByAction(r.Context(), requestID, userID, action)
	if errors.Is(err, services.ErrRequestInvalid) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Request is invalid and can not be %sed", req.Action))
		return
	}
	if errors.Is(err, services.ErrUnknownAction) {
		writeError(w, http.StatusBadRequest, `Action must be either "accept" or "decline"`)
		return
	}
	if errors.Is(err, services.ErrAlreadyFriends) {
		writeError(w, http.StatusConflict, "Users are already friends")
		return
	}
	if err != nil {
		logging.Error("updating friend request", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Friend request %sed", req.Action)})
}
