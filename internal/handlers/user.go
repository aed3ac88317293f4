package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/linkup-social/linkup/internal/logging"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/services"
)

type UserHandler struct {
	userService services.UserServiceInterface
}

func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

type UsersResponse struct {
	Users []models.User `json:"users"`
}

// Search filters users by firstName, lastName and age query parameters. All
// filters are optional; the caller is never part of the result.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	params := services.SearchUsersParams{
		FirstName: strings.TrimSpace(r.URL.Query().Get("firstName")),
		LastName:  strings.TrimSpace(r.URL.Query().Get("lastName")),
	}
	if raw := r.URL.Query().Get("age"); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil || age <= 0 {
			writeError(w, http.StatusBadRequest, "Age must be a positive number")
			return
		}
		params.Age = age
	}

	users, err := h.userService.Search(r.Context(), userID, params)
	if err != nil {
		logging.Error("searching users", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, UsersResponse{Users: users})
}
