package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"bubble-server/middleware"
	"bubble-server/models"
)

// ProfileStore reads and updates user profiles.
type ProfileStore interface {
	GetUserByID(id string) (*models.User, error)
	UpdateUserAvatar(userID, avatarURL string) error
}

type UserHandler struct {
	users ProfileStore
}

func NewUserHandler(users ProfileStore) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID required")
		return
	}

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, user.ToResponse())
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req struct {
		AvatarURL *string `json:"avatar_url,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.AvatarURL != nil {
		if err := h.users.UpdateUserAvatar(userID, strings.TrimSpace(*req.AvatarURL)); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update avatar")
			return
		}
	}

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user.ToResponse())
}
