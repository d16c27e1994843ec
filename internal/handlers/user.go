package handlers

import (
	"log"
	"net/http"

	"pulse-backend/internal/middleware"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserHandler struct {
	userStore UserStore
}

func NewUserHandler(userStore UserStore) *UserHandler {
	return &UserHandler{userStore: userStore}
}

// --- GET /user/me ---

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userIDHex := middleware.GetUserID(r.Context())
	if userIDHex == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID, err := bson.ObjectIDFromHex(userIDHex)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	user, err := h.userStore.FindByID(r.Context(), userID)
	if err != nil {
		log.Printf("Error finding user: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
