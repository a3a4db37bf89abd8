package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"picshare/internal/httputil"
	"picshare/internal/model"
	"picshare/internal/service"
	"picshare/internal/transport/http/middleware"
)

// NotificationHandler groups notification endpoints.
type NotificationHandler struct {
	notifService *service.NotificationService
}

// NewNotificationHandler wires dependencies for notification endpoints.
func NewNotificationHandler(notifService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

// Create records a notification addressed to another user. The sender
// is always the authenticated user, whatever the body claims.
// POST /notifications
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	req.SenderID = senderID

	if req.UserID == "" {
		httputil.WriteBadRequest(w, "Recipient user ID is required")
		return
	}
	if req.Type == "" {
		httputil.WriteBadRequest(w, "Notification type is required")
		return
	}

	notif, err := h.notifService.Create(r.Context(), &req)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to create notification")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, notif)
}

// GetAllForUser lists a user's notifications, newest first.
// GET /notifications/{userId}
func (h *NotificationHandler) GetAllForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		httputil.WriteBadRequest(w, "User ID is required")
		return
	}

	notifications, err := h.notifService.GetAllForUser(r.Context(), userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to get notifications")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, notifications)
}
