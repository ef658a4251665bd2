package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mentorbot/internal/repository"
	"mentorbot/internal/service"
)

// ProfileHandler exposes stored profiles and reminders to the admin API
type ProfileHandler struct {
	profileSvc  *service.ProfileService
	reminderSvc *service.ReminderService
	users       repository.UserRepo
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileSvc *service.ProfileService, reminderSvc *service.ReminderService, users repository.UserRepo) *ProfileHandler {
	return &ProfileHandler{
		profileSvc:  profileSvc,
		reminderSvc: reminderSvc,
		users:       users,
	}
}

func userIDFrom(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
}

// Get handles GET /v1/users/{userId}/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	profile, err := h.profileSvc.Get(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Delete handles DELETE /v1/users/{userId}/profile
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.profileSvc.Clear(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Retry handles POST /v1/users/{userId}/profile/retry
func (h *ProfileHandler) Retry(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	profile, err := h.profileSvc.Retry(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoStoredAnswers) {
			writeError(w, http.StatusNotFound, "no stored answers for this user")
			return
		}
		genErr := service.AsGenerationError(err)
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":   "generation failed",
			"reason":  genErr.Reason,
			"profile": profile,
		})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// GetReminder handles GET /v1/users/{userId}/reminder
func (h *ProfileHandler) GetReminder(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFrom(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	cfg, err := h.reminderSvc.Get(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load reminder")
		return
	}
	if cfg == nil {
		writeError(w, http.StatusNotFound, "no reminder configured")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// Stats handles GET /v1/stats
func (h *ProfileHandler) Stats(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count users")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}
