package users

import (
	"encoding/json"
	"net/http"

	"github.com/user/galleria-go/apperror"
	"github.com/user/galleria-go/auth"
)

// Handlers exposes the users service over HTTP.
type Handlers struct {
	service *Service
}

// NewHandlers creates a Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleGetProfile godoc
// @Summary Get the current user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/auth/me [get]
func (h *Handlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user ID not found in request context", nil))
			return
		}

		profile, err := h.service.GetProfile(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(profile)
	}
}

// HandleUpdateProfile godoc
// @Summary Update the current user's profile
// @Description Replaces first name, last name, username, email and profile picture in one write.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profileBody body UpdateProfileRequest true "New profile field values"
// @Success 200 {object} UpdateProfileResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/users/profile [put]
func (h *Handlers) HandleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user ID not found in request context", nil))
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		// username and email are NOT NULL columns; the optional
		// fields may be absent and end up NULL.
		if req.Username == "" || req.Email == "" {
			auth.WriteError(w, r, apperror.NewBadRequestError("username and email are required", nil))
			return
		}

		profile, err := h.service.UpdateProfile(r.Context(), userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UpdateProfileResponse{
			Message: "profile updated",
			User:    *profile,
		})
	}
}
