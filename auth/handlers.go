package auth

import (
	"encoding/json"
	"net/http"

	"github.com/user/galleria-go/apperror"
)

// Handlers exposes the auth service over HTTP.
type Handlers struct {
	service *Service
}

// NewHandlers creates a Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleRegister godoc
// @Summary Register a new account
// @Description Creates a user account. Rejects the request when the email is already in use.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "Registration details"
// @Success 201 {object} auth.RegisterResponse
// @Failure 400 {object} apperror.ErrorResponse "Missing fields or email already in use"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.Username == "" || req.Email == "" || req.Password == "" {
			WriteError(w, r, apperror.NewBadRequestError("username, email, and password are required", nil))
			return
		}

		user, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			Message: "registration successful",
			User:    *user,
		})
	}
}

// HandleLogin godoc
// @Summary Log in
// @Description Verifies credentials and returns a 7-day session token with the public profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "Login credentials"
// @Success 200 {object} auth.LoginResponse
// @Failure 400 {object} apperror.ErrorResponse "Email not found or wrong password"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.Email == "" || req.Password == "" {
			WriteError(w, r, apperror.NewBadRequestError("email and password are required", nil))
			return
		}

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleForgotPassword godoc
// @Summary Request a password reset
// @Description Issues a 15-minute reset token for the account and emits the reset link to the server log.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgotBody body auth.ForgotPasswordRequest true "Account email"
// @Success 200 {object} auth.MessageResponse
// @Failure 404 {object} apperror.ErrorResponse "Email not registered"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/auth/forgot-password [post]
func (h *Handlers) HandleForgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.Email == "" {
			WriteError(w, r, apperror.NewBadRequestError("email is required", nil))
			return
		}

		if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "reset link has been emitted to the server log"})
	}
}

// HandleResetPassword godoc
// @Summary Complete a password reset
// @Description Consumes a valid reset token and replaces the account password.
// @Tags auth
// @Accept json
// @Produce json
// @Param resetBody body auth.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} auth.MessageResponse
// @Failure 400 {object} apperror.ErrorResponse "Missing fields"
// @Failure 403 {object} apperror.ErrorResponse "Invalid or expired reset token"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/auth/reset-password [post]
func (h *Handlers) HandleResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.Token == "" || req.NewPassword == "" {
			WriteError(w, r, apperror.NewBadRequestError("token and new_password are required", nil))
			return
		}

		if err := h.service.ResetPassword(r.Context(), req); err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "password updated"})
	}
}

// writeJSON serializes data with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError renders any error as the standard error body. Errors that
// are not already AppErrors become a generic internal error so callers
// see a consistent shape.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
