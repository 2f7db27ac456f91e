// Package auth handles account credentials and bearer tokens:
// registration, login, the password-reset flow, and issuing and
// verifying the signed tokens the middleware checks on every
// protected request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/galleria-go/apperror"
	"github.com/user/galleria-go/config"
)

// Service implements registration, login and the password-reset flow.
type Service struct {
	db         *pgxpool.Pool
	authConfig config.AuthConfig
}

// NewService creates an auth Service with its dependencies injected.
func NewService(db *pgxpool.Pool, authConfig config.AuthConfig) *Service {
	return &Service{
		db:         db,
		authConfig: authConfig,
	}
}

// Register creates a new account. The duplicate-email precondition is
// an exact-match lookup before the insert; the UNIQUE constraint on
// users.email backs it at the storage layer.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisteredUser, error) {
	var existingID int
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, req.Email).Scan(&existingID)
	if err == nil {
		return nil, apperror.NewBadRequestError("email already in use", nil)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewDatabaseError("failed to check existing email", err)
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	var user RegisteredUser
	query := `INSERT INTO users (username, email, password)
	          VALUES ($1, $2, $3)
	          RETURNING id, username, email`
	err = s.db.QueryRow(ctx, query, req.Username, req.Email, hashed).Scan(&user.ID, &user.Username, &user.Email)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return &user, nil
}

// Login verifies credentials and issues a session token. The two
// failure modes keep their distinct messages ("email not found" and
// "wrong password"), matching the API contract.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.getUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewBadRequestError("email not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if !CheckPassword(req.Password, user.HashedPassword) {
		return nil, apperror.NewBadRequestError("wrong password", nil)
	}

	token, _, err := s.IssueToken(user.ID, TokenTypeSession, s.authConfig.SessionTokenTTL)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue session token", err)
	}

	return &LoginResponse{
		Message: "login successful",
		Token:   token,
		User: UserInfo{
			ID:         user.ID,
			Username:   user.Username,
			Email:      user.Email,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			ProfilePic: user.ProfilePic,
		},
	}, nil
}

// ForgotPassword issues a short-lived reset token for the account
// behind email. There is no mail delivery; the reset link is logged so
// it can be retrieved out-of-band.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.getUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFoundError("email not registered", nil)
		}
		return apperror.NewDatabaseError("failed to get user", err)
	}

	token, _, err := s.IssueToken(user.ID, TokenTypeReset, s.authConfig.ResetTokenTTL)
	if err != nil {
		return apperror.NewInternalError("failed to issue reset token", err)
	}

	log.Printf("password reset link for user %d: %s/%s", user.ID, s.authConfig.ResetLinkBase, token)
	return nil
}

// ResetPassword consumes a reset token and replaces the stored
// password hash. An invalid or expired token is an authorization
// rejection, not a validation failure.
func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	claims, err := s.VerifyToken(req.Token, TokenTypeReset)
	if err != nil {
		return apperror.NewUnauthorizedError("invalid or expired reset token", err)
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return apperror.NewInternalError("failed to hash password", err)
	}

	tag, err := s.db.Exec(ctx, `UPDATE users SET password = $1 WHERE id = $2`, hashed, claims.UserID)
	if err != nil {
		return apperror.NewDatabaseError("failed to update password", err)
	}
	if tag.RowsAffected() == 0 {
		// Token verified but the account is gone.
		return apperror.NewNotFoundError(fmt.Sprintf("user with ID %d not found", claims.UserID), nil)
	}
	return nil
}

func (s *Service) getUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, username, email, password, first_name, last_name, profile_pic, join_date
	          FROM users WHERE email = $1`
	err := s.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.FirstName,
		&user.LastName,
		&user.ProfilePic,
		&user.JoinDate,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
