// Package users covers profile management for the authenticated
// account: reading the public profile and replacing its mutable
// fields.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/galleria-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique
// constraint violations.
const pgUniqueViolation = "23505"

// Service provides profile reads and updates.
type Service struct {
	db *pgxpool.Pool
}

// NewService creates a users Service.
func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// GetProfile returns the profile for userID, or a not-found error when
// the row no longer exists (a valid token can outlive its account).
func (s *Service) GetProfile(ctx context.Context, userID int) (*ProfileResponse, error) {
	var profile ProfileResponse
	query := `SELECT id, username, email, first_name, last_name, profile_pic, join_date
	          FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.Username,
		&profile.Email,
		&profile.FirstName,
		&profile.LastName,
		&profile.ProfilePic,
		&profile.JoinDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with ID %d not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user profile", err)
	}
	return &profile, nil
}

// UpdateProfile overwrites all five mutable profile fields in a single
// statement and returns the updated row.
func (s *Service) UpdateProfile(ctx context.Context, userID int, req UpdateProfileRequest) (*ProfileResponse, error) {
	var profile ProfileResponse
	query := `UPDATE users
	          SET first_name = $1, last_name = $2, username = $3, email = $4, profile_pic = $5
	          WHERE id = $6
	          RETURNING id, username, email, first_name, last_name, profile_pic, join_date`
	err := s.db.QueryRow(ctx, query,
		req.FirstName, req.LastName, req.Username, req.Email, req.ProfilePic, userID,
	).Scan(
		&profile.ID,
		&profile.Username,
		&profile.Email,
		&profile.FirstName,
		&profile.LastName,
		&profile.ProfilePic,
		&profile.JoinDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with ID %d not found", userID), nil)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "email") {
			return nil, apperror.NewBadRequestError("email already in use", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update user profile", err)
	}
	return &profile, nil
}
