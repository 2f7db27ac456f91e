// Data transfer objects for the profile endpoints.
package users

import "time"

// ProfileResponse is the full public profile of an account.
type ProfileResponse struct {
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  *string   `json:"first_name"`
	LastName   *string   `json:"last_name"`
	ProfilePic *string   `json:"profile_pic"`
	JoinDate   time.Time `json:"join_date"`
}

// UpdateProfileRequest replaces the mutable profile fields in one
// atomic write; there are no partial-field semantics. Optional fields
// left out of the payload are stored as NULL.
type UpdateProfileRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	ProfilePic *string `json:"profile_pic"`
}

// UpdateProfileResponse acknowledges the update with the new profile.
type UpdateProfileResponse struct {
	Message string          `json:"message"`
	User    ProfileResponse `json:"user"`
}
