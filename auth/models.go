package auth

import "time"

// User is the account record as stored in the users table.
// HashedPassword is tagged out of JSON so it can never appear in a
// response body.
type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	FirstName      *string   `json:"first_name"`
	LastName       *string   `json:"last_name"`
	ProfilePic     *string   `json:"profile_pic"`
	JoinDate       time.Time `json:"join_date"`
}
