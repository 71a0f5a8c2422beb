package entities

import "time"

// DefaultRole is granted to every new account at registration. The value
// matches the role vocabulary the token codec issues and the gate checks.
const DefaultRole = "ROLE_USER"

// User is the stored account record. PasswordHash never leaves the module.
type User struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
