package entities

import "time"

// Claims is the structured data embedded in a signed token. Claims are signed,
// not encrypted, so they must carry only identity and role names.
type Claims struct {
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the claims expired strictly before now.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}
