package domain

import "time"

// Client is a registered OAuth2 client. For the assertion grant its ID is
// usually the "iss" of the JWTs it signs.
type Client struct {
	ID     string
	Name   string
	Scopes []string // empty means any server scope may be requested

	// AccessTokenTTL overrides the server default lifetime when non-zero.
	AccessTokenTTL time.Duration

	Protected bool // If true, client cannot be deleted
	CreatedAt time.Time
	UpdatedAt time.Time
}
