package domain

import "time"

// AccessToken models the stored opaque bearer token.
type AccessToken struct {
	ID              string
	Token           string
	ClientID        string
	ResourceOwnerID string
	Scopes          []string
	IssuedAt        time.Time
	ExpiresAt       time.Time
	RevokedAt       *time.Time

	// RefreshToken is always empty; the assertion grant never issues one.
	RefreshToken string
}

// ExpiresIn is the remaining lifetime at now, never negative.
func (t AccessToken) ExpiresIn(now time.Time) time.Duration {
	if d := t.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Active reports whether the token is unrevoked and unexpired at now.
func (t AccessToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

func (t AccessToken) HasRefreshToken() bool { return t.RefreshToken != "" }
