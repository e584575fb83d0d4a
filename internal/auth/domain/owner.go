package domain

import "time"

// ResourceOwner is the principal an access token acts on behalf of.
type ResourceOwner struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
