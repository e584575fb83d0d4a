package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
)

// LifetimePolicy decides how long an access token lives.
type LifetimePolicy struct {
	Default time.Duration
	// Max caps per-client overrides. It is required so every token has a
	// bounded life.
	Max time.Duration
}

// For returns the client's own lifetime when it has one, else the default,
// never more than Max.
func (p LifetimePolicy) For(c domain.Client) time.Duration {
	ttl := p.Default
	if c.AccessTokenTTL > 0 {
		ttl = c.AccessTokenTTL
	}
	return min(ttl, p.Max)
}

func (p LifetimePolicy) Validate() error {
	if p.Default <= 0 {
		return fmt.Errorf("%w: access token lifetime must be positive", ErrInvalidConfig)
	}
	if p.Max <= 0 {
		return fmt.Errorf("%w: max access token lifetime must be positive", ErrInvalidConfig)
	}
	if p.Max < p.Default {
		return fmt.Errorf("%w: max lifetime %s is below the default %s", ErrInvalidConfig, p.Max, p.Default)
	}
	return nil
}
