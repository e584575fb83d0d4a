package service

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
)

// ValidateScopes reports whether the space-delimited requested scopes are
// allowed. Every requested scope must be a server scope and, when the client
// restricts its scopes, one of the client's. A blank request is always valid.
func ValidateScopes(requested string, serverScopes, clientScopes []string) bool {
	if strings.TrimSpace(requested) == "" {
		return true
	}
	if strings.ContainsAny(requested, "\r\n\t") {
		return false
	}

	for _, s := range domain.ParseScopes(requested) {
		if !slices.Contains(serverScopes, s) {
			return false
		}
		if len(clientScopes) > 0 && !slices.Contains(clientScopes, s) {
			return false
		}
	}
	return true
}

// ScopePolicy is the server-wide scope configuration.
type ScopePolicy struct {
	// Server lists every scope this server knows.
	Server []string
	// Default is granted when a request names no scope.
	Default []string
}

// Allows applies ValidateScopes against client. Without a client only a blank
// request passes.
func (p ScopePolicy) Allows(requested string, client *domain.Client) bool {
	if strings.TrimSpace(requested) == "" {
		return true
	}
	if client == nil {
		return false
	}
	return ValidateScopes(requested, p.Server, client.Scopes)
}

// Effective is the normalized scope set a token is issued with.
func (p ScopePolicy) Effective(requested string) []string {
	if scopes := domain.ParseScopes(requested); len(scopes) > 0 {
		return domain.NormalizeScopes(scopes)
	}
	return domain.NormalizeScopes(p.Default)
}

func (p ScopePolicy) Validate() error {
	if len(p.Server) == 0 {
		return fmt.Errorf("%w: no server scopes configured", ErrInvalidConfig)
	}
	for _, s := range p.Default {
		if !slices.Contains(p.Server, s) {
			return fmt.Errorf("%w: default scope %q is not a server scope", ErrInvalidConfig, s)
		}
	}
	return nil
}
