package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store"
)

// ResourceOwnerResolver answers who the token is issued for. The grant never
// authenticates anyone itself; a nil owner with a nil error means nobody is
// authenticated.
type ResourceOwnerResolver interface {
	ResolveOwner(ctx context.Context) (*domain.ResourceOwner, error)
}

// OwnerFinder is the slice of store.Owners the subject resolver needs.
type OwnerFinder interface {
	GetOwnerByID(ctx context.Context, id string) (domain.ResourceOwner, error)
}

type ownerKey struct{}

// WithResourceOwner records the owner an outer authentication layer has
// established for this request.
func WithResourceOwner(ctx context.Context, o domain.ResourceOwner) context.Context {
	return context.WithValue(ctx, ownerKey{}, o)
}

func ResourceOwnerFromContext(ctx context.Context) (domain.ResourceOwner, bool) {
	o, ok := ctx.Value(ownerKey{}).(domain.ResourceOwner)
	return o, ok && o.ID != ""
}

// ContextOwnerResolver returns the owner set with WithResourceOwner.
type ContextOwnerResolver struct{}

func (ContextOwnerResolver) ResolveOwner(ctx context.Context) (*domain.ResourceOwner, error) {
	o, ok := ResourceOwnerFromContext(ctx)
	if !ok {
		return nil, nil
	}
	return &o, nil
}

// SubjectOwnerResolver looks up the "sub" claim of the verified assertion in
// the owner registry.
type SubjectOwnerResolver struct {
	Owners OwnerFinder
}

func (r *SubjectOwnerResolver) ResolveOwner(ctx context.Context) (*domain.ResourceOwner, error) {
	a, ok := AssertionFromContext(ctx)
	if !ok || a.Subject() == "" {
		return nil, nil
	}

	o, err := r.Owners.GetOwnerByID(ctx, a.Subject())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}
