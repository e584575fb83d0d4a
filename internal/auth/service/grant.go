package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store"
	"github.com/aussiebroadwan/assertgrant/pkg/jwtx"
	"github.com/aussiebroadwan/assertgrant/pkg/lockx"
	"github.com/aussiebroadwan/assertgrant/pkg/slogx"
)

// GrantConfig is the process-wide grant configuration. It is built once at
// startup and not changed afterwards.
type GrantConfig struct {
	// Key verifies assertion signatures.
	Key *jwtx.Key
	// UseIssuerAsClientID resolves the client from "iss" instead of the
	// client_id parameter.
	UseIssuerAsClientID bool
	Scopes              ScopePolicy
	Lifetime            LifetimePolicy
	// ReuseAccessToken hands back a live token for a repeated request.
	ReuseAccessToken bool
	// Leeway tolerates clock skew on exp and nbf.
	Leeway time.Duration
}

func (c GrantConfig) Validate() error {
	if c.Key == nil {
		return fmt.Errorf("%w: no assertion verification key", ErrInvalidConfig)
	}
	if c.Leeway < 0 {
		return fmt.Errorf("%w: negative leeway", ErrInvalidConfig)
	}
	if err := c.Scopes.Validate(); err != nil {
		return err
	}
	return c.Lifetime.Validate()
}

// GrantObserver is told about every finished grant. The metrics package
// implements it.
type GrantObserver interface {
	ObserveGrant(outcome domain.GrantOutcome, elapsed time.Duration)
}

// GrantService runs the JWT bearer assertion grant.
type GrantService struct {
	Assertions *AssertionVerifier
	Clients    ClientResolver
	Scopes     ScopePolicy
	Owners     ResourceOwnerResolver
	Tokens     *TokenIssuer
	Observer   GrantObserver
}

// NewGrantService validates cfg and wires the grant steps. owners decides
// where the resource owner comes from; locker guards token issuance.
func NewGrantService(
	cfg GrantConfig,
	st store.Store,
	owners ResourceOwnerResolver,
	locker lockx.Locker,
	observer GrantObserver,
) (*GrantService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if owners == nil {
		return nil, fmt.Errorf("%w: no resource owner resolver", ErrInvalidConfig)
	}
	if locker == nil {
		locker = lockx.NewLocal()
	}

	return &GrantService{
		Assertions: NewAssertionVerifier(jwtx.NewAssertionVerifier(cfg.Key, jwtx.WithLeeway(cfg.Leeway))),
		Clients:    NewClientResolver(cfg.UseIssuerAsClientID, st.Clients()),
		Scopes:     cfg.Scopes,
		Owners:     owners,
		Tokens: &TokenIssuer{
			Store:    st,
			Locker:   locker,
			Lifetime: cfg.Lifetime,
			Reuse:    cfg.ReuseAccessToken,
		},
		Observer: observer,
	}, nil
}

// Authorize runs the steps assertion, client, scope, resource owner and
// access token in that order. Every check runs; a step whose input is
// missing because an earlier one failed just fails too, and the first
// failure is the one reported. The token is only issued when all checks
// passed.
func (s *GrantService) Authorize(ctx context.Context, req domain.GrantRequest) (out domain.GrantOutcome) {
	start := time.Now()
	defer func() {
		s.finish(ctx, out, time.Since(start))
	}()

	var first *domain.GrantError
	fail := func(e *domain.GrantError) {
		if first == nil {
			first = e
		}
	}

	assertion, err := s.Assertions.Verify(ctx, req.Assertion, req.AssertionType)
	if err != nil {
		fail(s.classify(ctx, domain.StepAssertion, err))
	} else {
		ctx = WithAssertion(ctx, assertion)
	}

	client, err := s.Clients.ResolveClient(ctx, req)
	switch {
	case err != nil:
		fail(s.classify(ctx, domain.StepClient, err))
	case client == nil:
		fail(grantError(domain.StepClient, domain.CodeInvalidClient, domain.ReasonUnknownClient, descUnknownClient))
	}

	if !s.Scopes.Allows(req.Scope, client) {
		fail(grantError(domain.StepScope, domain.CodeInvalidScope, domain.ReasonScopeNotAllowed, descInvalidScope))
	}

	owner, err := s.Owners.ResolveOwner(ctx)
	switch {
	case err != nil:
		fail(s.classify(ctx, domain.StepResourceOwner, err))
	case owner == nil:
		fail(grantError(domain.StepResourceOwner, domain.CodeInvalidGrant, domain.ReasonNoResourceOwner, descNoOwner))
	}

	if first != nil {
		return domain.Rejected(first)
	}

	tok, reused, err := s.Tokens.IssueOrReuse(ctx, *client, owner.ID, s.Scopes.Effective(req.Scope))
	if err != nil {
		return domain.Rejected(s.classify(ctx, domain.StepAccessToken, err))
	}
	return domain.Granted(tok, reused)
}

// classify keeps grant errors as they are and turns anything else into a
// generic server_error, logging the cause.
func (s *GrantService) classify(ctx context.Context, step string, err error) *domain.GrantError {
	var ge *domain.GrantError
	if errors.As(err, &ge) {
		return ge
	}
	slogx.FromContext(ctx).Error("grant step failed",
		slog.String("step", step),
		slog.Any("error", err),
	)
	return internalFault(step)
}

func (s *GrantService) finish(ctx context.Context, out domain.GrantOutcome, elapsed time.Duration) {
	l := slogx.FromContext(ctx)

	if out.OK() {
		l.Info("assertion grant issued token",
			slog.String("client_id", out.Token.ClientID),
			slog.String("resource_owner_id", out.Token.ResourceOwnerID),
			slog.Bool("reused", out.Reused),
			slog.Duration("elapsed", elapsed),
		)
	} else {
		level := slog.LevelInfo
		if out.Err.Reason == domain.ReasonServerError {
			level = slog.LevelWarn
		}
		l.Log(ctx, level, "assertion grant rejected",
			slog.String("step", out.Err.Step),
			slog.String("code", out.Err.Code),
			slog.String("reason", out.Err.Reason),
			slog.String("description", out.Err.Description),
		)
	}

	if s.Observer != nil {
		s.Observer.ObserveGrant(out, elapsed)
	}
}
