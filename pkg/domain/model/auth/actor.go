package auth

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/types"
)

// Actor is a resolved identity: the engine never authenticates, it only
// consumes an already-resolved (actor, role, company) triple.
type Actor struct {
	ID        string
	Role      types.Role
	CompanyID string
}

// Anonymous returns an actor for unauthenticated report submission.
// Anonymous actors hold the basic submitter role and no identity.
func Anonymous(companyID string) *Actor {
	return &Actor{
		Role:      types.RoleEmployee,
		CompanyID: companyID,
	}
}

// IsAnonymous reports whether the actor carries no identity
func (a *Actor) IsAnonymous() bool {
	return a.ID == ""
}

// Validate checks the actor for a known role and a company
func (a *Actor) Validate() error {
	if !a.Role.IsValid() {
		return goerr.New("unknown actor role", goerr.V("role", a.Role))
	}
	if a.CompanyID == "" {
		return goerr.New("actor has no company")
	}
	return nil
}

type ctxKey struct{}

// ContextWithActor returns a context carrying the actor
func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

// ActorFromContext extracts the actor from the context
func ActorFromContext(ctx context.Context) (*Actor, error) {
	actor, ok := ctx.Value(ctxKey{}).(*Actor)
	if !ok || actor == nil {
		return nil, goerr.New("no actor in context")
	}
	return actor, nil
}
