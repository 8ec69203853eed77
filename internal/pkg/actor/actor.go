package actor

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Actor identifies who performed an operation, for audit attribution.
// It is carried in the access token issued by the identity service.
type Actor struct {
	EmployeeID string
	Name       string
	Role       string
}

var ErrNoActor = errors.New("no actor identity in request context")

// FromContext extracts the acting user from the verified JWT in ctx.
func FromContext(ctx context.Context) (Actor, error) {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, err
	}
	if token == nil {
		return Actor{}, ErrNoActor
	}
	return fromToken(token)
}

func fromToken(tok jwt.Token) (Actor, error) {
	var a Actor
	if v, ok := tok.Get("employee_id"); ok {
		a.EmployeeID, _ = v.(string)
	}
	if v, ok := tok.Get("name"); ok {
		a.Name, _ = v.(string)
	}
	if v, ok := tok.Get("role"); ok {
		a.Role, _ = v.(string)
	}
	if a.Name == "" || a.Role == "" {
		return Actor{}, ErrNoActor
	}
	return a, nil
}

// IsPrivileged reports whether the actor may perform HR/admin operations.
func (a Actor) IsPrivileged() bool {
	switch a.Role {
	case "hr", "admin", "super_admin":
		return true
	}
	return false
}
