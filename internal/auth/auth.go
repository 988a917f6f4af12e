// Package auth identifies the actor behind each request. Password login lives
// outside this service; it only issues and verifies bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrUnknownRole  = errors.New("unknown role")
)

type Role string

const (
	RoleAdmin           Role = "admin"
	RoleBoutiqueManager Role = "boutique_manager"
	RoleSeller          Role = "seller"
	RoleSalonManager    Role = "salon_manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBoutiqueManager, RoleSeller, RoleSalonManager:
		return true
	}

	return false
}

// Actor is the user recorded on sales, movements and payments.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

type actorContextKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}

type claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 actor tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(actor Actor) (string, error) {
	if !actor.Role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, actor.Role)
	}

	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

func (i *Issuer) Parse(raw string) (Actor, error) {
	var c claims

	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return Actor{}, fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}

	if !c.Role.Valid() {
		return Actor{}, fmt.Errorf("%w: %q", ErrUnknownRole, c.Role)
	}

	return Actor{ID: id, Role: c.Role}, nil
}
