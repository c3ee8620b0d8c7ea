// Package middleware carries the request gate: it turns a bearer token
// into an explicit caller identity before any authorization decision.
package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arslanca/portfolio/internal/repo"
	"github.com/arslanca/portfolio/internal/tokens"
)

const AccessCookie = "access_token"

const identityKey = "identity"

type ctxKey struct{}

// Identity is the caller established for one request. It is passed
// explicitly through the echo context and the request context, never
// through package-level state.
type Identity struct {
	Subject string
	Role    string
}

type Gate struct {
	Repo  *repo.GormRepo
	Codec *tokens.Codec
}

// Establish runs on every request. It never rejects: each failure path
// falls through to the next handler as an anonymous caller, and the
// authorization middlewares decide later whether anonymous is enough.
func (g *Gate) Establish(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractToken(c)
		if token == "" {
			return next(c)
		}

		ctx := c.Request().Context()

		// Denylist first: a surrendered token is dead even before its
		// signature is looked at.
		revoked, err := g.Repo.IsTokenRevoked(ctx, tokens.Digest(token))
		if err != nil || revoked {
			return next(c)
		}

		subject, err := g.Codec.AccessSubject(token)
		if err != nil {
			return next(c)
		}

		if _, ok := FromEcho(c); !ok {
			user, err := g.Repo.FindUserByUsername(ctx, subject)
			if err != nil {
				return next(c)
			}
			if g.Codec.ValidAccess(token, user.Username) {
				id := Identity{Subject: user.Username, Role: user.Role}
				c.Set(identityKey, id)
				c.SetRequest(c.Request().WithContext(WithIdentity(ctx, id)))
			}
		}
		return next(c)
	}
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(AccessCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

func FromEcho(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}
