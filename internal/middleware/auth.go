package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/pokerledger/internal/access"
	"github.com/mmynk/pokerledger/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// ActorKey is the context key for the authenticated access.Actor.
const ActorKey contextKey = "actor"

// WithActor returns a context carrying actor.
func WithActor(ctx context.Context, actor access.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// GetActor extracts the actor from the context.
// The zero Actor means the request is unauthenticated.
func GetActor(ctx context.Context) access.Actor {
	actor, _ := ctx.Value(ActorKey).(access.Actor)
	return actor
}

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	return GetActor(ctx).UserID
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return WithActor(ctx, access.Actor{UserID: claims.UserID, Admin: claims.Admin})
}

// RequireAuth returns an interceptor that validates JWT tokens and requires
// authentication. Procedures listed in public skip the check.
func RequireAuth(jwtManager *auth.JWTManager, public ...string) connect.UnaryInterceptorFunc {
	skip := make(map[string]bool, len(public))
	for _, p := range public {
		skip[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if skip[req.Spec().Procedure] {
				return next(ctx, req)
			}

			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(withClaims(ctx, claims), req)
		}
	}
}
