package auth

import (
	"context"
	"net/http"
)

type contextKey struct{}

// ClaimsFromContext returns the claims attached by AdminAuthMiddleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}

// TokenContextKey carries the raw token alongside the parsed claims so
// handlers can forward it to the backend as a bearer header.
type tokenKey struct{}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// AdminAuthMiddleware gates the admin pages: it requires a valid access
// token cookie with the Admin role and redirects everyone else to login.
func AdminAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := TokenFromRequest(r)
			if raw == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			claims, err := ParseToken(raw, secret)
			if err != nil || claims.Role != "Admin" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), contextKey{}, claims)
			ctx = context.WithValue(ctx, tokenKey{}, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
