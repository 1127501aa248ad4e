package middleware

import (
	"context"
	"crypto/rsa"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// OptionalAuthMiddleware attaches the editor to the context when a valid
// token is present. Missing, expired or otherwise invalid tokens pass through
// as anonymous, so routes like logout keep working with a stale cookie.
func OptionalAuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, _ := extractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			tok, err := ValidateToken(tokenStr, utils.ClientIP(r), pub)
			if err != nil || !tok.Valid {
				next.ServeHTTP(w, r)
				return
			}
			claims, _ := tok.Claims.(jwt.MapClaims)
			sub, _ := claims["sub"].(string)
			if sub == "" {
				next.ServeHTTP(w, r)
				return
			}
			role, _ := claims["role"].(string)

			ctx := context.WithValue(r.Context(), utils.CtxKeyEditorID, sub)
			ctx = context.WithValue(ctx, utils.CtxKeyEditorRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
