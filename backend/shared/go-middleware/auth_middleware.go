package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

const (
	// Cookie names follow the __Host- prefix rule (no Domain attribute allowed)
	AccessTokenCookieName = "__Host-accessToken"
)

// EditorAuthMiddleware guards the back office. The JWT is read from the
// AccessTokenCookieName cookie, falling back to Authorization: Bearer.
// The subject and role end up in the request context.
func EditorAuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractAccessToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			sub, role, ok := authenticate(w, r, pub, tokenStr)
			if !ok {
				return
			}

			if role != utils.EditorRole && role != utils.AdminRole {
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodeForbidden, "Insufficient permissions", nil,
				)
				return
			}

			ctx := context.WithValue(r.Context(), utils.CtxKeyEditorID, sub)
			ctx = context.WithValue(ctx, utils.CtxKeyEditorRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate validates the token and writes the 401 itself on failure.
func authenticate(w http.ResponseWriter, r *http.Request, pub *rsa.PublicKey, tokenStr string) (string, string, bool) {
	tok, vErr := ValidateToken(tokenStr, utils.ClientIP(r), pub)
	if vErr != nil || !tok.Valid {
		if errors.Is(vErr, jwt.ErrTokenExpired) {
			utils.RespondErrorWithCode(
				w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", nil, vErr,
			)
			return "", "", false
		}
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil, vErr,
		)
		return "", "", false
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid claims", nil,
		)
		return "", "", false
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing subject", nil,
		)
		return "", "", false
	}
	role, _ := claims["role"].(string)
	return sub, role, true
}

// helper: read the token from the cookie, or from Bearer for API clients
func extractAccessToken(r *http.Request) (string, error) {
	if c, err := r.Cookie(AccessTokenCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("missing access token")
	}
	return strings.TrimPrefix(h, "Bearer "), nil
}

// EditorIDFromContext returns the authenticated editor's ID, if any.
func EditorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(utils.CtxKeyEditorID).(string)
	return id, ok && id != ""
}

// EditorRoleFromContext returns the authenticated editor's role, if any.
func EditorRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(utils.CtxKeyEditorRole).(string)
	return role
}
