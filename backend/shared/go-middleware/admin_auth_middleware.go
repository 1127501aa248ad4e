package middleware

import (
	"net/http"

	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// AdminOnly must sit behind EditorAuthMiddleware. It rejects editors whose
// role is not "admin".
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if EditorRoleFromContext(r.Context()) != utils.AdminRole {
			utils.RespondErrorWithCode(
				w, http.StatusForbidden, utils.ErrCodeForbidden, "Insufficient permissions", nil,
			)
			return
		}
		next.ServeHTTP(w, r)
	})
}
