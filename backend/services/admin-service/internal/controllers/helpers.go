package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	internal_utils "github.com/newsroom/mono-repo/backend/services/admin-service/internal/utils"
	go_dtos "github.com/newsroom/mono-repo/backend/shared/go-dtos"
	"github.com/newsroom/mono-repo/backend/shared/go-middleware"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// getEditorID reads the authenticated editor from the request context.
func getEditorID(r *http.Request) (uuid.UUID, error) {
	raw, ok := middleware.EditorIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "Missing editorID in context",
		}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Invalid editorID format",
			Err:        err,
		}
	}
	return id, nil
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Invalid id",
			Err:        err,
		}
	}
	return id, nil
}

// decodeAndValidate writes the 400 itself and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return false
	}
	if err := v.Struct(dst); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Please correct the errors below.",
			go_dtos.NewValidationErrorDetails(err), err,
		)
		return false
	}
	return true
}

// respondServiceError answers an edit conflict with the latest article so
// the client can reload without another round trip.
func respondServiceError(w http.ResponseWriter, err error) {
	var conflict *internal_utils.EditConflictError
	if errors.As(err, &conflict) {
		var details any
		if conflict.Current != nil {
			details = conflict.Current
		}
		utils.RespondErrorWithCode(
			w,
			http.StatusConflict,
			utils.ErrCodeRowVersionConflict,
			conflict.Error(),
			details,
			err,
		)
		return
	}
	utils.HandleAppError(w, err)
}

// queryInt returns def when the parameter is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.BadRequest("Invalid "+name, err)
	}
	return n, nil
}

// queryUUID returns nil when the parameter is absent.
func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, utils.BadRequest("Invalid "+name, err)
	}
	return utils.Ptr(id), nil
}

// setAccessCookie writes the session cookie. With high security off the
// cookie must work cross-site, which needs SameSite=None.
func setAccessCookie(w http.ResponseWriter, token string, ttl time.Duration, highSecurity bool) {
	writeAccessCookie(w, token, int(ttl.Seconds()), highSecurity)
}

// clearAccessCookie expires the session cookie. A negative MaxAge deletes it.
func clearAccessCookie(w http.ResponseWriter, highSecurity bool) {
	writeAccessCookie(w, "", -1, highSecurity)
}

func writeAccessCookie(w http.ResponseWriter, token string, maxAge int, highSecurity bool) {
	sameSite := http.SameSiteLaxMode
	if !highSecurity {
		sameSite = http.SameSiteNoneMode
	}
	utils.Logger.Debugf("[cookies] writeAccessCookie: highSecurity=%t, maxAge=%d", highSecurity, maxAge)
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookieName,
		Value:    token,
		Path:     "/", // __Host- cookies must use the root path
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: sameSite,
	})
}
