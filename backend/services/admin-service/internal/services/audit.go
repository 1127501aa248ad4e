package services

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	go_dtos "github.com/newsroom/mono-repo/backend/shared/go-dtos"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

type auditLogger struct {
	repo repositories.AuditLogRepository
}

// log records a change. Failures are logged and otherwise ignored so an
// audit outage never blocks editing.
func (a auditLogger) log(ctx context.Context, editorID, targetID uuid.UUID, action models.AuditAction, targetType models.AuditTargetType, details any) {
	var detailsJSON json.RawMessage
	if details != nil {
		detailsJSON, _ = json.Marshal(details)
	}
	err := a.repo.Create(ctx, &models.AuditLog{
		ID:         uuid.New(),
		EditorID:   editorID,
		Action:     action,
		TargetID:   targetID,
		TargetType: targetType,
		Details:    detailsJSON,
	})
	if err != nil {
		utils.Logger.WithError(err).Warnf("Failed to write audit log for %s %s", targetType, targetID)
	}
}

func conflict(msg string, err error) *utils.AppError {
	return &utils.AppError{StatusCode: http.StatusConflict, Code: utils.ErrCodeConflict, Message: msg, Err: err}
}

// fieldErrors is a form-level validation failure listing each bad field.
func fieldErrors(details ...go_dtos.ValidationErrorDetail) *utils.AppError {
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeValidation,
		Message:    "Please correct the errors below.",
		Details:    details,
		Err:        utils.ErrInvalidChoice,
	}
}

func fieldError(field, code, msg string) go_dtos.ValidationErrorDetail {
	return go_dtos.ValidationErrorDetail{Field: field, Code: code, Message: msg}
}

func pageBounds(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return pageSize, (page - 1) * pageSize
}

const DefaultPageSize = 100

// staleVersion rejects a save of a record that changed since the client
// loaded it. Details carry the current record.
func staleVersion(entity string, current any) *utils.AppError {
	return &utils.AppError{
		StatusCode: http.StatusConflict,
		Code:       utils.ErrCodeRowVersionConflict,
		Message:    "This " + entity + " was changed while you were editing it. Reload it and apply your changes again.",
		Details:    current,
		Err:        utils.ErrRowVersionConflict,
	}
}
