// backend/shared/go-dtos/error_dtos.go
package dtos

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrorDetail is a shared DTO for structured validation error responses.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewValidationErrorDetails flattens validator errors into per-field details.
// Errors of any other type come back as a single entry with no field.
func NewValidationErrorDetails(err error) []ValidationErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationErrorDetail{{Message: err.Error(), Code: "invalid"}}
	}
	out := make([]ValidationErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationErrorDetail{
			Field:   fieldPath(fe.Namespace()),
			Message: fe.Error(),
			Code:    fe.Tag(),
		})
	}
	return out
}

// fieldPath drops the struct name from "ArticleRequest.tweets[0].tweet_text".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
