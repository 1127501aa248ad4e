package dtos

import "github.com/newsroom/mono-repo/backend/shared/go-models"

// Editor is the data transfer object for a back-office user,
// omitting the password hash.
type Editor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// NewEditorFromModel creates an Editor DTO from a models.Editor.
func NewEditorFromModel(e models.Editor) Editor {
	return Editor{
		ID:       e.ID.String(),
		Username: e.Username,
		FullName: e.FullName,
		Email:    e.Email,
		Role:     e.Role,
		IsActive: e.IsActive,
	}
}
