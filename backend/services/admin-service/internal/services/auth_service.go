package services

import (
	"context"
	"crypto/rsa"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	go_dtos "github.com/newsroom/mono-repo/backend/shared/go-dtos"
	"github.com/newsroom/mono-repo/backend/shared/go-middleware"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

type AuthService struct {
	editors     repositories.EditorRepository
	privateKey  *rsa.PrivateKey
	tokenExpiry time.Duration
	now         func() time.Time
}

func NewAuthService(editors repositories.EditorRepository, privateKey *rsa.PrivateKey, tokenExpiry time.Duration) *AuthService {
	return &AuthService{
		editors:     editors,
		privateKey:  privateKey,
		tokenExpiry: tokenExpiry,
		now:         time.Now,
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnPasswordCheck spends a bcrypt comparison so unknown usernames take
// as long to reject as wrong passwords.
func burnPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = utils.HashPassword("not-a-real-password")
	})
	_ = utils.CheckPasswordHash(password, dummyHash)
}

func invalidCredentials() *utils.AppError {
	return &utils.AppError{
		StatusCode: http.StatusUnauthorized,
		Code:       utils.ErrCodeInvalidCredentials,
		Message:    "Invalid username or password",
		Err:        utils.ErrInvalidCredentials,
	}
}

// Login checks the editor's password and issues an access token bound to
// clientIP.
func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest, clientIP string) (*dtos.LoginResponse, error) {
	editor, err := s.editors.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, utils.Internal("Failed to look up editor", err)
	}
	if editor == nil {
		burnPasswordCheck(req.Password)
		return nil, invalidCredentials()
	}
	if !utils.CheckPasswordHash(req.Password, editor.PasswordHash) || !editor.IsActive {
		return nil, invalidCredentials()
	}

	token, err := middleware.IssueAccessToken(s.privateKey, editor.ID.String(), editor.Role, clientIP, s.tokenExpiry, s.now())
	if err != nil {
		return nil, utils.Internal("Failed to issue access token", err)
	}
	utils.Logger.Infof("Editor %s logged in", editor.Username)

	return &dtos.LoginResponse{
		Editor:      go_dtos.NewEditorFromModel(*editor),
		AccessToken: token,
		ExpiresIn:   int64(s.tokenExpiry.Seconds()),
	}, nil
}

func (s *AuthService) Me(ctx context.Context, editorID uuid.UUID) (*go_dtos.Editor, error) {
	editor, err := s.editors.GetByID(ctx, editorID)
	if err != nil {
		return nil, utils.Internal("Failed to load editor", err)
	}
	if editor == nil {
		return nil, utils.NotFound("Editor not found")
	}
	dto := go_dtos.NewEditorFromModel(*editor)
	return &dto, nil
}

// CreateEditorRequest is used by the management CLI.
type CreateEditorRequest struct {
	Username string `validate:"required,max=150"`
	FullName string `validate:"max=200"`
	Email    string `validate:"omitempty,email"`
	Password string `validate:"required,min=8"`
	Role     string `validate:"required,oneof=editor admin"`
}

var editorValidate = validator.New()

func (s *AuthService) CreateEditor(ctx context.Context, req CreateEditorRequest) (*models.Editor, error) {
	if err := editorValidate.Struct(req); err != nil {
		appErr := utils.BadRequest("Invalid editor", err)
		appErr.Details = go_dtos.NewValidationErrorDetails(err)
		return nil, appErr
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.Internal("Failed to hash password", err)
	}
	editor := &models.Editor{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(req.Username),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.editors.Create(ctx, editor); err != nil {
		if utils.IsUniqueViolation(err, repositories.ConstraintEditorUsername) {
			return nil, conflict("An editor with this username already exists", utils.ErrDuplicateUsername)
		}
		return nil, utils.Internal("Failed to create editor", err)
	}
	return editor, nil
}
