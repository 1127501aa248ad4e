package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/config"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/services"
	"github.com/newsroom/mono-repo/backend/shared/go-middleware"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

type AuthController struct {
	authService *services.AuthService
	cfg         *config.Config
	validate    *validator.Validate
}

func NewAuthController(authService *services.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{authService: authService, cfg: cfg, validate: dtos.NewValidator()}
}

// POST /api/v1/admin/auth/login
func (c *AuthController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	resp, err := c.authService.Login(r.Context(), req, utils.ClientIP(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	setAccessCookie(w, resp.AccessToken, c.cfg.TokenExpiry, c.cfg.LDFlag_CORSHighSecurity)
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/v1/admin/auth/logout
func (c *AuthController) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if editorID, ok := middleware.EditorIDFromContext(r.Context()); ok {
		utils.Logger.WithField("editor_id", editorID).Info("Editor logged out")
	}
	clearAccessCookie(w, c.cfg.LDFlag_CORSHighSecurity)
	utils.RespondWithJSON(w, http.StatusOK, dtos.ConfirmationResponse{Message: "Logged out"})
}

// GET /api/v1/admin/auth/me
func (c *AuthController) MeHandler(w http.ResponseWriter, r *http.Request) {
	editorID, err := getEditorID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	editor, err := c.authService.Me(r.Context(), editorID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, editor)
}
