package controllers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/services"
	go_dtos "github.com/newsroom/mono-repo/backend/shared/go-dtos"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

type ArticleController struct {
	articleService  *services.ArticleService
	userEditService *services.UserEditService
	validate        *validator.Validate
}

func NewArticleController(articleService *services.ArticleService, userEditService *services.UserEditService) *ArticleController {
	return &ArticleController{
		articleService:  articleService,
		userEditService: userEditService,
		validate:        dtos.NewValidator(),
	}
}

// parseListParams reads the change-list query string:
// q, published, category, region, topic, year, month, day, o, page, page_size.
func parseListParams(r *http.Request) (dtos.ArticleListParams, error) {
	q := r.URL.Query()
	p := dtos.ArticleListParams{
		Search:    strings.TrimSpace(q.Get("q")),
		Published: q.Get("published"),
		Ordering:  q.Get("o"),
	}

	var err error
	if p.CategoryID, err = queryUUID(r, "category"); err != nil {
		return p, err
	}
	if p.RegionID, err = queryUUID(r, "region"); err != nil {
		return p, err
	}
	if p.TopicID, err = queryUUID(r, "topic"); err != nil {
		return p, err
	}
	if p.Year, err = queryInt(r, "year", 0); err != nil {
		return p, err
	}
	if p.Month, err = queryInt(r, "month", 0); err != nil {
		return p, err
	}
	if p.Day, err = queryInt(r, "day", 0); err != nil {
		return p, err
	}
	if p.Page, err = queryInt(r, "page", 1); err != nil {
		return p, err
	}
	if p.PageSize, err = queryInt(r, "page_size", services.DefaultPageSize); err != nil {
		return p, err
	}
	return p, nil
}

// GET /api/v1/admin/articles
func (c *ArticleController) ListHandler(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.validate.Struct(params); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid filter",
			go_dtos.NewValidationErrorDetails(err), err,
		)
		return
	}

	page, err := c.articleService.List(r.Context(), params)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, page)
}

// GET /api/v1/admin/articles/{id}
func (c *ArticleController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	resp, err := c.articleService.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/admin/articles/{id}/edit
//
// Opens the change form. The returned article version must be sent back
// unchanged with the save.
func (c *ArticleController) EditHandler(w http.ResponseWriter, r *http.Request) {
	editorID, err := getEditorID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	resp, err := c.articleService.OpenForEdit(r.Context(), editorID, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/v1/admin/articles
func (c *ArticleController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	editorID, err := getEditorID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.ArticleRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	resp, err := c.articleService.Create(r.Context(), editorID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// PUT /api/v1/admin/articles/{id}
func (c *ArticleController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	editorID, err := getEditorID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.ArticleRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	resp, err := c.articleService.Update(r.Context(), editorID, id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// DELETE /api/v1/admin/articles/{id}
func (c *ArticleController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	editorID, err := getEditorID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.articleService.Delete(r.Context(), editorID, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ConfirmationResponse{Message: "Article deleted", ID: id.String()})
}

// GET /api/v1/admin/articles/{id}/user-edits
func (c *ArticleController) UserEditsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	edits, err := c.userEditService.List(r.Context(), utils.Ptr(id), page, services.DefaultPageSize)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, edits)
}
