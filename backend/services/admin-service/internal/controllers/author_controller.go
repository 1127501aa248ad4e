package controllers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/services"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

type AuthorController struct {
	authorService *services.AuthorService
	validate      *validator.Validate
}

func NewAuthorController(authorService *services.AuthorService) *AuthorController {
	return &AuthorController{authorService: authorService, validate: dtos.NewValidator()}
}

// GET /api/v1/admin/authors?q=&o=&page=&page_size=
func (c *AuthorController) ListHandler(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	pageSize, err := queryInt(r, "page_size", services.DefaultPageSize)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	q := r.URL.Query()
	authors, err := c.authorService.List(r.Context(), strings.TrimSpace(q.Get("q")), q.Get("o"), page, pageSize)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, authors)
}

// GET /api/v1/admin/authors/{id}
func (c *AuthorController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	author, err := c.authorService.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, author)
}

// POST /api/v1/admin/authors
func (c *AuthorController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	editorID, err := getEditorID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.AuthorRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	author, err := c.authorService.Create(r.Context(), editorID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, author)
}

// PUT /api/v1/admin/authors/{id}
func (c *AuthorController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
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
	var req dtos.AuthorRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	author, err := c.authorService.Update(r.Context(), editorID, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, author)
}

// DELETE /api/v1/admin/authors/{id}
func (c *AuthorController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
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
	if err := c.authorService.Delete(r.Context(), editorID, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ConfirmationResponse{Message: "Author deleted", ID: id.String()})
}
